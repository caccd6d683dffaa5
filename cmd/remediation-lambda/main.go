package main

import "github.com/oshokin/alarm-remediation/cmd/remediation-lambda/cmd"

func main() {
	cmd.Execute()
}
