package main

import "github.com/oshokin/alarm-remediation/cmd/remediation-server/cmd"

func main() {
	cmd.Execute()
}
