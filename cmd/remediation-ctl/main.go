package main

import "github.com/oshokin/alarm-remediation/cmd/remediation-ctl/cmd"

func main() {
	cmd.Execute()
}
