package version

import "fmt"

// name is the project name reported in version output and to AWS.
const name = "alarm-remediation"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("%s version: %s, commit: %s, built at: %s", name, Version, Commit, BuildTime)
}

// AppID identifies this build in AWS SDK user agents, e.g. "alarm-remediation-0.1.0".
func AppID() string {
	return name + "-" + Version
}
