// Package version exposes build metadata for the remediation binaries.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
// AppID is the same information in the form the AWS SDK expects for its user agent.
package version
