// Package common holds helpers shared by several services.
//
// It provides a gRPC client for the remediation service, detection of the
// calling user for audit metadata, and input/output helpers for CLI commands.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
