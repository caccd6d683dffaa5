// Package config defines the settings used by the remediation binaries and
// provides helpers to load them from YAML, override them from the environment,
// validate them and save them back.
package config
