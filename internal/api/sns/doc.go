// Package sns adapts SNS-triggered Lambda invocations to the remediation dispatcher.
package sns
