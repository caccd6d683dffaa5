// Package send submits a saved SNS event document to a running remediation-server.
package send
