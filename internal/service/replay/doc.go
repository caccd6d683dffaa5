// Package replay dispatches a saved SNS event document locally, without the Lambda runtime.
package replay
