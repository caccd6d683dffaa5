// Package analyzer fetches recent CloudWatch log events for a log group and
// reports their error patterns.
package analyzer
