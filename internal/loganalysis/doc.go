// Package loganalysis fetches recent CloudWatch log events and tallies error
// patterns in them. It is a diagnostic capability, independent of alarm dispatch.
package loganalysis
