package loganalysis

import (
	"strings"
	"time"

	"github.com/oshokin/alarm-remediation/internal/domain/incident"
)

// Error categories reported by AnalyzeErrorPatterns.
const (
	CategoryDatabase = "database"
	CategoryNetwork  = "network"
	CategoryGeneral  = "general"
)

// errorMarker is matched case-sensitively against raw messages.
const errorMarker = "ERROR"

// Analysis is the result of AnalyzeErrorPatterns.
type Analysis struct {
	TotalErrors       int            `json:"total_errors"`
	ErrorTypes        map[string]int `json:"error_types"`
	AnalysisTimestamp string         `json:"analysis_timestamp"`
}

// AnalyzeErrorPatterns counts events whose message contains "ERROR" and files
// each one under database, network or general, first match wins.
func AnalyzeErrorPatterns(events []Event) Analysis {
	return analyze(events, time.Now())
}

func analyze(events []Event, at time.Time) Analysis {
	result := Analysis{
		ErrorTypes:        make(map[string]int),
		AnalysisTimestamp: incident.FormatTimestamp(at),
	}

	for _, e := range events {
		if !strings.Contains(e.Message, errorMarker) {
			continue
		}

		result.TotalErrors++
		result.ErrorTypes[categorize(e.Message)]++
	}

	return result
}

// categorize picks the error category of a message.
func categorize(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, CategoryDatabase):
		return CategoryDatabase
	case strings.Contains(lower, CategoryNetwork):
		return CategoryNetwork
	default:
		return CategoryGeneral
	}
}
