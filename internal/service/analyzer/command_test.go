package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-remediation/internal/loganalysis"
)

// TestRun_RequiresLogGroup ensures the command fails fast without a log group.
func TestRun_RequiresLogGroup(t *testing.T) {
	t.Setenv("REMEDIATION_LOG_GROUP", "")

	err := Run(context.Background(), &Options{Output: new(bytes.Buffer)})
	require.ErrorIs(t, err, ErrNoLogGroup)
}

// TestReport_JSON pins the flattened report layout.
func TestReport_JSON(t *testing.T) {
	t.Parallel()

	report := Report{
		LogGroup: "/aws/lambda/app",
		Hours:    2,
		Events:   3,
		Analysis: loganalysis.Analysis{
			TotalErrors:       2,
			ErrorTypes:        map[string]int{"database": 1, "network": 1},
			AnalysisTimestamp: "2025-06-01T12:00:00",
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"log_group": "/aws/lambda/app",
		"hours": 2,
		"events": 3,
		"total_errors": 2,
		"error_types": {"database": 1, "network": 1},
		"analysis_timestamp": "2025-06-01T12:00:00"
	}`, string(data))
}
