package incident

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestNewRecord checks the timestamp format, fixed status and that actions are copied.
func TestNewRecord(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.March, 5, 10, 4, 5, 123456789, time.FixedZone("UTC+3", 3*60*60))
	actions := []string{"a", "b"}

	r := NewRecord(at, "prod-error-rate-high", "Error Threshold Exceeded", SeverityHigh, actions)

	require.Equal(t, "2024-03-05T07:04:05.123456", r.Timestamp)
	require.Equal(t, StatusCompleted, r.Status)
	require.Equal(t, actions, r.RemediationActions)

	actions[0] = "mutated"
	require.Equal(t, "a", r.RemediationActions[0])
}

// TestRecord_JSONKeys pins the JSON schema consumed by log readers.
func TestRecord_JSONKeys(t *testing.T) {
	t.Parallel()

	r := NewRecord(time.Unix(0, 0), "n", "t", SeverityCritical, []string{"x"})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"timestamp": "1970-01-01T00:00:00",
		"alarm_name": "n",
		"incident_type": "t",
		"severity": "CRITICAL",
		"remediation_actions": ["x"],
		"status": "AUTOMATED_RESPONSE_COMPLETED"
	}`, string(data))
}

// TestRecord_MarshalLogObject verifies the zap object form uses the same keys.
func TestRecord_MarshalLogObject(t *testing.T) {
	t.Parallel()

	r := NewRecord(time.Unix(0, 0), "n", "t", SeverityHigh, []string{"x", "y"})

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, r.MarshalLogObject(enc))

	require.Equal(t, "n", enc.Fields["alarm_name"])
	require.Equal(t, "HIGH", enc.Fields["severity"])
	require.Equal(t, StatusCompleted, enc.Fields["status"])
	require.Equal(t, []any{"x", "y"}, enc.Fields["remediation_actions"])
}

// TestFormatTimestamp checks microsecond rendering and the whole-second form.
func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		at   time.Time
		want string
	}{
		{at: time.Date(2025, time.January, 2, 3, 4, 5, 600000000, time.UTC), want: "2025-01-02T03:04:05.600000"},
		{at: time.Date(2025, time.January, 2, 3, 4, 5, 1000, time.UTC), want: "2025-01-02T03:04:05.000001"},
		{at: time.Date(2025, time.January, 2, 3, 4, 5, 999, time.UTC), want: "2025-01-02T03:04:05"},
		{at: time.Date(2025, time.January, 2, 5, 4, 5, 0, time.FixedZone("UTC+2", 2*60*60)), want: "2025-01-02T03:04:05"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatTimestamp(tt.at))
	}
}
