package incident

import (
	"slices"
	"time"

	"go.uber.org/zap/zapcore"
)

// Severity labels an incident. Downstream log consumers match on the exact strings.
type Severity string

// Severities produced by the built-in rules.
const (
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// StatusCompleted is the status carried by every emitted record.
const StatusCompleted = "AUTOMATED_RESPONSE_COMPLETED"

// Timestamp layouts: ISO-8601 without zone suffix, with microseconds unless they are zero.
const (
	TimestampLayout            = "2006-01-02T15:04:05.000000"
	TimestampLayoutWholeSecond = "2006-01-02T15:04:05"
)

// Record describes a classified alarm and the canned actions recorded for it.
type Record struct {
	Timestamp          string   `json:"timestamp"`
	AlarmName          string   `json:"alarm_name"`
	IncidentType       string   `json:"incident_type"`
	Severity           Severity `json:"severity"`
	RemediationActions []string `json:"remediation_actions"`
	Status             string   `json:"status"`
}

// NewRecord builds a completed record stamped with the given time.
func NewRecord(at time.Time, alarmName, incidentType string, severity Severity, actions []string) *Record {
	return &Record{
		Timestamp:          FormatTimestamp(at),
		AlarmName:          alarmName,
		IncidentType:       incidentType,
		Severity:           severity,
		RemediationActions: slices.Clone(actions),
		Status:             StatusCompleted,
	}
}

// FormatTimestamp converts t to UTC and formats it with TimestampLayout, or with
// TimestampLayoutWholeSecond when the microsecond part is zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(TimestampLayoutWholeSecond)
	}

	return t.Format(TimestampLayout)
}

// MarshalLogObject lets zap write the record as a nested object with the same keys as its JSON form.
func (r *Record) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("timestamp", r.Timestamp)
	enc.AddString("alarm_name", r.AlarmName)
	enc.AddString("incident_type", r.IncidentType)
	enc.AddString("severity", string(r.Severity))

	if err := enc.AddArray("remediation_actions", actionList(r.RemediationActions)); err != nil {
		return err
	}

	enc.AddString("status", r.Status)

	return nil
}

// actionList adapts a string slice to zapcore.ArrayMarshaler.
type actionList []string

// MarshalLogArray writes every action in order.
func (a actionList) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, action := range a {
		enc.AppendString(action)
	}

	return nil
}
