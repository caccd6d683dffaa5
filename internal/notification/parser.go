package notification

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
)

// Payload field names set by CloudWatch in alarm notifications.
const (
	fieldAlarmName        = "AlarmName"
	fieldAlarmDescription = "AlarmDescription"
	fieldNewStateValue    = "NewStateValue"
)

// ErrDecode marks a payload that is not a JSON object, or an alarm in the
// ALARM state whose name is not a string.
var ErrDecode = errors.New("decode alarm payload")

// Parse decodes the envelope payload and extracts the alarm fields.
// Absent and null fields default to the empty string. Other non-string values
// are kept in their JSON form, so a numeric state never equals ALARM. When a key
// repeats, the last value wins.
func Parse(env alarm.Envelope) (*alarm.Event, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(env.Payload)))
	decoder.UseNumber()

	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrDecode)
	}

	payload, ok := document.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrDecode)
	}

	state, _ := textField(payload, fieldNewStateValue)
	description, _ := textField(payload, fieldAlarmDescription)

	name, isString := textField(payload, fieldAlarmName)
	if !isString && alarm.State(state).IsAlarm() {
		return nil, fmt.Errorf("%w: field %s is not a string", ErrDecode, fieldAlarmName)
	}

	return &alarm.Event{
		Name:        name,
		Description: description,
		NewState:    alarm.State(state),
	}, nil
}

// textField returns the named field as text. The flag is false only for a
// present value that is neither a string nor null.
func textField(payload map[string]any, key string) (string, bool) {
	switch value := payload[key].(type) {
	case nil:
		return "", true
	case string:
		return value, true
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value), false
		}

		return string(data), false
	}
}
