package alarm

// State is the value of NewStateValue in a CloudWatch alarm notification.
// Values outside the known set are kept verbatim.
type State string

// Known alarm states.
const (
	StateOK               State = "OK"
	StateAlarm            State = "ALARM"
	StateInsufficientData State = "INSUFFICIENT_DATA"
)

// IsAlarm reports whether the state is exactly ALARM.
func (s State) IsAlarm() bool {
	return s == StateAlarm
}

// String returns the raw state value.
func (s State) String() string {
	return string(s)
}

// Envelope is one notification as delivered by the transport.
type Envelope struct {
	// MessageID is the transport message id, used only for log correlation.
	MessageID string
	// Payload is the opaque JSON document carrying the alarm event.
	Payload string
}

// Event is the alarm state change decoded from an envelope payload.
type Event struct {
	// Name is the alarm name; classification matches on it.
	Name string
	// Description is the free-form alarm description.
	Description string
	// NewState is the state the alarm transitioned into.
	NewState State
}
