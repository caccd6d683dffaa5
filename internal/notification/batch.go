package notification

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
)

// ErrBatch marks a batch document that is not a valid SNS event.
var ErrBatch = errors.New("decode notification batch")

// FromSNSEvent converts the records of an SNS event into envelopes, keeping their order.
func FromSNSEvent(event events.SNSEvent) []alarm.Envelope {
	envelopes := make([]alarm.Envelope, 0, len(event.Records))

	for _, record := range event.Records {
		envelopes = append(envelopes, alarm.Envelope{
			MessageID: record.SNS.MessageID,
			Payload:   record.SNS.Message,
		})
	}

	return envelopes
}

// DecodeBatch parses an SNS event JSON document, as delivered to a Lambda
// function, into envelopes.
func DecodeBatch(data []byte) ([]alarm.Envelope, error) {
	var event events.SNSEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBatch, err)
	}

	return FromSNSEvent(event), nil
}
