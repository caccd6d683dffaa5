package sns

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/remediation"
)

// recordingDispatcher captures the envelopes it receives and delegates to a real dispatcher.
type recordingDispatcher struct {
	// envelopes is the last batch received.
	envelopes []alarm.Envelope
	// next processes the batch.
	next *remediation.Dispatcher
}

// Dispatch records the batch and forwards it.
func (r *recordingDispatcher) Dispatch(ctx context.Context, envelopes []alarm.Envelope) *remediation.BatchResult {
	r.envelopes = envelopes

	return r.next.Dispatch(ctx, envelopes)
}

// snsEvent builds an SNS event with one record per message.
func snsEvent(messages ...string) events.SNSEvent {
	var event events.SNSEvent

	for i, message := range messages {
		event.Records = append(event.Records, events.SNSEventRecord{
			EventSource: "aws:sns",
			SNS: events.SNSEntity{
				MessageID: string(rune('a' + i)),
				Message:   message,
			},
		})
	}

	return event
}

// TestHandle_Success verifies envelopes are forwarded in order and a 200 is returned.
func TestHandle_Success(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())
	ctx = lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{AwsRequestID: "req-1"})

	d := &recordingDispatcher{next: remediation.NewDispatcher()}

	response, err := NewHandler(d).Handle(ctx, snsEvent(
		`{"AlarmName":"prod-error-rate-high","NewStateValue":"ALARM"}`,
		`{"AlarmName":"cpu-high","NewStateValue":"OK"}`,
	))

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)
	require.JSONEq(t, `"Remediation completed successfully"`, response.Body)
	require.Len(t, d.envelopes, 2)
	require.Equal(t, "a", d.envelopes[0].MessageID)

	received := logs.FilterMessage("Received event").All()
	require.Len(t, received, 1)
	require.Equal(t, "req-1", received[0].ContextMap()["request_id"])
}

// TestHandle_FailureIsAResponse checks a malformed payload yields a 500 response, not an error.
func TestHandle_FailureIsAResponse(t *testing.T) {
	t.Parallel()

	core, _ := observer.New(zapcore.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	d := &recordingDispatcher{next: remediation.NewDispatcher()}

	response, err := NewHandler(d).Handle(ctx, snsEvent("not json"))

	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, response.StatusCode)
	require.Contains(t, response.Body, "Error: ")
}
