package sns

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/notification"
	"github.com/oshokin/alarm-remediation/internal/remediation"
)

// Dispatcher abstracts the batch processing the handler depends on.
type Dispatcher interface {
	Dispatch(ctx context.Context, envelopes []alarm.Envelope) *remediation.BatchResult
}

// Handler serves Lambda invocations carrying SNS events.
type Handler struct {
	// dispatcher processes the envelopes of each invocation.
	dispatcher Dispatcher
}

// NewHandler wires the dispatcher into a Lambda handler.
func NewHandler(dispatcher Dispatcher) *Handler {
	return &Handler{
		dispatcher: dispatcher,
	}
}

// Handle processes one invocation. Failures are reported through the response
// status code, never as an invocation error, so SNS does not redeliver the batch.
func (h *Handler) Handle(ctx context.Context, event events.SNSEvent) (remediation.Response, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ctx = logger.WithKV(ctx, "request_id", lc.AwsRequestID)
	}

	logger.InfoKV(ctx, "Received event", "records", len(event.Records))

	if raw, err := json.Marshal(event); err == nil {
		logger.DebugKV(ctx, "Received event payload", "event", string(raw))
	}

	result := h.dispatcher.Dispatch(ctx, notification.FromSNSEvent(event))

	return result.Response(), nil
}
