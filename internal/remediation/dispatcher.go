package remediation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
	"github.com/oshokin/alarm-remediation/internal/domain/incident"
	"github.com/oshokin/alarm-remediation/internal/logger"
	"github.com/oshokin/alarm-remediation/internal/notification"
)

const (
	// successMessage is the response body when no envelope failed.
	successMessage = "Remediation completed successfully"
	// errorPrefix starts the response body of a failed batch.
	errorPrefix = "Error: "
)

// errProcessing wraps a panic raised while handling one envelope.
var errProcessing = errors.New("process notification")

// Dispatcher runs a batch of envelopes through parsing, classification and emission.
// It keeps no state between batches and is safe for concurrent use.
type Dispatcher struct {
	classifier *Classifier
	emitter    *Emitter
	// abortOnError stops the batch at the first failed envelope.
	abortOnError bool
	// newBatchID generates the correlation id attached to batch logs.
	newBatchID func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClassifier replaces the default classifier.
func WithClassifier(c *Classifier) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.classifier = c
		}
	}
}

// WithEmitter replaces the default emitter.
func WithEmitter(e *Emitter) Option {
	return func(d *Dispatcher) {
		if e != nil {
			d.emitter = e
		}
	}
}

// WithAbortOnError makes the first failed envelope stop the batch, leaving the
// remaining envelopes unprocessed.
func WithAbortOnError(abort bool) Option {
	return func(d *Dispatcher) {
		d.abortOnError = abort
	}
}

// NewDispatcher creates a dispatcher with the default rules and log emitter.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		classifier: NewClassifier(nil),
		emitter:    NewEmitter(),
		newBatchID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// EnvelopeResult is the outcome of one envelope.
type EnvelopeResult struct {
	// Index is the position of the envelope in the batch.
	Index int
	// MessageID is the transport message id.
	MessageID string
	// AlarmName is empty when the payload could not be parsed.
	AlarmName string
	// Outcome says what happened.
	Outcome Outcome
	// Incident is set for OutcomeRemediated.
	Incident *incident.Record
	// Err is set for OutcomeFailed.
	Err error
}

// BatchResult summarizes one Dispatch call.
type BatchResult struct {
	// BatchID correlates the batch log lines.
	BatchID string
	// Results holds one entry per processed envelope, in batch order.
	Results []EnvelopeResult
	// Unprocessed counts envelopes left untouched after an abort.
	Unprocessed int
	// Cause is set when the batch stopped early.
	Cause error
}

// Response is the invocation reply returned to the transport.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Dispatch processes the envelopes sequentially and independently.
// Unless WithAbortOnError is set, a failed envelope never prevents the rest
// from being processed.
func (d *Dispatcher) Dispatch(ctx context.Context, envelopes []alarm.Envelope) *BatchResult {
	result := &BatchResult{
		BatchID: d.newBatchID(),
		Results: make([]EnvelopeResult, 0, len(envelopes)),
	}

	ctx = logger.WithKV(logger.WithName(ctx, "dispatcher"), "batch_id", result.BatchID)

	logger.InfoKV(ctx, "Received notification batch", "envelopes", len(envelopes))

	for i, envelope := range envelopes {
		if err := ctx.Err(); err != nil {
			result.abort(len(envelopes)-i, fmt.Errorf("batch interrupted: %w", err))
			break
		}

		res := d.process(ctx, i, envelope)
		result.Results = append(result.Results, res)
		envelopesProcessed.WithLabelValues(string(res.Outcome)).Inc()

		if res.Outcome == OutcomeFailed && d.abortOnError {
			result.abort(len(envelopes)-i-1, res.Err)
			break
		}
	}

	response := result.Response()
	batchesProcessed.WithLabelValues(http.StatusText(response.StatusCode)).Inc()

	if result.Cause != nil {
		logger.ErrorKV(ctx, "Error processing event", "error", result.Cause, "unprocessed", result.Unprocessed)
	}

	logger.InfoKV(ctx, "Notification batch processed",
		"status_code", response.StatusCode,
		"remediated", result.Count(OutcomeRemediated),
		"skipped", result.Count(OutcomeSkipped),
		"unclassified", result.Count(OutcomeUnclassified),
		"failed", result.Count(OutcomeFailed),
	)

	return result
}

// process handles one envelope. Panics are recovered into OutcomeFailed.
func (d *Dispatcher) process(ctx context.Context, index int, envelope alarm.Envelope) (res EnvelopeResult) {
	res = EnvelopeResult{
		Index:     index,
		MessageID: envelope.MessageID,
	}

	defer func() {
		if p := recover(); p != nil {
			res.Outcome = OutcomeFailed
			res.Incident = nil
			res.Err = fmt.Errorf("envelope %d: %w: panic: %v", index, errProcessing, p)

			logger.ErrorKV(ctx, "Error processing notification", "message_id", envelope.MessageID, "error", res.Err)
		}
	}()

	event, err := notification.Parse(envelope)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("envelope %d: %w", index, err)

		logger.ErrorKV(ctx, "Error processing notification", "message_id", envelope.MessageID, "error", err)

		return res
	}

	res.AlarmName = event.Name

	logger.InfoKV(ctx, "Processing alarm", "alarm_name", event.Name, "state", event.NewState.String())
	logger.DebugKV(ctx, "Alarm description", "alarm_name", event.Name, "description", event.Description)

	decision := d.classifier.Classify(event)
	res.Outcome = decision.Outcome

	switch decision.Outcome {
	case OutcomeSkipped:
		logger.Infof(ctx, "Alarm state is %s, no action needed", event.NewState)
	case OutcomeUnclassified:
		logger.WarnKV(ctx, "Unknown alarm type", "alarm_name", event.Name)
	case OutcomeRemediated:
		logger.InfoKV(ctx, "Handling alarm", "alarm_name", event.Name, "category", string(decision.Category))

		res.Incident = d.emitter.Emit(ctx, event.Name, decision.Plan)
	case OutcomeFailed:
		// Classify never fails.
	}

	return res
}

// abort records that the batch stopped with n envelopes left.
func (b *BatchResult) abort(n int, cause error) {
	b.Unprocessed = n
	b.Cause = cause
}

// Count returns how many envelopes ended with the given outcome.
func (b *BatchResult) Count(outcome Outcome) int {
	n := 0

	for i := range b.Results {
		if b.Results[i].Outcome == outcome {
			n++
		}
	}

	return n
}

// Incidents returns the emitted records in batch order.
func (b *BatchResult) Incidents() []*incident.Record {
	var records []*incident.Record

	for i := range b.Results {
		if b.Results[i].Incident != nil {
			records = append(records, b.Results[i].Incident)
		}
	}

	return records
}

// Err joins every envelope failure and the abort cause, nil when the batch succeeded.
func (b *BatchResult) Err() error {
	errs := make([]error, 0, len(b.Results)+1)

	for i := range b.Results {
		if b.Results[i].Err != nil {
			errs = append(errs, b.Results[i].Err)
		}
	}

	if b.Cause != nil && !containsError(errs, b.Cause) {
		errs = append(errs, b.Cause)
	}

	return errors.Join(errs...)
}

// Response converts the result into the invocation reply: 200 when nothing
// failed, 500 with the failure messages otherwise. The body is a JSON string.
func (b *BatchResult) Response() Response {
	err := b.Err()
	if err == nil {
		return Response{
			StatusCode: http.StatusOK,
			Body:       jsonString(successMessage),
		}
	}

	message := strings.ReplaceAll(err.Error(), "\n", "; ")

	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       jsonString(errorPrefix + message),
	}
}

// containsError reports whether target is one of errs by identity.
func containsError(errs []error, target error) bool {
	for _, err := range errs {
		if err == target { //nolint:errorlint // Identity check, not a chain lookup.
			return true
		}
	}

	return false
}

// jsonString encodes s as an ASCII-only JSON string literal. HTML characters are
// kept as is; non-ASCII characters become \uXXXX escapes, in UTF-16 pairs when needed.
func jsonString(s string) string {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(s); err != nil {
		return `""`
	}

	encoded := strings.TrimSuffix(buf.String(), "\n")

	var out strings.Builder

	out.Grow(len(encoded))

	for _, r := range encoded {
		if r < utf8.RuneSelf {
			out.WriteRune(r)

			continue
		}

		for _, unit := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&out, "\\u%04x", unit)
		}
	}

	return out.String()
}
