package remediation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/alarm-remediation/internal/domain/incident"
	"github.com/oshokin/alarm-remediation/internal/logger"
)

// ErrEmission wraps any failure while writing an incident record.
var ErrEmission = errors.New("emit incident record")

// Publisher writes a finished incident record to its sink.
type Publisher func(ctx context.Context, record *incident.Record) error

// Emitter stamps incident records and hands them to a Publisher.
type Emitter struct {
	// now supplies the record timestamp.
	now func() time.Time
	// publish writes the record; LogPublisher by default.
	publish Publisher
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) EmitterOption {
	return func(e *Emitter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPublisher replaces the default log publisher.
func WithPublisher(publish Publisher) EmitterOption {
	return func(e *Emitter) {
		if publish != nil {
			e.publish = publish
		}
	}
}

// NewEmitter creates an emitter that logs records using the context logger.
func NewEmitter(opts ...EmitterOption) *Emitter {
	e := &Emitter{
		now:     time.Now,
		publish: LogPublisher,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Emit builds the incident record for the alarm and publishes it.
// Publishing failures, panics included, are logged and never returned.
func (e *Emitter) Emit(ctx context.Context, alarmName string, plan Plan) *incident.Record {
	record := incident.NewRecord(e.now(), alarmName, plan.IncidentType, plan.Severity, plan.Actions)

	if err := e.safePublish(ctx, record); err != nil {
		emitFailures.Inc()
		logger.ErrorKV(ctx, "Error sending remediation notification", "alarm_name", alarmName, "error", err)

		return record
	}

	incidentsEmitted.WithLabelValues(record.IncidentType, string(record.Severity)).Inc()

	return record
}

// safePublish calls the publisher and converts a panic into ErrEmission.
func (e *Emitter) safePublish(ctx context.Context, record *incident.Record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", ErrEmission, p)
		}
	}()

	if err = e.publish(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrEmission, err)
	}

	return nil
}

// LogPublisher writes the record as a single structured log entry.
func LogPublisher(ctx context.Context, record *incident.Record) error {
	logger.InfoKV(ctx, "Remediation completed", "alarm_name", record.AlarmName, "incident", record)

	return nil
}
