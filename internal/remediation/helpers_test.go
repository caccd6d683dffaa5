package remediation

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
	"github.com/oshokin/alarm-remediation/internal/logger"
)

// observedContext returns a context whose logger records every entry.
func observedContext(t *testing.T) (context.Context, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)

	return logger.ToContext(context.Background(), zap.New(core).Sugar()), logs
}

// envelope builds an envelope with an alarm payload.
func envelope(id, name, state string) alarm.Envelope {
	return alarm.Envelope{
		MessageID: id,
		Payload:   `{"AlarmName":"` + name + `","AlarmDescription":"test alarm","NewStateValue":"` + state + `"}`,
	}
}
