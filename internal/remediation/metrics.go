package remediation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alarm_remediation"

var (
	envelopesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatcher",
			Name:      "envelopes_total",
			Help:      "Envelopes processed by outcome",
		},
		[]string{"outcome"},
	)

	batchesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatcher",
			Name:      "batches_total",
			Help:      "Batches processed by response status",
		},
		[]string{"status"},
	)

	incidentsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "emitter",
			Name:      "incidents_total",
			Help:      "Incident records emitted",
		},
		[]string{"incident_type", "severity"},
	)

	emitFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "emitter",
			Name:      "failures_total",
			Help:      "Incident records that could not be published",
		},
	)
)
