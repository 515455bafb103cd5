package collectors

import (
	"access-analytics/internal/shared/metrics"
)

var (
	metricEventsAcceptedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "events_accepted_total",
		},
	)

	// metricEventsRejectedTotal counts events dropped under backpressure.
	// Every rejection increments this counter so no event is lost uncounted.
	metricEventsRejectedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "events_rejected_total",
		},
	)

	metricBatchesSealedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "batches_sealed_total",
		},
		[]string{"trigger"},
	)
)

const (
	triggerSize     = "size"
	triggerTimer    = "timer"
	triggerShutdown = "shutdown"
)
