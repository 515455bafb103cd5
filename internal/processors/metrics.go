package processors

import (
	"access-analytics/internal/shared/metrics"
)

var (
	metricBatchesCommittedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubProcessor,
			Name:      "batches_committed_total",
		},
	)

	metricBatchesRetriedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubProcessor,
			Name:      "batches_retried_total",
		},
	)

	// metricBatchesLostTotal counts batches dropped after exhausting
	// persistence retries. Every increment is paired with a data-loss
	// alert on the hub.
	metricBatchesLostTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubProcessor,
			Name:      "batches_lost_total",
		},
	)

	metricEventsPersistedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubProcessor,
			Name:      "events_persisted_total",
		},
	)

	// metricDuplicatesSkippedTotal counts events whose insert was a no-op
	// (already persisted by an earlier partially-acknowledged flush).
	metricDuplicatesSkippedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubProcessor,
			Name:      "duplicates_skipped_total",
		},
	)

	metricFlushDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubProcessor,
			Name:      "flush_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)
)
