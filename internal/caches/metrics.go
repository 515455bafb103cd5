package caches

import (
	"access-analytics/internal/shared/metrics"
)

const (
	tierLocal  = "local"
	tierShared = "shared"
	tierLoader = "loader"

	resultHit  = "hit"
	resultMiss = "miss"
)

var (
	// metricCacheRequestsTotal tracks hit/miss per tier. The loader tier
	// only ever records hits: reaching it is already a miss on both
	// cache tiers.
	metricCacheRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCache,
			Name:      "requests_total",
		},
		[]string{metrics.FieldTier, metrics.FieldResult},
	)

	metricLocalEvictionsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCache,
			Name:      "local_evictions_total",
		},
	)

	// metricSharedDegradedTotal counts operations that fell back because
	// the shared tier was unreachable.
	metricSharedDegradedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCache,
			Name:      "shared_degraded_total",
		},
	)
)
