package hubs

import (
	"access-analytics/internal/shared/metrics"
)

var (
	metricActiveSubscribers = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHub,
			Name:      "active_subscribers",
		},
	)

	metricPublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHub,
			Name:      "published_total",
		},
		[]string{metrics.FieldTopic},
	)

	// metricDroppedTotal counts messages dropped for slow consumers
	// (drop-oldest overflow), labelled by topic.
	metricDroppedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHub,
			Name:      "dropped_total",
		},
		[]string{metrics.FieldTopic},
	)

	metricForceUnsubscribedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHub,
			Name:      "force_unsubscribed_total",
		},
	)
)
