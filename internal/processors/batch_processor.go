package processors

import (
	"context"
	"time"

	"access-analytics/internal/caches"
	"access-analytics/internal/events"
	"access-analytics/internal/models"
	"access-analytics/internal/shared/loggers"
	"access-analytics/internal/shared/metrics"
	"access-analytics/internal/shared/svcerrors"
	"access-analytics/internal/stores"
)

// Notifier is the slice of the distribution hub the processor needs: publish
// a notification to whoever is listening right now, without waiting.
type Notifier interface {
	Publish(topic string, notification events.Notification)
}

// BatchProcessor commits one sealed batch: persist its events, fold them into
// the daily aggregates, refresh the cache tiers and notify live subscribers.
// Flush is all-or-retry from the worker's point of view; internally every
// step is idempotent or self-correcting, so re-running a half-committed flush
// converges on the same aggregates.
//
//go:generate mockgen -source=batch_processor.go -destination=./mocks/batch_processor_mock.go -package=mocks
type BatchProcessor interface {
	Flush(ctx context.Context, batch *models.PendingBatch) error
}

type batchProcessor struct {
	eventStore stores.EventStore
	statStore  stores.StatisticStore
	cache      caches.Manager
	notifier   Notifier
	sharedTTL  time.Duration
	logger     loggers.Logger
}

func NewBatchProcessor(
	eventStore stores.EventStore,
	statStore stores.StatisticStore,
	cache caches.Manager,
	notifier Notifier,
	sharedTTL time.Duration,
	logger loggers.Logger,
) BatchProcessor {
	return &batchProcessor{
		eventStore: eventStore,
		statStore:  statStore,
		cache:      cache,
		notifier:   notifier,
		sharedTTL:  sharedTTL,
		logger:     logger,
	}
}

func (p *batchProcessor) Flush(ctx context.Context, batch *models.PendingBatch) (err error) {
	start := time.Now()
	defer func() {
		metricFlushDuration.WithLabelValues(errorCode(err)).Observe(time.Since(start).Seconds())
	}()

	inserted, err := p.eventStore.InsertBatch(ctx, batch.Events)
	if err != nil {
		return errPersistenceFailed(err)
	}
	metricEventsPersistedTotal.Add(float64(inserted))

	// Fewer rows than events means part of this batch was already persisted
	// by an earlier attempt. Blindly adding the delta would double-count, so
	// the touched dates are rebuilt from the persisted rows instead.
	duplicates := int64(batch.Size()) - inserted
	if duplicates > 0 {
		metricDuplicatesSkippedTotal.Add(float64(duplicates))
		p.logger.Info().
			Str(loggers.FieldBatchID, batch.BatchID).
			Int64("duplicates", duplicates).
			Msg("duplicate events skipped, recomputing touched dates")
	}

	deltas := summarize(batch)
	for _, date := range batch.Dates() {
		stats, updateErr := p.updateDate(ctx, date, deltas[date], duplicates > 0)
		if updateErr != nil {
			return errAggregationFailed(date, updateErr)
		}

		p.cache.Set(ctx, caches.StatsKey(date), stats, p.sharedTTL)
		p.notifier.Publish(events.TopicStatsUpdate, events.NewStatsUpdated(stats))
	}

	metricBatchesCommittedTotal.Inc()
	p.logger.Info().
		Str(loggers.FieldBatchID, batch.BatchID).
		Int(loggers.FieldBatchSize, batch.Size()).
		Msg("batch committed")
	return nil
}

// updateDate folds one date's contribution into its aggregate row and returns
// the resulting snapshot. The clean path is an increment upsert plus a
// session refresh; the duplicate path rebuilds the row wholesale.
func (p *batchProcessor) updateDate(ctx context.Context, date string, delta *models.DailyStatDelta, recompute bool) (*models.DailyStatistic, error) {
	if recompute {
		return p.statStore.Recompute(ctx, date)
	}

	if err := p.statStore.ApplyDelta(ctx, delta); err != nil {
		return nil, err
	}
	return p.statStore.RefreshSessionStats(ctx, date)
}

// summarize folds the batch's events into one algebraic delta per date.
func summarize(batch *models.PendingBatch) map[string]*models.DailyStatDelta {
	deltas := make(map[string]*models.DailyStatDelta)
	for _, event := range batch.Events {
		date := event.DateKey()
		delta, ok := deltas[date]
		if !ok {
			delta = &models.DailyStatDelta{StatDate: date}
			deltas[date] = delta
		}
		delta.Add(event)
	}
	return deltas
}

func errorCode(err error) string {
	if err == nil {
		return metrics.ValueNoError
	}
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr.Code
	}
	return svcerrors.NewInternalErrorUndefined(err).Code
}
