package processors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"access-analytics/internal/collectors"
	"access-analytics/internal/events"
	"access-analytics/internal/models"
	"access-analytics/internal/shared/loggers"
	"access-analytics/internal/shared/svcerrors"
)

// FlushWorker is the single consumer of the collector queue. It pops sealed
// batches and drives them through the processor; a failed flush is retried
// with the batch re-queued at the front, so batch commit order is preserved.
// After maxAttempts failures the batch is dropped and a data-loss alert is
// published, keeping the queue moving instead of wedging on a poisoned batch.
type FlushWorker struct {
	collector collectors.Collector
	processor BatchProcessor
	notifier  Notifier

	maxAttempts int
	backoff     time.Duration

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	logger loggers.Logger
}

func NewFlushWorker(
	collector collectors.Collector,
	processor BatchProcessor,
	notifier Notifier,
	maxAttempts int,
	backoff time.Duration,
	logger loggers.Logger,
) *FlushWorker {
	return &FlushWorker{
		collector:   collector,
		processor:   processor,
		notifier:    notifier,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		logger:      logger,
	}
}

// Start launches the worker goroutine. The queue is a single-owner handoff,
// so exactly one worker drains it.
func (w *FlushWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
}

// Drain blocks until the worker exits. Call after collector.Shutdown() so the
// worker sees the closed queue once the remaining batches are flushed; a
// clean shutdown loses no accepted event.
func (w *FlushWorker) Drain() {
	w.wg.Wait()
}

// Stop aborts the worker without waiting for the queue to empty. Only used
// when the drain deadline has passed.
func (w *FlushWorker) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
	})
	w.wg.Wait()
}

func (w *FlushWorker) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		batch, err := w.collector.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, collectors.ErrCollectorClosed) {
				w.logger.Info().Msg("collector queue drained, flush worker exiting")
			} else {
				w.logger.Warn().Err(err).Msg("flush worker aborted")
			}
			return
		}

		w.handle(ctx, batch)
	}
}

// handle drives one batch to commit, retry or loss.
func (w *FlushWorker) handle(ctx context.Context, batch *models.PendingBatch) {
	err := w.flushSafe(ctx, batch)
	if err == nil {
		return
	}

	batch.Attempts++
	if batch.Attempts >= w.maxAttempts {
		w.abandon(batch, err)
		return
	}

	metricBatchesRetriedTotal.Inc()
	w.logger.Warn().Err(err).
		Str(loggers.FieldBatchID, batch.BatchID).
		Int(loggers.FieldAttempt, batch.Attempts).
		Msg("batch flush failed, re-queueing for retry")

	w.collector.Requeue(batch)
	w.sleep(ctx, time.Duration(batch.Attempts)*w.backoff)
}

// flushSafe shields the queue loop from a panicking flush; a panic counts as
// a failed attempt like any other error.
func (w *FlushWorker) flushSafe(ctx context.Context, batch *models.PendingBatch) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = svcerrors.NewInternalErrorPanic(fmt.Errorf("flush panicked: %v", r))
			w.logger.Error().Err(err).
				Str(loggers.FieldBatchID, batch.BatchID).
				Msg("panic recovered in batch flush")
		}
	}()
	return w.processor.Flush(ctx, batch)
}

// abandon drops a batch whose retries are exhausted. The loss is never
// silent: it is logged, counted and announced on the alert topic.
func (w *FlushWorker) abandon(batch *models.PendingBatch, cause error) {
	metricBatchesLostTotal.Inc()
	w.logger.Error().Err(cause).
		Str(loggers.FieldBatchID, batch.BatchID).
		Int(loggers.FieldBatchSize, batch.Size()).
		Int(loggers.FieldAttempt, batch.Attempts).
		Msg("batch dropped after exhausting flush retries")

	w.notifier.Publish(events.TopicAlert, events.NewDataLoss(batch.BatchID, batch.Size()))
}

func (w *FlushWorker) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
