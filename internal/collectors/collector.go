package collectors

import (
	"context"
	"sync"
	"time"

	"access-analytics/internal/models"
	"access-analytics/internal/shared/loggers"
	"access-analytics/internal/shared/ulid"
)

//go:generate mockgen -source=collector.go -destination=./mocks/collector_mock.go -package=mocks
type Collector interface {
	// Submit normalizes one event and appends it to the pending batch.
	// Executes inline on the caller and never blocks on I/O. Returns a
	// queue-full rejection (errors.Is(err, ErrQueueFull)) under
	// backpressure; the event is dropped and counted, never silently lost.
	Submit(ctx context.Context, raw *models.RawAccessEvent) error

	// Dequeue hands the next sealed batch to the flush worker, blocking
	// until one is available. Single-owner handoff: ownership of the batch
	// transfers to the caller.
	Dequeue(ctx context.Context) (*models.PendingBatch, error)

	// Requeue returns a failed batch to the head of the queue for retry.
	Requeue(batch *models.PendingBatch)

	// Shutdown stops intake and seals the current batch regardless of
	// size/time thresholds so a clean shutdown drops no accepted event.
	Shutdown()
}

type collector struct {
	normalizer   Normalizer
	queue        *BatchQueue
	maxBatchSize int
	maxWait      time.Duration

	mu      sync.Mutex
	current *models.PendingBatch
	timer   *time.Timer
	closed  bool

	logger loggers.Logger
}

func NewCollector(normalizer Normalizer, maxBatchSize int, maxWait time.Duration, queueCapacity int, logger loggers.Logger) Collector {
	return &collector{
		normalizer:   normalizer,
		queue:        NewBatchQueue(queueCapacity),
		maxBatchSize: maxBatchSize,
		maxWait:      maxWait,
		logger:       logger,
	}
}

func (c *collector) Submit(ctx context.Context, raw *models.RawAccessEvent) error {
	event, err := c.normalizer.Normalize(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		metricEventsRejectedTotal.Inc()
		return errCollectorClosed()
	}

	// A full current batch here means the previous size-trigger seal was
	// rejected by a full queue. Retry the seal; if the queue is still full
	// the producer has outpaced the consumer and the event is dropped.
	if c.current != nil && c.current.Size() >= c.maxBatchSize {
		if !c.sealLocked(triggerSize) {
			metricEventsRejectedTotal.Inc()
			return errQueueFull()
		}
	}

	if c.current == nil {
		c.current = &models.PendingBatch{
			BatchID:      ulid.NewULID(),
			Events:       make([]*models.AccessEvent, 0, c.maxBatchSize),
			FirstEventAt: time.Now(),
		}
		c.startTimerLocked()
	}

	c.current.Events = append(c.current.Events, event)
	metricEventsAcceptedTotal.Inc()

	if c.current.Size() >= c.maxBatchSize {
		// Seal failure is tolerated here: the event is already accepted
		// and the batch stays current until the queue drains.
		c.sealLocked(triggerSize)
	}

	return nil
}

func (c *collector) Dequeue(ctx context.Context) (*models.PendingBatch, error) {
	return c.queue.Pop(ctx)
}

func (c *collector) Requeue(batch *models.PendingBatch) {
	c.queue.PushFront(batch)
}

func (c *collector) Shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTimerLocked()
	final := c.current
	c.current = nil
	c.mu.Unlock()

	if final != nil && final.Size() > 0 {
		c.queue.pushBackDrain(final)
		metricBatchesSealedTotal.WithLabelValues(triggerShutdown).Inc()
		c.logger.Info().
			Str(loggers.FieldBatchID, final.BatchID).
			Int(loggers.FieldBatchSize, final.Size()).
			Msg("final batch sealed on shutdown")
	}
	c.queue.Close()
}

// sealLocked moves the current batch onto the queue. Returns false when the
// queue rejected the handoff; the batch then stays current. Caller holds mu.
func (c *collector) sealLocked(trigger string) bool {
	if c.current == nil || c.current.Size() == 0 {
		return true
	}
	batch := c.current
	if err := c.queue.PushBack(batch); err != nil {
		c.logger.Warn().
			Str(loggers.FieldBatchID, batch.BatchID).
			Int(loggers.FieldBatchSize, batch.Size()).
			Msg("batch handoff rejected, queue full")
		return false
	}
	c.current = nil
	c.stopTimerLocked()
	metricBatchesSealedTotal.WithLabelValues(trigger).Inc()
	return true
}

// startTimerLocked arms the max-wait trigger for the just-created batch.
// This bounds statistics staleness under low traffic: a batch reaches the
// processor within maxWait of its first event even if it never fills.
func (c *collector) startTimerLocked() {
	c.timer = time.AfterFunc(c.maxWait, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.current == nil {
			return
		}
		if !c.sealLocked(triggerTimer) {
			// Queue still full; re-arm so the seal is retried rather
			// than the batch waiting for the next Submit.
			c.startTimerLocked()
		}
	})
}

func (c *collector) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// QueueLen reports queued batches, exposed for tests and debugging.
func (c *collector) QueueLen() int {
	return c.queue.Len()
}
