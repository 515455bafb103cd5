package collectors

import (
	"context"
	"sync"

	"access-analytics/internal/models"
)

// BatchQueue is the bounded handoff between the collector and the flush
// worker. PushBack rejects when the queue is at capacity (backpressure);
// PushFront is reserved for re-queuing a failed batch and is allowed to
// exceed capacity so a retried batch is never dropped by its own requeue.
type BatchQueue struct {
	mu       sync.Mutex
	items    []*models.PendingBatch
	capacity int
	closed   bool

	// signal carries one wake-up per push; sized generously so a
	// non-blocking send never drops a wake-up while items remain.
	signal chan struct{}
}

func NewBatchQueue(capacity int) *BatchQueue {
	return &BatchQueue{
		capacity: capacity,
		signal:   make(chan struct{}, 2*capacity+16),
	}
}

// PushBack appends a sealed batch. Returns ErrQueueFull at capacity and
// ErrCollectorClosed after Close.
func (q *BatchQueue) PushBack(batch *models.PendingBatch) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrCollectorClosed
	}
	if len(q.items) >= q.capacity {
		return ErrQueueFull
	}
	q.items = append(q.items, batch)
	q.wake()
	return nil
}

// pushBackDrain appends regardless of capacity. Shutdown path only: the
// final batch of a clean shutdown must not be dropped.
func (q *BatchQueue) pushBackDrain(batch *models.PendingBatch) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, batch)
	q.wake()
}

// PushFront re-queues a batch at the head, preserving rough time ordering
// for retries. Never rejects.
func (q *BatchQueue) PushFront(batch *models.PendingBatch) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append([]*models.PendingBatch{batch}, q.items...)
	q.wake()
}

// Pop blocks until a batch is available, the context is cancelled, or the
// queue is closed and drained. A closed queue keeps serving until empty so
// shutdown loses nothing.
func (q *BatchQueue) Pop(ctx context.Context) (*models.PendingBatch, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			batch := q.items[0]
			q.items = q.items[1:]
			if len(q.items) > 0 {
				q.wake()
			}
			q.mu.Unlock()
			return batch, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, ErrCollectorClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.signal:
		}
	}
}

// Close stops accepting PushBack; queued batches remain poppable.
func (q *BatchQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.wake()
}

// Len returns the number of queued batches.
func (q *BatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Full reports whether PushBack would currently reject.
func (q *BatchQueue) Full() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) >= q.capacity
}

func (q *BatchQueue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
