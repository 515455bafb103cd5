package collectors

import (
	"context"
	"testing"
	"time"

	"access-analytics/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T, maxBatchSize int, maxWait time.Duration, queueCapacity int) Collector {
	t.Helper()
	return NewCollector(NewNormalizer(), maxBatchSize, maxWait, queueCapacity, loggers.Nop())
}

func submitN(t *testing.T, c Collector, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, c.Submit(context.Background(), validRawEvent()))
	}
}

func TestCollector_SizeTriggerSealsBatch(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, 3, time.Minute, 8)
	submitN(t, c, 3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	batch, err := c.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, batch.Size())
}

func TestCollector_TimerTriggerSealsSmallBatch(t *testing.T) {
	t.Parallel()

	// Batch far below the size trigger must still reach the processor
	// within the wait bound.
	maxWait := 50 * time.Millisecond
	c := newTestCollector(t, 100, maxWait, 8)

	start := time.Now()
	submitN(t, c, 3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	batch, err := c.Dequeue(ctx)
	require.NoError(t, err)
	elapsed := time.Since(start)

	assert.Equal(t, 3, batch.Size(), "flush contains exactly the submitted events")
	assert.GreaterOrEqual(t, elapsed, maxWait, "flush should not happen before the wait bound")
	assert.Less(t, elapsed, 10*maxWait, "flush should happen shortly after the wait bound")
}

func TestCollector_EventsPreserveSubmissionOrder(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, 5, time.Minute, 8)
	paths := []string{"/a", "/b", "/c", "/d", "/e"}
	for _, p := range paths {
		raw := validRawEvent()
		raw.Path = p
		require.NoError(t, c.Submit(context.Background(), raw))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	batch, err := c.Dequeue(ctx)
	require.NoError(t, err)

	got := make([]string, 0, batch.Size())
	for _, event := range batch.Events {
		got = append(got, event.Path)
	}
	assert.Equal(t, paths, got)
}

func TestCollector_QueueFullRejectsWithoutBlocking(t *testing.T) {
	t.Parallel()

	// maxBatchSize=1 seals on every submit; capacity 2 and no consumer
	// saturates the queue quickly.
	c := newTestCollector(t, 1, time.Minute, 2)

	var rejected int
	for i := 0; i < 10; i++ {
		err := c.Submit(context.Background(), validRawEvent())
		if err != nil {
			assert.ErrorIs(t, err, ErrQueueFull)
			rejected++
		}
	}
	assert.Greater(t, rejected, 0, "saturating the queue must produce rejections")

	// Draining one batch frees capacity again.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := c.Dequeue(ctx)
	require.NoError(t, err)
	assert.NoError(t, c.Submit(context.Background(), validRawEvent()))
}

func TestCollector_ShutdownFlushesCurrentBatch(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, 100, time.Minute, 8)
	submitN(t, c, 4)

	c.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	batch, err := c.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, batch.Size(), "shutdown seals the partial batch immediately")

	_, err = c.Dequeue(ctx)
	assert.ErrorIs(t, err, ErrCollectorClosed)

	err = c.Submit(context.Background(), validRawEvent())
	assert.ErrorIs(t, err, ErrCollectorClosed)
}

func TestCollector_RequeuePutsBatchFirst(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, 2, time.Minute, 8)
	submitN(t, c, 4) // two sealed batches

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first, err := c.Dequeue(ctx)
	require.NoError(t, err)

	first.Attempts++
	c.Requeue(first)

	again, err := c.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.BatchID, again.BatchID, "requeued batch is retried before newer batches")
	assert.Equal(t, 1, again.Attempts)
}

func TestCollector_InvalidEventDoesNotEnterBatch(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, 2, time.Minute, 8)

	raw := validRawEvent()
	raw.StatusCode = 42
	require.Error(t, c.Submit(context.Background(), raw))

	submitN(t, c, 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	batch, err := c.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Size())
	for _, event := range batch.Events {
		assert.Equal(t, 200, event.StatusCode)
	}
}
