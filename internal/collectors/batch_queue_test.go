package collectors

import (
	"context"
	"testing"
	"time"

	"access-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatch(id string) *models.PendingBatch {
	return &models.PendingBatch{BatchID: id, FirstEventAt: time.Now()}
}

func TestBatchQueue_PushBack_RejectsAtCapacity(t *testing.T) {
	t.Parallel()

	q := NewBatchQueue(2)

	require.NoError(t, q.PushBack(newBatch("a")))
	require.NoError(t, q.PushBack(newBatch("b")))
	assert.True(t, q.Full())

	err := q.PushBack(newBatch("c"))
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 2, q.Len())
}

func TestBatchQueue_PushFront_BeatsOrderAndCapacity(t *testing.T) {
	t.Parallel()

	q := NewBatchQueue(1)
	require.NoError(t, q.PushBack(newBatch("newer")))

	// Requeue is allowed past capacity and goes to the head.
	q.PushFront(newBatch("older"))
	assert.Equal(t, 2, q.Len())

	ctx := context.Background()
	first, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "older", first.BatchID)

	second, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "newer", second.BatchID)
}

func TestBatchQueue_Pop_BlocksUntilPush(t *testing.T) {
	t.Parallel()

	q := NewBatchQueue(4)

	popped := make(chan *models.PendingBatch, 1)
	go func() {
		batch, err := q.Pop(context.Background())
		if err == nil {
			popped <- batch
		}
	}()

	select {
	case <-popped:
		t.Fatal("Pop returned before any push")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, q.PushBack(newBatch("a")))

	select {
	case batch := <-popped:
		assert.Equal(t, "a", batch.BatchID)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after push")
	}
}

func TestBatchQueue_Pop_ContextCancelled(t *testing.T) {
	t.Parallel()

	q := NewBatchQueue(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := q.Pop(ctx)
	assert.Nil(t, batch)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchQueue_Close_DrainsBeforeReportingClosed(t *testing.T) {
	t.Parallel()

	q := NewBatchQueue(4)
	require.NoError(t, q.PushBack(newBatch("a")))
	q.Close()

	assert.ErrorIs(t, q.PushBack(newBatch("b")), ErrCollectorClosed)

	ctx := context.Background()
	batch, err := q.Pop(ctx)
	require.NoError(t, err, "queued batches remain poppable after close")
	assert.Equal(t, "a", batch.BatchID)

	_, err = q.Pop(ctx)
	assert.ErrorIs(t, err, ErrCollectorClosed)
}
