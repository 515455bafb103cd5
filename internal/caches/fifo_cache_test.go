package caches

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOCache_EvictsOldestHalfByInsertionOrder(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache[int](10)
	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("key-%02d", i), i, time.Minute)
	}
	require.Equal(t, 10, c.Len())

	// Capacity+1st insert evicts exactly the oldest half.
	c.Set("key-10", 10, time.Minute)

	assert.Equal(t, 6, c.Len())
	expected := []string{"key-05", "key-06", "key-07", "key-08", "key-09", "key-10"}
	assert.Equal(t, expected, c.Keys())

	for i := 0; i < 5; i++ {
		_, ok := c.Get(fmt.Sprintf("key-%02d", i))
		assert.False(t, ok, "key-%02d should be evicted", i)
	}
	value, ok := c.Get("key-10")
	require.True(t, ok)
	assert.Equal(t, 10, value)
}

func TestFIFOCache_UpdateKeepsInsertionPosition(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache[string](4)
	c.Set("a", "1", time.Minute)
	c.Set("b", "1", time.Minute)
	c.Set("c", "1", time.Minute)
	c.Set("d", "1", time.Minute)

	// Updating "a" must not move it to the back of the ring.
	c.Set("a", "2", time.Minute)
	c.Set("e", "1", time.Minute)

	// Oldest half (a, b) evicted despite a's recent update.
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"c", "d", "e"}, c.Keys())
}

func TestFIFOCache_ExpiredEntryIsAMiss(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache[int](4)
	current := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("a", 1, 30*time.Second)

	value, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, value)

	current = current.Add(31 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry past its TTL must miss")
	assert.Equal(t, 0, c.Len())
}

func TestFIFOCache_DeleteThenReinsert(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache[int](4)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	// Re-inserting after delete places the key at the back.
	c.Set("a", 3, time.Minute)
	assert.Equal(t, []string{"b", "a"}, c.Keys())

	value, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestFIFOCache_EvictionSkipsDeletedGhosts(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache[int](4)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Set("c", 3, time.Minute)
	c.Set("d", 4, time.Minute)
	c.Delete("a")
	c.Set("e", 5, time.Minute) // len was 3, no eviction
	require.Equal(t, 4, c.Len())

	// Next insert evicts half of the live entries; the ghost of "a" must
	// not count toward the evicted batch.
	c.Set("f", 6, time.Minute)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"d", "e", "f"}, c.Keys())
}
