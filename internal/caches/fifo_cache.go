package caches

import (
	"sync"
	"time"
)

// fifoEntry is one local-tier cache entry: value plus an insertion-order
// marker (seq) and its expiry.
type fifoEntry[V any] struct {
	value     V
	seq       uint64
	expiresAt time.Time
}

// orderedKey records the insertion order of a key. Deleted keys leave a
// ghost behind that eviction skips, which keeps Delete O(1).
type orderedKey struct {
	key string
	seq uint64
}

// FIFOCache is the bounded process-local cache tier. When an insert would
// exceed capacity it evicts the oldest half of the live entries by insertion
// order in one batch. Updating an existing key does not refresh its position:
// there is no per-access bookkeeping, only the insertion-order ring.
type FIFOCache[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]fifoEntry[V]
	order    []orderedKey
	nextSeq  uint64

	now func() time.Time // stubbed in tests
}

func NewFIFOCache[V any](capacity int) *FIFOCache[V] {
	return &FIFOCache[V]{
		capacity: capacity,
		entries:  make(map[string]fifoEntry[V], capacity),
		order:    make([]orderedKey, 0, capacity),
		now:      time.Now,
	}
}

// Get returns the live value for key. Expired entries are dropped on read.
func (c *FIFOCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return entry.value, true
}

// Set inserts or updates a key. An update keeps the original insertion
// position; a new key may trigger the half-batch eviction first.
func (c *FIFOCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)

	if existing, ok := c.entries[key]; ok {
		existing.value = value
		existing.expiresAt = expiresAt
		c.entries[key] = existing
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOldestHalfLocked()
	}

	seq := c.nextSeq
	c.nextSeq++
	c.entries[key] = fifoEntry[V]{value: value, seq: seq, expiresAt: expiresAt}
	c.order = append(c.order, orderedKey{key: key, seq: seq})
}

// Delete removes a key. The insertion-order ghost is cleaned up lazily by
// eviction.
func (c *FIFOCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of live entries.
func (c *FIFOCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the live keys in insertion order, oldest first.
func (c *FIFOCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for _, ordered := range c.order {
		if entry, ok := c.entries[ordered.key]; ok && entry.seq == ordered.seq {
			keys = append(keys, ordered.key)
		}
	}
	return keys
}

// evictOldestHalfLocked drops the oldest half of the live entries in one
// pass over the order ring, skipping ghosts of deleted or re-inserted keys.
func (c *FIFOCache[V]) evictOldestHalfLocked() {
	toEvict := len(c.entries) / 2
	if toEvict == 0 {
		toEvict = 1
	}

	evicted := 0
	idx := 0
	for ; idx < len(c.order) && evicted < toEvict; idx++ {
		ordered := c.order[idx]
		entry, ok := c.entries[ordered.key]
		if !ok || entry.seq != ordered.seq {
			continue // ghost
		}
		delete(c.entries, ordered.key)
		evicted++
	}
	c.order = c.order[idx:]

	metricLocalEvictionsTotal.Add(float64(evicted))
}
