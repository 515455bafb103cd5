package caches

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by SharedCache.Get when the key is absent. Any
// other error means the shared tier is unreachable; the manager then falls
// back to the loader and logs degraded mode instead of failing the read.
var ErrCacheMiss = errors.New("cache miss")

// SharedCache is the cross-process cache tier: plain per-key get/set/delete
// with TTL expiry, no transactions. Consistency is whatever the backing
// store provides (assumed atomic per-key read/write).
//
//go:generate mockgen -source=shared_cache.go -destination=./mocks/shared_cache_mock.go -package=mocks
type SharedCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
