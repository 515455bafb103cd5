package caches

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"access-analytics/internal/models"
	"access-analytics/internal/shared/loggers"
)

// StatsKey builds the cache key for one date's aggregate.
func StatsKey(date string) string {
	return "daily-stats:" + date
}

// Loader is the cold-miss fallback: a query against persisted aggregates.
type Loader func(ctx context.Context) (*models.DailyStatistic, error)

// Manager serves statistic reads through the two cache tiers. A hit never
// returns a value older than the last committed update applied through this
// process; other processes self-heal within one TTL window (bounded
// staleness, not strong consistency).
//
//go:generate mockgen -source=manager.go -destination=./mocks/manager_mock.go -package=mocks
type Manager interface {
	// Get reads through local tier, shared tier, then loader, populating
	// the tiers it missed. Shared-tier unavailability degrades to the
	// loader and never fails the read.
	Get(ctx context.Context, key string, loader Loader) (*models.DailyStatistic, error)

	// Set writes a freshly committed value to both tiers. ttl bounds the
	// shared entry; the local entry uses the configured local TTL if that
	// is shorter.
	Set(ctx context.Context, key string, value *models.DailyStatistic, ttl time.Duration)

	// Invalidate drops a key from the shared tier and this process's
	// local tier. Other processes' local tiers converge on their next
	// miss within one TTL window.
	Invalidate(ctx context.Context, key string)
}

type manager struct {
	local     *FIFOCache[*models.DailyStatistic]
	shared    SharedCache
	localTTL  time.Duration
	sharedTTL time.Duration
	logger    loggers.Logger
}

func NewManager(local *FIFOCache[*models.DailyStatistic], shared SharedCache, localTTL, sharedTTL time.Duration, logger loggers.Logger) Manager {
	return &manager{
		local:     local,
		shared:    shared,
		localTTL:  localTTL,
		sharedTTL: sharedTTL,
		logger:    logger,
	}
}

func (m *manager) Get(ctx context.Context, key string, loader Loader) (*models.DailyStatistic, error) {
	if value, ok := m.local.Get(key); ok {
		metricCacheRequestsTotal.WithLabelValues(tierLocal, resultHit).Inc()
		return value, nil
	}
	metricCacheRequestsTotal.WithLabelValues(tierLocal, resultMiss).Inc()

	raw, err := m.shared.Get(ctx, key)
	switch {
	case err == nil:
		var value models.DailyStatistic
		if unmarshalErr := json.Unmarshal(raw, &value); unmarshalErr == nil {
			metricCacheRequestsTotal.WithLabelValues(tierShared, resultHit).Inc()
			m.local.Set(key, &value, m.localTTL)
			return &value, nil
		}
		// A corrupt shared entry is treated as a miss and overwritten
		// by the loader result below.
		m.logger.Warn().Str(loggers.FieldCacheKey, key).Msg("corrupt shared cache entry")
		metricCacheRequestsTotal.WithLabelValues(tierShared, resultMiss).Inc()
	case errors.Is(err, ErrCacheMiss):
		metricCacheRequestsTotal.WithLabelValues(tierShared, resultMiss).Inc()
	default:
		metricSharedDegradedTotal.Inc()
		m.logger.Warn().Err(err).
			Str(loggers.FieldCacheKey, key).
			Str(loggers.FieldCacheTier, tierShared).
			Msg("shared cache unavailable, degraded to loader")
	}

	value, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	metricCacheRequestsTotal.WithLabelValues(tierLoader, resultHit).Inc()

	m.local.Set(key, value, m.localTTL)
	m.setShared(ctx, key, value, m.sharedTTL)
	return value, nil
}

func (m *manager) Set(ctx context.Context, key string, value *models.DailyStatistic, ttl time.Duration) {
	localTTL := m.localTTL
	if ttl < localTTL {
		localTTL = ttl
	}
	m.local.Set(key, value, localTTL)
	m.setShared(ctx, key, value, ttl)
}

func (m *manager) Invalidate(ctx context.Context, key string) {
	// Shared tier first: a concurrent Get on this process repopulating
	// the local tier should not resurrect the stale shared value.
	if err := m.shared.Delete(ctx, key); err != nil {
		metricSharedDegradedTotal.Inc()
		m.logger.Warn().Err(err).
			Str(loggers.FieldCacheKey, key).
			Msg("shared cache invalidate failed")
	}
	m.local.Delete(key)
}

// setShared writes to the shared tier best-effort; an unreachable tier is
// logged and counted, never surfaced.
func (m *manager) setShared(ctx context.Context, key string, value *models.DailyStatistic, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		m.logger.Error().Err(err).Str(loggers.FieldCacheKey, key).Msg("failed to marshal cache value")
		return
	}
	if err := m.shared.Set(ctx, key, raw, ttl); err != nil {
		metricSharedDegradedTotal.Inc()
		m.logger.Warn().Err(err).
			Str(loggers.FieldCacheKey, key).
			Msg("shared cache set failed")
	}
}
