package processors_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"access-analytics/internal/caches"
	cachemocks "access-analytics/internal/caches/mocks"
	"access-analytics/internal/events"
	"access-analytics/internal/models"
	"access-analytics/internal/processors"
	procmocks "access-analytics/internal/processors/mocks"
	"access-analytics/internal/shared/loggers"
	storemocks "access-analytics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sharedTTL = 5 * time.Minute

func testEvent(id, sessionID string, class models.DeviceClass, occurredAt time.Time) *models.AccessEvent {
	return &models.AccessEvent{
		EventID:     id,
		RemoteAddr:  "203.0.113.7",
		SessionID:   sessionID,
		Path:        "/pricing",
		Method:      "GET",
		StatusCode:  200,
		DeviceClass: class,
		OccurredAt:  occurredAt,
	}
}

func testBatch(events ...*models.AccessEvent) *models.PendingBatch {
	return &models.PendingBatch{BatchID: "01BATCH", Events: events}
}

type processorMocks struct {
	eventStore *storemocks.MockEventStore
	statStore  *storemocks.MockStatisticStore
	cache      *cachemocks.MockManager
	notifier   *procmocks.MockNotifier
}

func newProcessor(t *testing.T) (processors.BatchProcessor, *processorMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &processorMocks{
		eventStore: storemocks.NewMockEventStore(ctrl),
		statStore:  storemocks.NewMockStatisticStore(ctrl),
		cache:      cachemocks.NewMockManager(ctrl),
		notifier:   procmocks.NewMockNotifier(ctrl),
	}
	p := processors.NewBatchProcessor(m.eventStore, m.statStore, m.cache, m.notifier, sharedTTL, loggers.Nop())
	return p, m
}

func TestFlush_CleanBatchAppliesDelta(t *testing.T) {
	t.Parallel()

	p, m := newProcessor(t)
	at := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	batch := testBatch(
		testEvent("e1", "s1", models.DeviceDesktop, at),
		testEvent("e2", "s1", models.DeviceMobile, at.Add(time.Minute)),
		testEvent("e3", "s2", models.DeviceBot, at.Add(2*time.Minute)),
	)
	stats := &models.DailyStatistic{StatDate: "2026-08-25", TotalViews: 3, UniqueVisitors: 2}

	m.eventStore.EXPECT().InsertBatch(gomock.Any(), batch.Events).Return(int64(3), nil)
	m.statStore.EXPECT().
		ApplyDelta(gomock.Any(), &models.DailyStatDelta{
			StatDate:     "2026-08-25",
			Views:        3,
			DesktopViews: 1,
			MobileViews:  1,
			BotViews:     1,
		}).
		Return(nil)
	m.statStore.EXPECT().RefreshSessionStats(gomock.Any(), "2026-08-25").Return(stats, nil)
	m.cache.EXPECT().Set(gomock.Any(), caches.StatsKey("2026-08-25"), stats, sharedTTL)
	m.notifier.EXPECT().
		Publish(events.TopicStatsUpdate, gomock.Any()).
		Do(func(_ string, n events.Notification) {
			assert.Equal(t, events.KindStatsUpdated, n.Kind)
			assert.Equal(t, "2026-08-25", n.StatDate)
			assert.Same(t, stats, n.Stats)
		})

	require.NoError(t, p.Flush(context.Background(), batch))
}

func TestFlush_DuplicatesTriggerRecompute(t *testing.T) {
	t.Parallel()

	p, m := newProcessor(t)
	at := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	batch := testBatch(
		testEvent("e1", "s1", models.DeviceDesktop, at),
		testEvent("e2", "s1", models.DeviceDesktop, at.Add(time.Minute)),
	)
	stats := &models.DailyStatistic{StatDate: "2026-08-25", TotalViews: 2}

	// One row already persisted by an earlier attempt: no delta may be
	// applied, the date is rebuilt from the durable rows instead.
	m.eventStore.EXPECT().InsertBatch(gomock.Any(), batch.Events).Return(int64(1), nil)
	m.statStore.EXPECT().Recompute(gomock.Any(), "2026-08-25").Return(stats, nil)
	m.cache.EXPECT().Set(gomock.Any(), caches.StatsKey("2026-08-25"), stats, sharedTTL)
	m.notifier.EXPECT().Publish(events.TopicStatsUpdate, gomock.Any())

	require.NoError(t, p.Flush(context.Background(), batch))
}

func TestFlush_BatchSpanningTwoDates(t *testing.T) {
	t.Parallel()

	p, m := newProcessor(t)
	beforeMidnight := time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC)
	afterMidnight := time.Date(2026, 8, 25, 0, 1, 0, 0, time.UTC)
	batch := testBatch(
		testEvent("e1", "s1", models.DeviceDesktop, beforeMidnight),
		testEvent("e2", "s1", models.DeviceDesktop, afterMidnight),
	)
	day1 := &models.DailyStatistic{StatDate: "2026-08-24", TotalViews: 1}
	day2 := &models.DailyStatistic{StatDate: "2026-08-25", TotalViews: 1}

	m.eventStore.EXPECT().InsertBatch(gomock.Any(), batch.Events).Return(int64(2), nil)

	gomock.InOrder(
		m.statStore.EXPECT().
			ApplyDelta(gomock.Any(), &models.DailyStatDelta{StatDate: "2026-08-24", Views: 1, DesktopViews: 1}).
			Return(nil),
		m.statStore.EXPECT().RefreshSessionStats(gomock.Any(), "2026-08-24").Return(day1, nil),
		m.statStore.EXPECT().
			ApplyDelta(gomock.Any(), &models.DailyStatDelta{StatDate: "2026-08-25", Views: 1, DesktopViews: 1}).
			Return(nil),
		m.statStore.EXPECT().RefreshSessionStats(gomock.Any(), "2026-08-25").Return(day2, nil),
	)
	m.cache.EXPECT().Set(gomock.Any(), caches.StatsKey("2026-08-24"), day1, sharedTTL)
	m.cache.EXPECT().Set(gomock.Any(), caches.StatsKey("2026-08-25"), day2, sharedTTL)
	m.notifier.EXPECT().Publish(events.TopicStatsUpdate, gomock.Any()).Times(2)

	require.NoError(t, p.Flush(context.Background(), batch))
}

func TestFlush_InsertFailureStopsBeforeAggregation(t *testing.T) {
	t.Parallel()

	p, m := newProcessor(t)
	batch := testBatch(testEvent("e1", "s1", models.DeviceDesktop, time.Now().UTC()))

	m.eventStore.EXPECT().InsertBatch(gomock.Any(), batch.Events).Return(int64(0), errors.New("connection refused"))

	err := p.Flush(context.Background(), batch)
	require.Error(t, err)
	assert.ErrorContains(t, err, "PRO_9000")
}

func TestFlush_DeltaFailureSurfacesError(t *testing.T) {
	t.Parallel()

	p, m := newProcessor(t)
	batch := testBatch(testEvent("e1", "s1", models.DeviceDesktop, time.Now().UTC()))

	m.eventStore.EXPECT().InsertBatch(gomock.Any(), batch.Events).Return(int64(1), nil)
	m.statStore.EXPECT().ApplyDelta(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))

	err := p.Flush(context.Background(), batch)
	require.Error(t, err)
	assert.ErrorContains(t, err, "PRO_9001")
}

func TestFlush_SessionRefreshFailureSurfacesError(t *testing.T) {
	t.Parallel()

	p, m := newProcessor(t)
	batch := testBatch(testEvent("e1", "s1", models.DeviceDesktop, time.Now().UTC()))

	m.eventStore.EXPECT().InsertBatch(gomock.Any(), batch.Events).Return(int64(1), nil)
	m.statStore.EXPECT().ApplyDelta(gomock.Any(), gomock.Any()).Return(nil)
	m.statStore.EXPECT().RefreshSessionStats(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	require.Error(t, p.Flush(context.Background(), batch))
}
