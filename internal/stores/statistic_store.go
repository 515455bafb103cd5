package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"access-analytics/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatisticStore owns the daily_statistics table. The view/device counters
// are algebraic and applied as increment upserts; the session-derived fields
// (unique visitors, bounce rate, average session length) are re-derived from
// the persisted events, so the row always equals what a full replay of the
// date's events would produce.
//
//go:generate mockgen -source=statistic_store.go -destination=./mocks/statistic_store_mock.go -package=mocks
type StatisticStore interface {
	// Get returns the aggregate for a date, or the empty aggregate when no
	// event of that date has been committed yet.
	Get(ctx context.Context, date string) (*models.DailyStatistic, error)

	// ApplyDelta adds a batch's algebraic contribution with a per-date
	// increment upsert, creating the row lazily on the first event of a day.
	ApplyDelta(ctx context.Context, delta *models.DailyStatDelta) error

	// RefreshSessionStats re-derives the session-dependent fields of one
	// date from persisted events and returns the updated aggregate.
	RefreshSessionStats(ctx context.Context, date string) (*models.DailyStatistic, error)

	// Recompute rebuilds the entire aggregate of one date from persisted
	// events. Used when a retried batch contained duplicates, where blind
	// delta application would double-count.
	Recompute(ctx context.Context, date string) (*models.DailyStatistic, error)
}

type statisticStore struct {
	db *gorm.DB
}

func NewStatisticStore(db *gorm.DB) StatisticStore {
	return &statisticStore{db: db}
}

func (s *statisticStore) Get(ctx context.Context, date string) (*models.DailyStatistic, error) {
	var stat models.DailyStatistic
	err := s.db.WithContext(ctx).
		Where("stat_date = ?", date).
		First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewEmptyDailyStatistic(date), nil
		}
		return nil, fmt.Errorf("failed to get daily statistic: %w", err)
	}
	return &stat, nil
}

func (s *statisticStore) ApplyDelta(ctx context.Context, delta *models.DailyStatDelta) error {
	row := &models.DailyStatistic{
		StatDate:     delta.StatDate,
		TotalViews:   delta.Views,
		DesktopViews: delta.DesktopViews,
		MobileViews:  delta.MobileViews,
		TabletViews:  delta.TabletViews,
		BotViews:     delta.BotViews,
		UpdatedAt:    time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stat_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_views":   gorm.Expr("daily_statistics.total_views + EXCLUDED.total_views"),
				"desktop_views": gorm.Expr("daily_statistics.desktop_views + EXCLUDED.desktop_views"),
				"mobile_views":  gorm.Expr("daily_statistics.mobile_views + EXCLUDED.mobile_views"),
				"tablet_views":  gorm.Expr("daily_statistics.tablet_views + EXCLUDED.tablet_views"),
				"bot_views":     gorm.Expr("daily_statistics.bot_views + EXCLUDED.bot_views"),
				"updated_at":    gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to apply statistic delta: %w", err)
	}
	return nil
}

// sessionRollup is the scan target for the per-session aggregation query.
type sessionRollup struct {
	Sessions          int64
	Bounces           int64
	AvgSessionSeconds float64
}

const sessionRollupQuery = `
SELECT
	COUNT(*) AS sessions,
	COALESCE(COUNT(*) FILTER (WHERE views = 1), 0) AS bounces,
	COALESCE(AVG(duration_seconds), 0) AS avg_session_seconds
FROM (
	SELECT
		session_id,
		COUNT(*) AS views,
		EXTRACT(EPOCH FROM (MAX(occurred_at) - MIN(occurred_at))) AS duration_seconds
	FROM access_events
	WHERE occurred_at >= ? AND occurred_at < ? AND session_id <> ''
	GROUP BY session_id
) per_session`

func (s *statisticStore) RefreshSessionStats(ctx context.Context, date string) (*models.DailyStatistic, error) {
	dayStart, dayEnd, err := dateBounds(date)
	if err != nil {
		return nil, err
	}

	var rollup sessionRollup
	if err := s.db.WithContext(ctx).
		Raw(sessionRollupQuery, dayStart, dayEnd).
		Scan(&rollup).Error; err != nil {
		return nil, fmt.Errorf("failed to roll up sessions: %w", err)
	}

	bounceRate := 0.0
	if rollup.Sessions > 0 {
		bounceRate = float64(rollup.Bounces) / float64(rollup.Sessions)
	}

	err = s.db.WithContext(ctx).
		Model(&models.DailyStatistic{}).
		Where("stat_date = ?", date).
		Updates(map[string]interface{}{
			"unique_visitors":     rollup.Sessions,
			"bounce_rate":         bounceRate,
			"avg_session_seconds": rollup.AvgSessionSeconds,
			"updated_at":          time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session stats: %w", err)
	}

	return s.Get(ctx, date)
}

// viewRollup is the scan target for the per-device view count query.
type viewRollup struct {
	TotalViews   int64
	DesktopViews int64
	MobileViews  int64
	TabletViews  int64
	BotViews     int64
}

const viewRollupQuery = `
SELECT
	COUNT(*) AS total_views,
	COALESCE(COUNT(*) FILTER (WHERE device_class = 'desktop'), 0) AS desktop_views,
	COALESCE(COUNT(*) FILTER (WHERE device_class = 'mobile'), 0) AS mobile_views,
	COALESCE(COUNT(*) FILTER (WHERE device_class = 'tablet'), 0) AS tablet_views,
	COALESCE(COUNT(*) FILTER (WHERE device_class = 'bot'), 0) AS bot_views
FROM access_events
WHERE occurred_at >= ? AND occurred_at < ?`

func (s *statisticStore) Recompute(ctx context.Context, date string) (*models.DailyStatistic, error) {
	dayStart, dayEnd, err := dateBounds(date)
	if err != nil {
		return nil, err
	}

	var views viewRollup
	if err := s.db.WithContext(ctx).
		Raw(viewRollupQuery, dayStart, dayEnd).
		Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to roll up views: %w", err)
	}

	var sessions sessionRollup
	if err := s.db.WithContext(ctx).
		Raw(sessionRollupQuery, dayStart, dayEnd).
		Scan(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to roll up sessions: %w", err)
	}

	bounceRate := 0.0
	if sessions.Sessions > 0 {
		bounceRate = float64(sessions.Bounces) / float64(sessions.Sessions)
	}

	stat := &models.DailyStatistic{
		StatDate:          date,
		TotalViews:        views.TotalViews,
		UniqueVisitors:    sessions.Sessions,
		DesktopViews:      views.DesktopViews,
		MobileViews:       views.MobileViews,
		TabletViews:       views.TabletViews,
		BotViews:          views.BotViews,
		BounceRate:        bounceRate,
		AvgSessionSeconds: sessions.AvgSessionSeconds,
		UpdatedAt:         time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stat_date"}},
			UpdateAll: true,
		}).
		Create(stat).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert recomputed statistic: %w", err)
	}

	return stat, nil
}

func dateBounds(date string) (time.Time, time.Time, error) {
	dayStart, err := time.ParseInLocation(models.DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid stat date %q: %w", date, err)
	}
	return dayStart, dayStart.Add(24 * time.Hour), nil
}
