package events

import (
	"time"

	"access-analytics/internal/models"
)

// Topics the distribution hub fans out on. Stats updates and alerts are
// independent streams; no ordering is guaranteed between them.
const (
	TopicStatsUpdate = "stats-update"
	TopicAlert       = "alert"
)

// Notification kinds.
const (
	KindStatsUpdated = "stats-updated"
	KindDataLoss     = "data-loss"
)

// Notification is the payload broadcast to live subscribers. A stats-updated
// notification carries the freshly committed aggregate snapshot for one date;
// a data-loss alert reports a batch whose persistence retries were exhausted.
//
// Example JSON:
//
//	{
//	  "kind": "stats-updated",
//	  "statDate": "2026-08-25",
//	  "stats": {"statDate": "2026-08-25", "totalViews": 1207, ...},
//	  "publishedAt": "2026-08-25T18:03:12Z"
//	}
type Notification struct {
	Kind        string                 `json:"kind"`
	StatDate    string                 `json:"statDate,omitempty"`
	Stats       *models.DailyStatistic `json:"stats,omitempty"`
	BatchID     string                 `json:"batchId,omitempty"`
	LostEvents  int                    `json:"lostEvents,omitempty"`
	PublishedAt time.Time              `json:"publishedAt"`
}

// NewStatsUpdated builds the notification published after a successful
// commit touching the given date.
func NewStatsUpdated(stats *models.DailyStatistic) Notification {
	return Notification{
		Kind:        KindStatsUpdated,
		StatDate:    stats.StatDate,
		Stats:       stats,
		PublishedAt: time.Now().UTC(),
	}
}

// NewDataLoss builds the alert published when a batch exhausts its
// persistence retries and is dropped.
func NewDataLoss(batchID string, lostEvents int) Notification {
	return Notification{
		Kind:        KindDataLoss,
		BatchID:     batchID,
		LostEvents:  lostEvents,
		PublishedAt: time.Now().UTC(),
	}
}
