package stores

import (
	"context"
	"fmt"

	"access-analytics/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventStore persists normalized access events. The insert is idempotent on
// event id: re-delivering an already-persisted event is a no-op, not an
// error, which is what allows the flush worker to retry a batch that
// partially succeeded before a crash.
//
//go:generate mockgen -source=event_store.go -destination=./mocks/event_store_mock.go -package=mocks
type EventStore interface {
	// InsertBatch writes all events in one atomic multi-row insert and
	// returns the number of rows actually inserted. A return value lower
	// than len(events) means duplicates were skipped.
	InsertBatch(ctx context.Context, events []*models.AccessEvent) (int64, error)
}

type eventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) EventStore {
	return &eventStore{db: db}
}

func (s *eventStore) InsertBatch(ctx context.Context, events []*models.AccessEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&events)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert event batch: %w", result.Error)
	}

	return result.RowsAffected, nil
}
