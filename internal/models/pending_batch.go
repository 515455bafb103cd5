package models

import (
	"sort"
	"time"
)

// PendingBatch is an ordered, bounded sequence of AccessEvents awaiting
// persistence. The collector owns it until flush time, when ownership
// transfers (by pointer, never copied) to the batch processor. A batch ceases
// to exist once its flush commits, or is re-queued at the front of the
// collector queue on failure with Attempts incremented.
type PendingBatch struct {
	BatchID      string
	Events       []*AccessEvent
	FirstEventAt time.Time
	Attempts     int
}

// Size returns the number of events in the batch.
func (b *PendingBatch) Size() int {
	return len(b.Events)
}

// Dates returns the distinct daily aggregate keys the batch touches, sorted.
func (b *PendingBatch) Dates() []string {
	seen := make(map[string]struct{})
	for _, event := range b.Events {
		seen[event.DateKey()] = struct{}{}
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
