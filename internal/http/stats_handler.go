package http

import (
	"context"
	"net/http"
	"time"

	"access-analytics/internal/caches"
	"access-analytics/internal/models"
	"access-analytics/internal/stores"

	"github.com/go-chi/chi/v5"
)

type statsHandler struct {
	cache     caches.Manager
	statStore stores.StatisticStore
}

func NewStatsHandler(cache caches.Manager, statStore stores.StatisticStore) AppHttpHandler {
	return &statsHandler{
		cache:     cache,
		statStore: statStore,
	}
}

// Handle processes GET /stats/{date} requests through the cache tiers. A
// date with no committed events returns the zero aggregate, not 404.
func (h *statsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	date := chi.URLParam(r, "date")
	if _, err := time.ParseInLocation(models.DateLayout, date, time.UTC); err != nil {
		return errInvalidDate(date)
	}

	stats, err := h.cache.Get(r.Context(), caches.StatsKey(date), func(ctx context.Context) (*models.DailyStatistic, error) {
		return h.statStore.Get(ctx, date)
	})
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, stats)
	return nil
}
