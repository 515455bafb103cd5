package http

import (
	"net/http"

	"access-analytics/internal/caches"
	"access-analytics/internal/collectors"
	"access-analytics/internal/hubs"
	"access-analytics/internal/shared/loggers"
	"access-analytics/internal/shared/metrics"
	"access-analytics/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	collector collectors.Collector,
	cache caches.Manager,
	statStore stores.StatisticStore,
	hub *hubs.Hub,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestEventHandler := NewIngestEventHandler(collector)
	statsHandler := NewStatsHandler(cache, statStore)
	liveHandler := NewLiveHandler(hub)

	// Routes
	router.Post("/events", errorHandlingAdapter(ingestEventHandler))
	router.Get("/stats/{date}", errorHandlingAdapter(statsHandler))
	router.Get("/live", liveHandler.ServeHTTP)
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return router
}
