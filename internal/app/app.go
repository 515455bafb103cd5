package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"access-analytics/internal/caches"
	"access-analytics/internal/collectors"
	"access-analytics/internal/hubs"
	internalhttp "access-analytics/internal/http"
	"access-analytics/internal/models"
	"access-analytics/internal/processors"
	"access-analytics/internal/shared/configs"
	"access-analytics/internal/shared/loggers"
	"access-analytics/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	collector   collectors.Collector
	flushWorker *processors.FlushWorker
	hub         *hubs.Hub
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "access-analytics").
		Logger()

	// Initialize database and stores
	db, err := stores.NewPostgresDB(config.Database, loggers.Component(appLogger, "stores"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	eventStore := stores.NewEventStore(db)
	statStore := stores.NewStatisticStore(db)

	// Initialize the two-tier cache
	localCache := caches.NewFIFOCache[*models.DailyStatistic](config.Cache.LocalCapacity)
	sharedCache := caches.NewRedisCache(config.Cache.RedisAddr)
	localTTL := time.Duration(config.Cache.LocalTTLSeconds) * time.Second
	sharedTTL := time.Duration(config.Cache.SharedTTLSeconds) * time.Second
	cacheManager := caches.NewManager(localCache, sharedCache, localTTL, sharedTTL, loggers.Component(appLogger, "caches"))

	// Initialize the distribution hub
	hub := hubs.NewHub(config.Hub.SubscriberBuffer, config.Hub.OverflowThreshold, loggers.Component(appLogger, "hubs"))

	// Initialize the collector
	collector := collectors.NewCollector(
		collectors.NewNormalizer(),
		config.Collector.MaxBatchSize,
		time.Duration(config.Collector.MaxBatchWaitMS)*time.Millisecond,
		config.Collector.QueueCapacity,
		loggers.Component(appLogger, "collectors"),
	)

	// Initialize the batch processor and its worker
	processor := processors.NewBatchProcessor(
		eventStore,
		statStore,
		cacheManager,
		hub,
		sharedTTL,
		loggers.Component(appLogger, "processors"),
	)
	flushWorker := processors.NewFlushWorker(
		collector,
		processor,
		hub,
		config.Processor.MaxAttempts,
		time.Duration(config.Processor.RetryBackoffMS)*time.Millisecond,
		loggers.Component(appLogger, "processors"),
	)

	// Initialize http router
	router := internalhttp.NewRouter(collector, cacheManager, statStore, hub, loggers.Component(appLogger, "http"))

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:      config,
		appLogger:   appLogger,
		server:      server,
		collector:   collector,
		flushWorker: flushWorker,
		hub:         hub,
	}, nil
}

// Start starts the flush worker and then the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting access-analytics service on port %d (log_level=%s, batch_size=%d, batch_wait_ms=%d)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Collector.MaxBatchSize,
			app.config.Collector.MaxBatchWaitMS)

	app.flushWorker.Start(context.Background())

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application: stop intake, flush every
// accepted event, then release live subscribers.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Stop accepting new events
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Seal the in-progress batch and close the queue
	app.collector.Shutdown()
	app.appLogger.Info().Msg("Collector stopped")

	// 3) Let the worker drain queued batches, bounded by the shutdown context
	drained := make(chan struct{})
	go func() {
		app.flushWorker.Drain()
		close(drained)
	}()
	select {
	case <-drained:
		app.appLogger.Info().Msg("Flush worker drained")
	case <-ctx.Done():
		app.flushWorker.Stop()
		app.appLogger.Warn().Msg("Flush worker aborted before draining")
	}

	// 4) Disconnect live subscribers
	app.hub.Close()
	app.appLogger.Info().Msg("Hub closed")

	return nil
}
