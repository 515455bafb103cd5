package stores

import (
	"fmt"
	"time"

	"access-analytics/internal/models"
	"access-analytics/internal/shared/configs"
	"access-analytics/internal/shared/loggers"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectMaxRetries = 5
	connectRetryDelay = 2 * time.Second
)

// NewPostgresDB opens the analytics database with bounded retry and runs the
// schema migration for the two analytics tables. The unique primary key on
// access_events.event_id is what makes batch re-delivery idempotent.
func NewPostgresDB(cfg configs.DatabaseConfig, logger loggers.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	var db *gorm.DB
	var err error
	retryDelay := connectRetryDelay

	for attempt := 1; attempt <= connectMaxRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			break
		}

		logger.Warn().
			Err(err).
			Int(loggers.FieldAttempt, attempt).
			Msg("database connection failed")

		if attempt < connectMaxRetries {
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database connection failed after %d attempts: %w", connectMaxRetries, err)
	}

	if err := db.AutoMigrate(&models.AccessEvent{}, &models.DailyStatistic{}); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	logger.Info().Msg("database connection established")
	return db, nil
}
