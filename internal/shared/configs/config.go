package configs

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Collector CollectorConfig `mapstructure:"collector" validate:"required"`
	Processor ProcessorConfig `mapstructure:"processor" validate:"required"`
	Hub       HubConfig       `mapstructure:"hub" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-ca verify-full"`
}

// CacheConfig holds the two-tier cache settings.
type CacheConfig struct {
	RedisAddr        string `mapstructure:"redis_addr" validate:"required"`
	LocalCapacity    int    `mapstructure:"local_capacity" validate:"required,min=2"`
	LocalTTLSeconds  int    `mapstructure:"local_ttl_seconds" validate:"required,min=1"`
	SharedTTLSeconds int    `mapstructure:"shared_ttl_seconds" validate:"required,min=1"`
}

// CollectorConfig holds the log collector batching settings.
type CollectorConfig struct {
	MaxBatchSize   int `mapstructure:"max_batch_size" validate:"required,min=1"`
	MaxBatchWaitMS int `mapstructure:"max_batch_wait_ms" validate:"required,min=1"`
	QueueCapacity  int `mapstructure:"queue_capacity" validate:"required,min=1"`
}

// ProcessorConfig holds the batch processor retry settings.
type ProcessorConfig struct {
	MaxAttempts    int `mapstructure:"max_attempts" validate:"required,min=1"`
	RetryBackoffMS int `mapstructure:"retry_backoff_ms" validate:"required,min=1"`
}

// HubConfig holds the realtime distribution hub settings.
type HubConfig struct {
	SubscriberBuffer  int `mapstructure:"subscriber_buffer" validate:"required,min=1"`
	OverflowThreshold int `mapstructure:"overflow_threshold" validate:"required,min=1"`
}
