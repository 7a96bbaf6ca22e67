package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// Config holds all configuration for the application.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production test"`

	DBDriver          string        `env:"DB_DRIVER" envDefault:"sqlite3" validate:"required"`
	DBPath            string        `env:"DB_PATH" envDefault:"./data/database.db" validate:"required"`
	DBBootstrapSchema bool          `env:"DB_BOOTSTRAP_SCHEMA" envDefault:"false"`
	DBTimeout         time.Duration `env:"DB_TIMEOUT" envDefault:"5s" validate:"gt=0"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0,lte=15"`

	GRPCPort              int  `env:"GRPC_PORT" envDefault:"50051" validate:"gte=0,lte=65535"`
	GRPCReflectionEnabled bool `env:"GRPC_REFLECTION_ENABLED" envDefault:"false"`
	GRPCLoggingEnabled    bool `env:"GRPC_LOGGING_ENABLED" envDefault:"true"`

	CacheTTL               time.Duration `env:"CACHE_TTL" envDefault:"10m" validate:"gt=0"`
	AggregationParallelism int           `env:"AGGREGATION_PARALLELISM" envDefault:"1" validate:"gte=1,lte=256"`

	// MetricsAddr is the ops HTTP listen address. Empty disables it.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// LoadFromEnv loads and validates configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	switch cfg.AppEnv {
	case "production":
		return zap.NewProduction()
	case "test":
		return zap.NewNop(), nil
	default:
		return zap.NewDevelopment()
	}
}
