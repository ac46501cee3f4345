package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	"github.com/muhammadchandra19/paper-trading/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	Database   postgresql.Config `envPrefix:"DATABASE_"`
	Redis      redis.Config      `envPrefix:"REDIS_"`
	Kafka      kafka.Config      `envPrefix:"KAFKA_"`
	Metrics    metrics.Config    `envPrefix:"METRICS_"`
	PriceCache pricecache.Config `envPrefix:"PRICE_CACHE_"`
	Engine     EngineConfig      `envPrefix:"STRATEGY_ENGINE_"`

	StrategyConfigPath string `env:"STRATEGY_CONFIG_PATH" envDefault:"services/strategy-engine/config/strategies.yaml"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"strategy-engine"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// EngineConfig controls the evaluation loop.
type EngineConfig struct {
	Interval      time.Duration `env:"INTERVAL" envDefault:"30s"`
	CycleTimeout  time.Duration `env:"CYCLE_TIMEOUT" envDefault:"25s"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"strategy-engine"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
