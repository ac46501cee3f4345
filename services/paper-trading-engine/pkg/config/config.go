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
	Engine     EngineConfig      `envPrefix:"PAPER_"`
	Fill       FillConfig        `envPrefix:"FILL_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"paper-trading-engine"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// EngineConfig controls the trading loop and the portfolio it trades.
type EngineConfig struct {
	Interval      time.Duration `env:"ENGINE_INTERVAL" envDefault:"15s"`
	CycleTimeout  time.Duration `env:"CYCLE_TIMEOUT" envDefault:"60s"`
	PortfolioID   string        `env:"PORTFOLIO_ID" envDefault:"default"`
	StartingCash  float64       `env:"STARTING_CASH" envDefault:"10000"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"100"`
	LockTTL       time.Duration `env:"LOCK_TTL" envDefault:"30s"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"paper-trading-engine"`
}

// FillConfig selects the fill model.
type FillConfig struct {
	Model       string  `env:"MODEL" envDefault:"last_trade"`
	SlippageBps float64 `env:"SLIPPAGE_BPS" envDefault:"0"`
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
