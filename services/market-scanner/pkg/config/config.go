package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	"github.com/muhammadchandra19/paper-trading/pkg/redis"
	"github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/infrastructure/polymarket"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	Database   postgresql.Config `envPrefix:"DATABASE_"`
	Redis      redis.Config      `envPrefix:"REDIS_"`
	Metrics    metrics.Config    `envPrefix:"METRICS_"`
	PriceCache pricecache.Config `envPrefix:"PRICE_CACHE_"`
	Polymarket polymarket.Config `envPrefix:"POLYMARKET_"`
	Scan       ScanConfig        `envPrefix:"SCAN_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"market-scanner"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// ScanConfig controls the scan loop.
type ScanConfig struct {
	Interval           time.Duration `env:"INTERVAL" envDefault:"60s"`
	Timeout            time.Duration `env:"TIMEOUT" envDefault:"5m"`
	ArbitrageTolerance float64       `env:"ARBITRAGE_TOLERANCE" envDefault:"0.0001"`
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
