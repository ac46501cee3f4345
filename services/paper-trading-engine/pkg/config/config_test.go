package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "paper-trading-engine", cfg.App.Name)
		assert.Equal(t, 15*time.Second, cfg.Engine.Interval)
		assert.Equal(t, "default", cfg.Engine.PortfolioID)
		assert.Equal(t, 10000.0, cfg.Engine.StartingCash)
		assert.Equal(t, 100, cfg.Engine.BatchSize)
		assert.Equal(t, 30*time.Second, cfg.Engine.LockTTL)
		assert.Equal(t, "last_trade", cfg.Fill.Model)
		assert.Zero(t, cfg.Fill.SlippageBps)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PAPER_ENGINE_INTERVAL", "5s")
		t.Setenv("PAPER_PORTFOLIO_ID", "alt")
		t.Setenv("PAPER_STARTING_CASH", "2500.5")
		t.Setenv("FILL_MODEL", "slippage")
		t.Setenv("FILL_SLIPPAGE_BPS", "15")
		t.Setenv("REDIS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.Engine.Interval)
		assert.Equal(t, "alt", cfg.Engine.PortfolioID)
		assert.Equal(t, 2500.5, cfg.Engine.StartingCash)
		assert.Equal(t, "slippage", cfg.Fill.Model)
		assert.Equal(t, 15.0, cfg.Fill.SlippageBps)
		assert.True(t, cfg.Redis.Enabled)
	})
}
