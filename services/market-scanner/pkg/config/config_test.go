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
		assert.Equal(t, "market-scanner", cfg.App.Name)
		assert.Equal(t, "https://clob.polymarket.com", cfg.Polymarket.BaseURL)
		assert.Equal(t, 100, cfg.Polymarket.PageLimit)
		assert.Equal(t, 10*time.Second, cfg.Polymarket.Timeout)
		assert.Equal(t, uint64(3), cfg.Polymarket.MaxRetries)
		assert.Equal(t, time.Second, cfg.Polymarket.RetryInterval)
		assert.Equal(t, 60*time.Second, cfg.Scan.Interval)
		assert.Equal(t, 0.0001, cfg.Scan.ArbitrageTolerance)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("POLYMARKET_API_URL", "http://localhost:9999")
		t.Setenv("POLYMARKET_PAGE_LIMIT", "25")
		t.Setenv("POLYMARKET_TIMEOUT", "3s")
		t.Setenv("SCAN_INTERVAL", "2m")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999", cfg.Polymarket.BaseURL)
		assert.Equal(t, 25, cfg.Polymarket.PageLimit)
		assert.Equal(t, 3*time.Second, cfg.Polymarket.Timeout)
		assert.Equal(t, 2*time.Minute, cfg.Scan.Interval)
	})
}
