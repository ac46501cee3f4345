package redis

import (
	"context"
	"testing"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestClient_ConnectValidation(t *testing.T) {
	tests := []struct {
		name   string
		config func() *Config
	}{
		{name: "nil config", config: func() *Config { return nil }},
		{name: "no addresses", config: func() *Config {
			c := DefaultConfig()
			c.Addrs = nil
			return c
		}},
		{name: "bad mode", config: func() *Config {
			c := DefaultConfig()
			c.Mode = "sentinel"
			return c
		}},
		{name: "zero pool", config: func() *Config {
			c := DefaultConfig()
			c.PoolSize = 0
			return c
		}},
		{name: "negative retries", config: func() *Config {
			c := DefaultConfig()
			c.MaxRetries = -1
			return c
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(logger.NewNop(), tt.config())
			err := c.Connect(context.Background())
			assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisConfigError)))
		})
	}
}

func TestClient_KeyPrefix(t *testing.T) {
	c := &client{config: &Config{PrefixKey: "papertrade:"}}
	assert.Equal(t, "papertrade:price:BTC", c.key("price:BTC"))
}
