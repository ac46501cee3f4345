package kafka

import (
	"testing"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	cfg := Config{Brokers: []string{"localhost:9092"}}

	testCases := []struct {
		name      string
		group     string
		wantGroup string
	}{
		{
			name:      "service default group",
			wantGroup: "strategy-engine",
		},
		{
			name:      "configured group wins",
			group:     "replay",
			wantGroup: "replay",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := cfg
			c.ConsumerGroup = tc.group

			r := NewReader(c, "market-ticks", "strategy-engine", logger.NewNop())
			defer r.Close()

			got := r.Config()
			assert.Equal(t, "market-ticks", got.Topic)
			assert.Equal(t, tc.wantGroup, got.GroupID)
			require.NotNil(t, got.ErrorLogger)
			got.ErrorLogger.Printf("rebalance failed: %s", "test")
		})
	}
}

func TestNewWriter(t *testing.T) {
	w := NewWriter(Config{Brokers: []string{"a:9092", "b:9092"}}, "signals", logger.NewNop())
	defer w.Close()

	assert.Equal(t, "signals", w.Topic)
	require.NotNil(t, w.ErrorLogger)
	w.ErrorLogger.Printf("write failed: %s", "test")
}
