package util

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithRequestID(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "")
	assert.NotEmpty(t, GetRequestID(ctx))

	ctx = ContextWithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))
}

func TestFields(t *testing.T) {
	ctx := WithRequestID(context.Background(), "r")
	ctx = WithCycleID(ctx, "c")
	ctx = WithStrategy(ctx, "momentum")
	ctx = WithPortfolioID(ctx, "default")

	assert.Equal(t, map[string]interface{}{
		"request_id":   "r",
		"cycle_id":     "c",
		"strategy":     "momentum",
		"portfolio_id": "default",
	}, Fields(ctx))
}

func TestNewULID_Monotonic(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewULID(at)
		parsed, err := ulid.ParseStrict(id)
		require.NoError(t, err)
		assert.Equal(t, ulid.Timestamp(at), parsed.Time())
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestNameUUID_Deterministic(t *testing.T) {
	a := NameUUID(SignalNamespace, "momentum", "BTC", "buy", "1700000000000")
	b := NameUUID(SignalNamespace, "momentum", "BTC", "buy", "1700000000000")
	c := NameUUID(SignalNamespace, "momentum", "BTC", "sell", "1700000000000")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 5, int(a.Version()))
}
