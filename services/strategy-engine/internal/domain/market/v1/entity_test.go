package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWindow_OrdersSeries(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := NewWindow(base, base.Add(time.Minute), []Tick{
		{ID: 3, Symbol: "BTC-USD", Price: 3, Timestamp: base.Add(2 * time.Second)},
		{ID: 2, Symbol: "BTC-USD", Price: 2, Timestamp: base.Add(time.Second)},
		{ID: 1, Symbol: "BTC-USD", Price: 1, Timestamp: base.Add(time.Second)},
		{ID: 4, Symbol: "ETH-USD", Price: 10, Timestamp: base},
	})

	assert.Equal(t, []float64{1, 2, 3}, w.Prices("BTC-USD"))
	assert.Equal(t, 4, w.Len())

	last, ok := w.Last("BTC-USD")
	assert.True(t, ok)
	assert.Equal(t, int64(3), last.ID)

	_, ok = w.Last("SOL-USD")
	assert.False(t, ok)
	assert.Empty(t, w.Prices("SOL-USD"))
}

func TestSignalID_Deterministic(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	a := NewSignal("momentum", "BTC-USD", SideBuy, 1, 100, "a", ts)
	b := NewSignal("momentum", "BTC-USD", SideBuy, 2, 101, "b", ts.UTC())
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, time.UTC, a.Timestamp.Location())

	assert.NotEqual(t, a.ID, NewSignal("momentum", "BTC-USD", SideSell, 1, 100, "a", ts).ID)
	assert.NotEqual(t, a.ID, NewSignal("momentum", "BTC-USD", SideBuy, 1, 100, "a", ts.Add(time.Nanosecond)).ID)
	assert.NotEqual(t, a.ID, NewSignal("sma", "BTC-USD", SideBuy, 1, 100, "a", ts).ID)
}

func TestSide_Valid(t *testing.T) {
	assert.True(t, SideBuy.Valid())
	assert.True(t, SideSell.Valid())
	assert.False(t, Side("hold").Valid())
}
