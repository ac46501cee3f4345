package v1

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
)

// Side is the direction of a signal.
type Side string

const (
	// SideBuy opens or adds to a position.
	SideBuy Side = "buy"
	// SideSell reduces or closes a position.
	SideSell Side = "sell"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Tick is one stored market data point.
type Tick struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Window is the market data a strategy sees in one evaluation: every tick of its
// symbols with From <= timestamp <= AsOf, ascending.
type Window struct {
	From   time.Time
	AsOf   time.Time
	series map[string][]Tick
}

// NewWindow groups ticks per symbol and orders each series by timestamp then id.
func NewWindow(from, asOf time.Time, ticks []Tick) Window {
	series := make(map[string][]Tick)
	for _, t := range ticks {
		series[t.Symbol] = append(series[t.Symbol], t)
	}
	for _, s := range series {
		sort.SliceStable(s, func(i, j int) bool {
			if s[i].Timestamp.Equal(s[j].Timestamp) {
				return s[i].ID < s[j].ID
			}
			return s[i].Timestamp.Before(s[j].Timestamp)
		})
	}
	return Window{From: from, AsOf: asOf, series: series}
}

// Ticks returns the series for symbol, oldest first.
func (w Window) Ticks(symbol string) []Tick {
	return w.series[symbol]
}

// Last returns the newest tick of symbol.
func (w Window) Last(symbol string) (Tick, bool) {
	s := w.series[symbol]
	if len(s) == 0 {
		return Tick{}, false
	}
	return s[len(s)-1], true
}

// Prices returns the prices of symbol, oldest first.
func (w Window) Prices(symbol string) []float64 {
	s := w.series[symbol]
	out := make([]float64, len(s))
	for i, t := range s {
		out[i] = t.Price
	}
	return out
}

// Len is the number of ticks across all symbols.
func (w Window) Len() int {
	n := 0
	for _, s := range w.series {
		n += len(s)
	}
	return n
}

// Signal is a trade instruction emitted by a strategy.
type Signal struct {
	ID             uuid.UUID `json:"id"`
	Strategy       string    `json:"strategy"`
	Symbol         string    `json:"symbol"`
	Side           Side      `json:"side"`
	Quantity       float64   `json:"quantity"`
	ReferencePrice float64   `json:"referencePrice"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewSignal builds a signal whose id depends only on strategy, symbol, side and
// timestamp, so evaluating the same window twice yields the same id.
func NewSignal(strategy, symbol string, side Side, quantity, referencePrice float64, reason string, ts time.Time) Signal {
	ts = ts.UTC()
	return Signal{
		ID:             SignalID(strategy, symbol, side, ts),
		Strategy:       strategy,
		Symbol:         symbol,
		Side:           side,
		Quantity:       quantity,
		ReferencePrice: referencePrice,
		Reason:         reason,
		Timestamp:      ts,
	}
}

// SignalID derives the deterministic id of a signal.
func SignalID(strategy, symbol string, side Side, ts time.Time) uuid.UUID {
	return util.NameUUID(util.SignalNamespace, strategy, symbol, string(side), ts.UTC().Format(time.RFC3339Nano))
}
