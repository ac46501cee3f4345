// Package event defines the JSON payloads exchanged over Kafka between the tick
// producers, the strategy engine and the paper trading engine.
package event

import (
	"math"
	"strings"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
)

// TickEvent is one trade print for a symbol.
type TickEvent struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Validate rejects ticks that cannot be stored.
func (e TickEvent) Validate() error {
	switch {
	case strings.TrimSpace(e.Symbol) == "":
		return errors.NewErrorDetails("tick symbol is empty", string(errors.GeneralBadRequestError), "symbol")
	case math.IsNaN(e.Price) || math.IsInf(e.Price, 0) || e.Price < 0:
		return errors.NewErrorDetails("tick price is invalid", string(errors.ErrInvalidPrice), "price")
	case math.IsNaN(e.Volume) || e.Volume < 0:
		return errors.NewErrorDetails("tick volume is invalid", string(errors.GeneralBadRequestError), "volume")
	case e.Timestamp.IsZero():
		return errors.NewErrorDetails("tick timestamp is empty", string(errors.GeneralBadRequestError), "timestamp")
	}
	return nil
}

// SignalEvent announces that a new PENDING signal was stored. Consumers treat it as
// a wake up call; the signals table stays the source of truth.
type SignalEvent struct {
	ID        string    `json:"id"`
	Strategy  string    `json:"strategy"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Quantity  float64   `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}
