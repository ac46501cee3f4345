package strategy

import (
	"fmt"
	"time"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

type momentum struct {
	base
	threshold   float64
	minNotional float64
}

// NewMomentum trades the relative move between the first and the last tick of the
// window: a rise of at least threshold buys, a fall of at least threshold sells.
// With minNotional > 0, windows that traded less than minNotional (price x volume)
// are ignored.
func NewMomentum(name string, symbols []string, lookback time.Duration, quantity, threshold, minNotional float64) (*momentum, error) {
	if len(symbols) == 0 {
		return nil, invalid(name, "no symbols")
	}
	if threshold <= 0 {
		return nil, invalid(name, "threshold must be positive")
	}
	if quantity <= 0 {
		return nil, invalid(name, "quantity must be positive")
	}
	return &momentum{
		base:        base{name: name, symbols: symbols, lookback: lookback, quantity: quantity},
		threshold:   threshold,
		minNotional: minNotional,
	}, nil
}

func (m *momentum) Evaluate(window marketv1.Window) ([]marketv1.Signal, error) {
	var signals []marketv1.Signal
	for _, symbol := range m.symbols {
		ticks := window.Ticks(symbol)
		if len(ticks) < 2 {
			continue
		}
		first, last := ticks[0], ticks[len(ticks)-1]
		if first.Price <= 0 {
			continue
		}

		if m.minNotional > 0 {
			notional := 0.0
			for _, t := range ticks {
				notional += t.Price * t.Volume
			}
			if notional < m.minNotional {
				continue
			}
		}

		change := (last.Price - first.Price) / first.Price
		var side marketv1.Side
		switch {
		case change >= m.threshold:
			side = marketv1.SideBuy
		case change <= -m.threshold:
			side = marketv1.SideSell
		default:
			continue
		}

		reason := fmt.Sprintf("momentum %+.4f%% over %d ticks", change*100, len(ticks))
		signals = append(signals, marketv1.NewSignal(m.name, symbol, side, m.quantity, last.Price, reason, last.Timestamp))
	}
	return signals, nil
}
