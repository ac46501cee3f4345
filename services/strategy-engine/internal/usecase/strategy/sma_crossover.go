package strategy

import (
	"fmt"
	"time"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

type smaCrossover struct {
	base
	fast int
	slow int
}

// NewSMACrossover compares a fast and a slow simple moving average of tick prices.
// A signal is emitted only on the tick where the fast average crosses the slow one.
func NewSMACrossover(name string, symbols []string, lookback time.Duration, quantity float64, fast, slow int) (*smaCrossover, error) {
	if len(symbols) == 0 {
		return nil, invalid(name, "no symbols")
	}
	if fast <= 0 || slow <= fast {
		return nil, invalid(name, "need 0 < fast_period < slow_period, got %d and %d", fast, slow)
	}
	if quantity <= 0 {
		return nil, invalid(name, "quantity must be positive")
	}
	return &smaCrossover{
		base: base{name: name, symbols: symbols, lookback: lookback, quantity: quantity},
		fast: fast,
		slow: slow,
	}, nil
}

func (s *smaCrossover) Evaluate(window marketv1.Window) ([]marketv1.Signal, error) {
	var signals []marketv1.Signal
	for _, symbol := range s.symbols {
		prices := window.Prices(symbol)
		n := len(prices)
		if n < s.slow+1 {
			continue
		}

		prevDiff := sma(prices[:n-1], s.fast) - sma(prices[:n-1], s.slow)
		diff := sma(prices, s.fast) - sma(prices, s.slow)

		var side marketv1.Side
		switch {
		case prevDiff <= 0 && diff > 0:
			side = marketv1.SideBuy
		case prevDiff >= 0 && diff < 0:
			side = marketv1.SideSell
		default:
			continue
		}

		last, _ := window.Last(symbol)
		reason := fmt.Sprintf("sma(%d) crossed sma(%d) %s: %.6f", s.fast, s.slow, crossDirection(side), diff)
		signals = append(signals, marketv1.NewSignal(s.name, symbol, side, s.quantity, last.Price, reason, last.Timestamp))
	}
	return signals, nil
}

// sma averages the last period values.
func sma(values []float64, period int) float64 {
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

func crossDirection(side marketv1.Side) string {
	if side == marketv1.SideBuy {
		return "up"
	}
	return "down"
}
