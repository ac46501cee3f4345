package strategy

import (
	"fmt"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/arbitrage"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

type parity struct {
	base
	markets []string
	minEdge float64
}

// NewArbitrage buys both outcomes of a binary market when their latest prices add up
// to less than 1 - minEdge, since a YES and a NO share together always redeem for 1.
func NewArbitrage(name string, markets []string, lookback time.Duration, quantity, minEdge float64) (*parity, error) {
	if len(markets) == 0 {
		return nil, invalid(name, "no markets")
	}
	if minEdge < 0 || minEdge >= 1 {
		return nil, invalid(name, "min_edge must be in [0, 1)")
	}
	if quantity <= 0 {
		return nil, invalid(name, "quantity must be positive")
	}

	symbols := make([]string, 0, 2*len(markets))
	for _, m := range markets {
		symbols = append(symbols, arbitrage.LegSymbol(m, arbitrage.OutcomeYes), arbitrage.LegSymbol(m, arbitrage.OutcomeNo))
	}

	tolerance := minEdge
	if tolerance < arbitrage.DefaultTolerance {
		tolerance = arbitrage.DefaultTolerance
	}

	return &parity{
		base:    base{name: name, symbols: symbols, lookback: lookback, quantity: quantity},
		markets: markets,
		minEdge: tolerance,
	}, nil
}

func (p *parity) Evaluate(window marketv1.Window) ([]marketv1.Signal, error) {
	var signals []marketv1.Signal
	for _, market := range p.markets {
		yesSymbol := arbitrage.LegSymbol(market, arbitrage.OutcomeYes)
		noSymbol := arbitrage.LegSymbol(market, arbitrage.OutcomeNo)

		yes, ok := window.Last(yesSymbol)
		if !ok {
			continue
		}
		no, ok := window.Last(noSymbol)
		if !ok {
			continue
		}

		opp, ok := arbitrage.Check(market, yes.Price, no.Price, p.minEdge)
		if !ok || opp.Kind != arbitrage.Underpriced {
			continue
		}

		// both legs share the later timestamp so they are emitted as a pair
		ts := yes.Timestamp
		if no.Timestamp.After(ts) {
			ts = no.Timestamp
		}
		reason := fmt.Sprintf("yes %.4f + no %.4f = %.4f", opp.YesPrice, opp.NoPrice, opp.Sum)
		signals = append(signals,
			marketv1.NewSignal(p.name, yesSymbol, marketv1.SideBuy, p.quantity, yes.Price, reason, ts),
			marketv1.NewSignal(p.name, noSymbol, marketv1.SideBuy, p.quantity, no.Price, reason, ts),
		)
	}
	return signals, nil
}
