// Package fill implements the fill models that decide the price a signal executes at.
package fill

import (
	"context"
	"fmt"
	"math"

	"github.com/muhammadchandra19/paper-trading/pkg/arbitrage"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	fillv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/fill/v1"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
)

const (
	// ModelLastTrade fills at the last traded price.
	ModelLastTrade = "last_trade"
	// ModelSlippage fills at the last traded price moved against the trader.
	ModelSlippage = "slippage"
)

const basisPoints = 10_000

// New builds the model called name. slippageBps is only used by ModelSlippage.
func New(name string, slippageBps float64, source fillv1.PriceSource) (fillv1.Model, error) {
	switch name {
	case ModelLastTrade, "":
		return &lastTrade{source: source}, nil
	case ModelSlippage:
		if slippageBps < 0 || slippageBps >= basisPoints || math.IsNaN(slippageBps) {
			return nil, errors.NewErrorDetails(
				fmt.Sprintf("slippage must be in [0, %d) bps, got %v", basisPoints, slippageBps),
				string(errors.GeneralBadRequestError), "slippage_bps")
		}
		return &slippage{lastTrade: lastTrade{source: source}, bps: slippageBps}, nil
	}
	return nil, errors.NewErrorDetails("unknown fill model "+name, string(errors.GeneralBadRequestError), "fill_model")
}

type lastTrade struct {
	source fillv1.PriceSource
}

func (m *lastTrade) Name() string { return ModelLastTrade }

// Price uses the latest market price and falls back to the price the strategy saw.
func (m *lastTrade) Price(ctx context.Context, s signalv1.Signal) (float64, error) {
	price, ok, err := m.source.LastPrice(ctx, s.Symbol)
	if err != nil {
		return 0, err
	}
	if ok {
		return price, nil
	}
	if s.ReferencePrice > 0 {
		return s.ReferencePrice, nil
	}
	return 0, errors.NewErrorDetails("no market price", string(errors.ErrNoMarketPrice), "symbol")
}

type slippage struct {
	lastTrade
	bps float64
}

func (m *slippage) Name() string { return ModelSlippage }

// Price pays more on buys and receives less on sells. Prediction market legs stay
// within [0, 1].
func (m *slippage) Price(ctx context.Context, s signalv1.Signal) (float64, error) {
	base, err := m.lastTrade.Price(ctx, s)
	if err != nil {
		return 0, err
	}

	adj := base * m.bps / basisPoints
	price := base + adj
	if s.Side == portfoliov1.SideSell {
		price = base - adj
	}

	if arbitrage.IsLegSymbol(s.Symbol) {
		price = math.Min(math.Max(price, 0), 1)
	}
	return price, nil
}
