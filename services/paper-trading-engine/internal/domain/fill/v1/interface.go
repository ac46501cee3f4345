package v1

import (
	"context"

	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/fill_mock.go -package=mock

// PriceSource resolves the latest traded price of a symbol.
type PriceSource interface {
	// LastPrice reports ok=false when no price is known.
	LastPrice(ctx context.Context, symbol string) (price float64, ok bool, err error)
}

// Model decides the price a signal fills at.
type Model interface {
	Name() string
	// Price returns an ErrNoMarketPrice error when nothing can be priced.
	Price(ctx context.Context, signal signalv1.Signal) (float64, error)
}
