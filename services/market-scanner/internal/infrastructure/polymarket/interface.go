package polymarket

import (
	"context"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/client_mock.go -package=mock

// Client reads markets from the Polymarket API.
type Client interface {
	// ActiveMarkets follows every page of active markets and returns them normalized.
	ActiveMarkets(ctx context.Context) ([]marketv1.Market, error)
}
