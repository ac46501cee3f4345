package market

import (
	"context"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// MarketRepository persists scanned markets, their price snapshots and their legs as ticks.
type MarketRepository interface {
	UpsertMarkets(ctx context.Context, markets []marketv1.Market) (int64, error)
	InsertSnapshots(ctx context.Context, markets []marketv1.Market) (int64, error)
	InsertTicks(ctx context.Context, markets []marketv1.Market) (int64, error)
}
