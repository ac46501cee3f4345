package tick

import (
	"context"
	"time"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// TickRepository is the repository for market ticks.
type TickRepository interface {
	ListWindow(ctx context.Context, symbols []string, from, to time.Time) ([]marketv1.Tick, error)
	StoreBatch(ctx context.Context, ticks []marketv1.Tick) (int64, error)
}
