package portfolio

import (
	"context"
	"time"

	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// PortfolioRepository persists portfolios, their positions and snapshots.
type PortfolioRepository interface {
	// Create inserts the portfolio unless one with the same id exists and reports
	// whether it did.
	Create(ctx context.Context, portfolio portfoliov1.Portfolio) (bool, error)
	// Get loads a portfolio with its positions.
	Get(ctx context.Context, id string) (*portfoliov1.Portfolio, error)
	// GetForUpdate is Get holding a row lock on the portfolio until the transaction ends.
	GetForUpdate(ctx context.Context, id string) (*portfoliov1.Portfolio, error)
	UpdateBalances(ctx context.Context, id string, cash, realizedPnL float64, at time.Time) error
	UpsertPosition(ctx context.Context, id string, position portfoliov1.Position) error
	DeletePosition(ctx context.Context, id, symbol string) error
	InsertSnapshot(ctx context.Context, snapshot portfoliov1.Snapshot) error
}
