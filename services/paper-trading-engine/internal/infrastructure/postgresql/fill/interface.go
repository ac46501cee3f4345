package fill

import (
	"context"

	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// FillRepository stores simulated executions.
type FillRepository interface {
	// Insert fails with ErrSignalAlreadyProcessed when the signal already has a fill.
	Insert(ctx context.Context, fill portfoliov1.Fill) error
	ListRecent(ctx context.Context, portfolioID string, limit int) ([]portfoliov1.Fill, error)
}
