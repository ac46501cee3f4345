package trading

import (
	"context"

	"github.com/google/uuid"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Result is the outcome of processing one signal.
type Result struct {
	SignalID uuid.UUID
	Outcome  signalv1.Outcome
	// Reason is set for rejections.
	Reason string
	// Fill is set when the signal was applied.
	Fill *portfoliov1.Fill
}

// CycleResult summarises one ProcessPending call.
type CycleResult struct {
	// Locked is set when another instance held the portfolio lease and nothing ran.
	Locked    bool
	Processed int
	Applied   int
	Rejected  int
	Skipped   int
	Valuation *portfoliov1.Valuation
}

// Usecase applies signals to the configured portfolio.
type Usecase interface {
	// EnsurePortfolio creates the configured portfolio when it does not exist yet.
	EnsurePortfolio(ctx context.Context) (created bool, err error)
	// ApplySignal consumes one signal in a single transaction.
	ApplySignal(ctx context.Context, id uuid.UUID) (*Result, error)
	// ProcessPending applies a batch of pending signals oldest first and records a
	// portfolio snapshot.
	ProcessPending(ctx context.Context) (*CycleResult, error)
}
