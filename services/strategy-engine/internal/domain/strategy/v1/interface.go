package v1

import (
	"time"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/strategy_mock.go -package=mock

// Strategy turns a window of market data into signals. Implementations must be pure:
// the same window and parameters always produce the same signals.
type Strategy interface {
	Name() string
	Symbols() []string
	Lookback() time.Duration
	Evaluate(window marketv1.Window) ([]marketv1.Signal, error)
}
