package signal

import (
	"context"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// SignalRepository is the repository for emitted signals.
type SignalRepository interface {
	// Insert stores signals as PENDING and returns the ones that did not exist yet.
	Insert(ctx context.Context, signals []marketv1.Signal) ([]marketv1.Signal, error)
}
