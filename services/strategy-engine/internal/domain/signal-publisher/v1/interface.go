package v1

import (
	"context"

	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/publisher_mock.go -package=mock

// SignalPublisher announces newly stored signals to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, signals []marketv1.Signal) error
	Close() error
}
