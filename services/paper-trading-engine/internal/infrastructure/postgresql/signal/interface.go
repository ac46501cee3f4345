package signal

import (
	"context"
	"time"

	"github.com/google/uuid"
	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// SignalRepository reads and consumes signals.
type SignalRepository interface {
	// ListPending returns up to limit PENDING signal ids, oldest first.
	ListPending(ctx context.Context, limit int) ([]uuid.UUID, error)
	// GetForUpdate loads a signal and locks its row for the current transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*signalv1.Signal, error)
	// MarkProcessed moves a PENDING signal to a terminal status.
	MarkProcessed(ctx context.Context, id uuid.UUID, status signalv1.Status, reason string, at time.Time) error
	// List returns signals matching filter, newest first.
	List(ctx context.Context, filter signalv1.ListFilter) ([]signalv1.Signal, error)
}
