package v1

import (
	"time"

	"github.com/google/uuid"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
)

// Status is the lifecycle state of a signal. APPLIED and REJECTED are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApplied  Status = "APPLIED"
	StatusRejected Status = "REJECTED"
)

// Terminal reports whether the signal has been consumed.
func (s Status) Terminal() bool {
	return s == StatusApplied || s == StatusRejected
}

// Outcome is what processing a signal did.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeRejected Outcome = "rejected"
	// OutcomeSkipped means the signal was already consumed and nothing changed.
	OutcomeSkipped Outcome = "skipped"
)

// Signal is an instruction to trade emitted by the strategy engine.
type Signal struct {
	ID             uuid.UUID
	Strategy       string
	Symbol         string
	Side           portfoliov1.Side
	Quantity       float64
	ReferencePrice float64
	Reason         string
	Status         Status
	RejectReason   string
	Timestamp      time.Time
	CreatedAt      time.Time
	ProcessedAt    *time.Time
}

// ListFilter narrows signal listings. Zero values match everything.
type ListFilter struct {
	Status   Status
	Strategy string
	Symbol   string
	Limit    int
}
