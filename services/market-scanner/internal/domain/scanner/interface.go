package scanner

import (
	"context"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/arbitrage"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// ScanResult summarises one scan.
type ScanResult struct {
	ScannedAt time.Time
	Markets   int
	// Ticks is the number of leg prices written to market_ticks.
	Ticks         int64
	Opportunities []arbitrage.Opportunity
}

// Usecase ingests the active prediction markets.
type Usecase interface {
	// Scan fetches every active market, stores the scan in one transaction and
	// refreshes the price cache.
	Scan(ctx context.Context) (*ScanResult, error)
}
