package evaluator

import (
	"context"
	"time"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// CycleResult summarises one evaluation cycle.
type CycleResult struct {
	AsOf                time.Time
	StrategiesEvaluated int
	StrategiesFailed    int
	SignalsEmitted      int
	SignalsInserted     int
}

// Usecase evaluates every configured strategy once.
type Usecase interface {
	RunCycle(ctx context.Context, asOf time.Time) (*CycleResult, error)
}
