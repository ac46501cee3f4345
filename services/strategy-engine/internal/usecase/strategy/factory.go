// Package strategy holds the built-in strategies and the factory that builds them
// from configuration.
package strategy

import (
	"fmt"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	strategyv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/strategy/v1"
	"github.com/muhammadchandra19/paper-trading/services/strategy-engine/pkg/config"
)

// Strategy kinds accepted in the type field of a definition.
const (
	TypeMomentum     = "momentum"
	TypeSMACrossover = "sma_crossover"
	TypeArbitrage    = "arbitrage"
)

// base carries the parameters every strategy shares.
type base struct {
	name     string
	symbols  []string
	lookback time.Duration
	quantity float64
}

func (b base) Name() string            { return b.name }
func (b base) Symbols() []string       { return append([]string(nil), b.symbols...) }
func (b base) Lookback() time.Duration { return b.lookback }

func invalid(name, format string, args ...any) error {
	return errors.NewErrorDetails(fmt.Sprintf("strategy %q: ", name)+fmt.Sprintf(format, args...), string(errors.ErrInvalidStrategyConfig), name)
}

// New builds the strategy described by def.
func New(def config.StrategyDefinition) (strategyv1.Strategy, error) {
	lookback, err := def.LookbackDuration()
	if err != nil {
		return nil, err
	}

	var s strategyv1.Strategy
	switch def.Type {
	case TypeMomentum:
		s, err = NewMomentum(def.Name, def.Symbols, lookback, def.Quantity, def.Threshold, def.MinNotional)
	case TypeSMACrossover:
		s, err = NewSMACrossover(def.Name, def.Symbols, lookback, def.Quantity, def.FastPeriod, def.SlowPeriod)
	case TypeArbitrage:
		s, err = NewArbitrage(def.Name, def.Markets, lookback, def.Quantity, def.MinEdge)
	default:
		err = errors.NewErrorDetails(fmt.Sprintf("strategy %q has unknown type %q", def.Name, def.Type), string(errors.ErrUnknownStrategy), "type")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewAll builds every definition, keeping their order. The first invalid
// definition aborts the whole set.
func NewAll(defs []config.StrategyDefinition) ([]strategyv1.Strategy, error) {
	out := make([]strategyv1.Strategy, 0, len(defs))
	for _, def := range defs {
		s, err := New(def)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
