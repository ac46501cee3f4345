package evaluator

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
	evaluatorDomain "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/evaluator"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
	publisherv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/signal-publisher/v1"
	strategyv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/strategy/v1"
	"github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/infrastructure/postgresql/signal"
	"github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/infrastructure/postgresql/tick"
)

type usecase struct {
	strategies       []strategyv1.Strategy
	tickRepository   tick.TickRepository
	signalRepository signal.SignalRepository
	publisher        publisherv1.SignalPublisher
	dbTx             postgresql.Transaction
	retry            postgresql.RetryConfig
	logger           logger.Interface
}

// NewUsecase creates a new evaluator usecase. Strategies are evaluated in the given order.
func NewUsecase(
	strategies []strategyv1.Strategy,
	tickRepository tick.TickRepository,
	signalRepository signal.SignalRepository,
	publisher publisherv1.SignalPublisher,
	dbTx postgresql.Transaction,
	retry postgresql.RetryConfig,
	logger logger.Interface,
) *usecase {
	return &usecase{
		strategies:       strategies,
		tickRepository:   tickRepository,
		signalRepository: signalRepository,
		publisher:        publisher,
		dbTx:             dbTx,
		retry:            retry,
		logger:           logger,
	}
}

var _ evaluatorDomain.Usecase = (*usecase)(nil)

// RunCycle evaluates every strategy against the data available at asOf. A strategy
// that errors or panics is logged and skipped. Storage failures do not stop the
// remaining strategies either, but they are returned once the cycle is over.
func (u *usecase) RunCycle(ctx context.Context, asOf time.Time) (*evaluatorDomain.CycleResult, error) {
	result := &evaluatorDomain.CycleResult{AsOf: asOf}
	var storeErrs []error

	for _, s := range u.strategies {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := s.Name()
		sctx := util.WithStrategy(ctx, name)
		result.StrategiesEvaluated++

		window, err := u.loadWindow(sctx, s, asOf)
		if err != nil {
			result.StrategiesFailed++
			storeErrs = append(storeErrs, fmt.Errorf("strategy %s: load window: %w", name, err))
			u.logger.ErrorContext(sctx, err, logger.Field{Key: "action", Value: "load_window"})
			continue
		}

		signals, err := evaluate(s, window)
		if err != nil {
			result.StrategiesFailed++
			metrics.StrategyErrors.WithLabelValues(name).Inc()
			u.logger.ErrorContext(sctx, err, logger.Field{Key: "action", Value: "evaluate_strategy"})
			continue
		}

		signals = u.validSignals(sctx, name, signals)
		result.SignalsEmitted += len(signals)
		if len(signals) == 0 {
			continue
		}

		inserted, err := u.store(sctx, signals)
		if err != nil {
			result.StrategiesFailed++
			storeErrs = append(storeErrs, fmt.Errorf("strategy %s: store signals: %w", name, err))
			u.logger.ErrorContext(sctx, err, logger.Field{Key: "action", Value: "store_signals"})
			continue
		}
		result.SignalsInserted += len(inserted)

		for _, sig := range inserted {
			metrics.SignalsEmitted.WithLabelValues(name, string(sig.Side)).Inc()
		}

		if len(inserted) > 0 {
			if err := u.publisher.Publish(sctx, inserted); err != nil {
				u.logger.WarnContext(sctx, "failed to publish signals",
					logger.Field{Key: "action", Value: "publish_signals"},
					logger.Field{Key: "error", Value: err.Error()},
				)
			}
		}
	}

	u.logger.InfoContext(ctx, "Evaluation cycle finished",
		logger.Field{Key: "strategies", Value: result.StrategiesEvaluated},
		logger.Field{Key: "failed", Value: result.StrategiesFailed},
		logger.Field{Key: "emitted", Value: result.SignalsEmitted},
		logger.Field{Key: "inserted", Value: result.SignalsInserted},
	)

	if len(storeErrs) > 0 {
		return result, errors.TracerFromError(stderrors.Join(storeErrs...))
	}
	return result, nil
}

func (u *usecase) loadWindow(ctx context.Context, s strategyv1.Strategy, asOf time.Time) (marketv1.Window, error) {
	from := asOf.Add(-s.Lookback())
	var ticks []marketv1.Tick
	err := postgresql.Retry(ctx, u.retry, func(ctx context.Context) error {
		var err error
		ticks, err = u.tickRepository.ListWindow(ctx, s.Symbols(), from, asOf)
		return err
	}, u.notifyRetry(ctx, "list_window"))
	if err != nil {
		return marketv1.Window{}, err
	}
	return marketv1.NewWindow(from, asOf, ticks), nil
}

// store inserts the strategy's signals in one transaction, replayed on transient errors.
func (u *usecase) store(ctx context.Context, signals []marketv1.Signal) ([]marketv1.Signal, error) {
	var inserted []marketv1.Signal
	err := postgresql.AtomicWithRetry(ctx, u.dbTx, u.retry, func(txCtx context.Context) error {
		var err error
		inserted, err = u.signalRepository.Insert(txCtx, signals)
		return err
	}, u.notifyRetry(ctx, "insert_signals"))
	return inserted, err
}

func (u *usecase) notifyRetry(ctx context.Context, operation string) func(error, time.Duration) {
	return func(err error, wait time.Duration) {
		metrics.DBRetries.WithLabelValues(operation).Inc()
		u.logger.WarnContext(ctx, "retrying transient database error",
			logger.Field{Key: "action", Value: operation},
			logger.Field{Key: "delay", Value: wait.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
}

// validSignals drops signals that the paper trading engine could never apply and
// pins the strategy name.
func (u *usecase) validSignals(ctx context.Context, name string, signals []marketv1.Signal) []marketv1.Signal {
	out := signals[:0:0]
	for _, s := range signals {
		if s.Strategy != name || !s.Side.Valid() || s.Symbol == "" ||
			s.Quantity <= 0 || math.IsNaN(s.Quantity) || math.IsInf(s.Quantity, 0) {
			u.logger.WarnContext(ctx, "dropping invalid signal",
				logger.Field{Key: "action", Value: "validate_signal"},
				logger.Field{Key: "signal", Value: s},
			)
			continue
		}
		out = append(out, s)
	}
	return out
}

// evaluate runs the strategy, turning a panic into an error.
func evaluate(s strategyv1.Strategy, window marketv1.Window) (signals []marketv1.Signal, err error) {
	name := s.Name()
	defer func() {
		if r := recover(); r != nil {
			signals = nil
			// the stack is captured before unwinding, so it points at the panic
			err = errors.NewTracer("strategy " + name + " panicked").Wrap(fmt.Errorf("%v", r))
		}
	}()

	signals, err = s.Evaluate(window)
	if err != nil {
		return nil, errors.NewTracer("strategy " + name + " failed").Wrap(err)
	}
	return signals, nil
}
