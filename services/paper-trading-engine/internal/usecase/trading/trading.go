package trading

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
	fillv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/fill/v1"
	lockv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/lock/v1"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
	tradingDomain "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/trading"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/fill"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/portfolio"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/signal"
)

// Options configures the portfolio the usecase trades.
type Options struct {
	PortfolioID  string
	StartingCash float64
	BatchSize    int
	LockTTL      time.Duration
}

type usecase struct {
	signalRepository    signal.SignalRepository
	portfolioRepository portfolio.PortfolioRepository
	fillRepository      fill.FillRepository
	fillModel           fillv1.Model
	prices              fillv1.PriceSource
	locker              lockv1.Locker
	dbTx                postgresql.Transaction
	retry               postgresql.RetryConfig
	options             Options
	logger              logger.Interface
	now                 func() time.Time
}

// NewUsecase creates a new trading usecase.
func NewUsecase(
	signalRepository signal.SignalRepository,
	portfolioRepository portfolio.PortfolioRepository,
	fillRepository fill.FillRepository,
	fillModel fillv1.Model,
	prices fillv1.PriceSource,
	locker lockv1.Locker,
	dbTx postgresql.Transaction,
	retry postgresql.RetryConfig,
	options Options,
	logger logger.Interface,
) *usecase {
	if options.BatchSize <= 0 {
		options.BatchSize = 100
	}
	if options.LockTTL <= 0 {
		options.LockTTL = 30 * time.Second
	}
	return &usecase{
		signalRepository:    signalRepository,
		portfolioRepository: portfolioRepository,
		fillRepository:      fillRepository,
		fillModel:           fillModel,
		prices:              prices,
		locker:              locker,
		dbTx:                dbTx,
		retry:               retry,
		options:             options,
		logger:              logger,
		now:                 time.Now,
	}
}

var _ tradingDomain.Usecase = (*usecase)(nil)

func (u *usecase) EnsurePortfolio(ctx context.Context) (bool, error) {
	ctx = util.WithPortfolioID(ctx, u.options.PortfolioID)
	p := portfoliov1.NewPortfolio(u.options.PortfolioID, u.options.StartingCash, u.now().UTC())

	var created bool
	err := postgresql.Retry(ctx, u.retry, func(ctx context.Context) error {
		var err error
		created, err = u.portfolioRepository.Create(ctx, p)
		return err
	}, u.notifyRetry(ctx, "create_portfolio"))
	if err != nil {
		return false, err
	}

	if created {
		u.logger.InfoContext(ctx, "Created portfolio", logger.Field{Key: "starting_cash", Value: p.StartingCash})
	}
	return created, nil
}

// ApplySignal locks the signal and the portfolio, prices the fill and either applies
// it or rejects the signal, all in one transaction that is replayed on transient
// errors. A signal that is no longer PENDING is skipped.
func (u *usecase) ApplySignal(ctx context.Context, id uuid.UUID) (*tradingDomain.Result, error) {
	ctx = util.WithPortfolioID(ctx, u.options.PortfolioID)

	var result *tradingDomain.Result
	err := postgresql.AtomicWithRetry(ctx, u.dbTx, u.retry, func(txCtx context.Context) error {
		r, err := u.apply(txCtx, id)
		if err != nil {
			return err
		}
		result = r
		return nil
	}, u.notifyRetry(ctx, "apply_signal"))

	// a concurrent writer consumed the signal first; its transaction was rolled back
	if errors.ErrorCodeEquals(err, string(errors.ErrSignalAlreadyProcessed)) {
		result, err = &tradingDomain.Result{SignalID: id, Outcome: signalv1.OutcomeSkipped}, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.SignalsProcessed.WithLabelValues(string(result.Outcome)).Inc()
	fields := []logger.Field{
		{Key: "signal_id", Value: id.String()},
		{Key: "outcome", Value: string(result.Outcome)},
	}
	switch {
	case result.Fill != nil:
		fields = append(fields,
			logger.Field{Key: "symbol", Value: result.Fill.Symbol},
			logger.Field{Key: "side", Value: string(result.Fill.Side)},
			logger.Field{Key: "quantity", Value: result.Fill.Quantity},
			logger.Field{Key: "price", Value: result.Fill.Price},
		)
	case result.Reason != "":
		fields = append(fields, logger.Field{Key: "reason", Value: result.Reason})
	}
	u.logger.InfoContext(ctx, "Processed signal", fields...)

	return result, nil
}

func (u *usecase) apply(ctx context.Context, id uuid.UUID) (*tradingDomain.Result, error) {
	now := u.now().UTC()

	sig, err := u.signalRepository.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if sig.Status != signalv1.StatusPending {
		return &tradingDomain.Result{SignalID: id, Outcome: signalv1.OutcomeSkipped}, nil
	}

	p, err := u.portfolioRepository.GetForUpdate(ctx, u.options.PortfolioID)
	if err != nil {
		return nil, err
	}

	price, err := u.fillModel.Price(ctx, *sig)
	if err != nil {
		if errors.IsBusinessRejection(err) {
			return u.reject(ctx, id, err, now)
		}
		return nil, err
	}

	next, change, err := p.ApplyFill(sig.Side, sig.Symbol, sig.Quantity, price, now)
	if err != nil {
		if errors.IsBusinessRejection(err) {
			return u.reject(ctx, id, err, now)
		}
		return nil, err
	}

	if err := u.portfolioRepository.UpdateBalances(ctx, next.ID, next.Cash, next.RealizedPnL, now); err != nil {
		return nil, err
	}
	if change.Closed {
		err = u.portfolioRepository.DeletePosition(ctx, next.ID, change.Symbol)
	} else {
		err = u.portfolioRepository.UpsertPosition(ctx, next.ID, change.Position)
	}
	if err != nil {
		return nil, err
	}

	f := portfoliov1.Fill{
		ID:          util.NewULID(now),
		SignalID:    id,
		PortfolioID: next.ID,
		Symbol:      change.Symbol,
		Side:        change.Side,
		Quantity:    change.Quantity,
		Price:       change.Price,
		Notional:    change.Notional,
		RealizedPnL: change.RealizedPnL,
		FillModel:   u.fillModel.Name(),
		FilledAt:    now,
	}
	if err := u.fillRepository.Insert(ctx, f); err != nil {
		return nil, err
	}
	if err := u.signalRepository.MarkProcessed(ctx, id, signalv1.StatusApplied, "", now); err != nil {
		return nil, err
	}

	return &tradingDomain.Result{SignalID: id, Outcome: signalv1.OutcomeApplied, Fill: &f}, nil
}

func (u *usecase) reject(ctx context.Context, id uuid.UUID, cause error, now time.Time) (*tradingDomain.Result, error) {
	reason := cause.Error()
	if details, ok := errors.AsErrorDetails(cause); ok {
		reason = details.Message
	}
	if err := u.signalRepository.MarkProcessed(ctx, id, signalv1.StatusRejected, reason, now); err != nil {
		return nil, err
	}
	return &tradingDomain.Result{SignalID: id, Outcome: signalv1.OutcomeRejected, Reason: reason}, nil
}

// ProcessPending holds the portfolio lease while it applies up to BatchSize pending
// signals, oldest first, then records a snapshot. The batch stops at the first signal
// that fails so later signals never overtake it.
func (u *usecase) ProcessPending(ctx context.Context) (*tradingDomain.CycleResult, error) {
	ctx = util.WithPortfolioID(ctx, u.options.PortfolioID)
	result := &tradingDomain.CycleResult{}

	key := "portfolio:" + u.options.PortfolioID
	token, ok, err := u.locker.Acquire(ctx, key, u.options.LockTTL)
	if err != nil {
		return result, err
	}
	if !ok {
		u.logger.InfoContext(ctx, "Portfolio lease held by another instance, skipping cycle")
		result.Locked = true
		return result, nil
	}
	defer func() {
		if err := u.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			u.logger.WarnContext(ctx, "failed to release portfolio lease",
				logger.Field{Key: "action", Value: "release_lease"},
				logger.Field{Key: "error", Value: err.Error()},
			)
		}
	}()

	var ids []uuid.UUID
	err = postgresql.Retry(ctx, u.retry, func(ctx context.Context) error {
		var err error
		ids, err = u.signalRepository.ListPending(ctx, u.options.BatchSize)
		return err
	}, u.notifyRetry(ctx, "list_pending"))
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r, err := u.ApplySignal(ctx, id)
		if err != nil {
			u.logger.ErrorContext(ctx, err,
				logger.Field{Key: "action", Value: "apply_signal"},
				logger.Field{Key: "signal_id", Value: id.String()},
			)
			return result, err
		}

		result.Processed++
		switch r.Outcome {
		case signalv1.OutcomeApplied:
			result.Applied++
		case signalv1.OutcomeRejected:
			result.Rejected++
		case signalv1.OutcomeSkipped:
			result.Skipped++
		}

		held, err := u.locker.Extend(ctx, key, token, u.options.LockTTL)
		if err != nil {
			return result, err
		}
		if !held {
			return result, errors.NewErrorDetails("portfolio lease lost", string(errors.ErrLockNotAcquired), "lock")
		}
	}

	valuation, err := u.snapshot(ctx)
	if err != nil {
		return result, err
	}
	result.Valuation = valuation

	return result, nil
}

// snapshot marks the portfolio to market, stores the valuation and updates the gauges.
func (u *usecase) snapshot(ctx context.Context) (*portfoliov1.Valuation, error) {
	var p *portfoliov1.Portfolio
	err := postgresql.Retry(ctx, u.retry, func(ctx context.Context) error {
		var err error
		p, err = u.portfolioRepository.Get(ctx, u.options.PortfolioID)
		return err
	}, u.notifyRetry(ctx, "get_portfolio"))
	if err != nil {
		return nil, err
	}

	marks := make(map[string]float64, len(p.Positions))
	for _, symbol := range p.Symbols() {
		price, ok, err := u.prices.LastPrice(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if ok {
			marks[symbol] = price
		}
	}

	valuation := p.Value(marks)
	if len(valuation.Unpriced) > 0 {
		u.logger.WarnContext(ctx, "positions valued at cost",
			logger.Field{Key: "action", Value: "mark_portfolio"},
			logger.Field{Key: "symbols", Value: valuation.Unpriced},
		)
	}

	s := portfoliov1.Snapshot{PortfolioID: p.ID, Valuation: valuation, TakenAt: u.now().UTC()}
	err = postgresql.Retry(ctx, u.retry, func(ctx context.Context) error {
		return u.portfolioRepository.InsertSnapshot(ctx, s)
	}, u.notifyRetry(ctx, "insert_snapshot"))
	if err != nil {
		return nil, err
	}

	metrics.PortfolioEquity.WithLabelValues(p.ID).Set(valuation.Equity)
	metrics.PortfolioCash.WithLabelValues(p.ID).Set(valuation.Cash)

	return &valuation, nil
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
