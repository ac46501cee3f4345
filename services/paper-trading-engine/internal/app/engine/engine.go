package engine

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
	tradingDomain "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/trading"
)

const engineName = "paper"

// Listener announces new signals while the engine runs. Start and Subscribe block
// until their context is done.
type Listener interface {
	Start(ctx context.Context)
	Subscribe(ctx context.Context)
	Stop() error
	Nudges() <-chan struct{}
}

// Engine processes pending signals on a fixed interval, and early whenever the
// listener reports a new one.
type Engine struct {
	trading  tradingDomain.Usecase
	listener Listener
	logger   logger.Interface

	interval     time.Duration
	cycleTimeout time.Duration
	now          func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an engine. listener may be nil.
func NewEngine(trading tradingDomain.Usecase, listener Listener, logger logger.Interface, options *Options) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}
	return &Engine{
		trading:      trading,
		listener:     listener,
		logger:       logger,
		interval:     options.Interval,
		cycleTimeout: options.CycleTimeout,
		now:          time.Now,
	}
}

// Start launches the background routines and returns immediately.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	var nudges <-chan struct{}
	if e.listener != nil {
		nudges = e.listener.Nudges()
		e.wg.Add(2)
		go func() {
			defer e.wg.Done()
			e.listener.Start(e.ctx)
		}()
		go func() {
			defer e.wg.Done()
			e.listener.Subscribe(e.ctx)
		}()
	}

	e.wg.Add(1)
	go e.runTrader(nudges)

	e.logger.Info("Paper trading engine started",
		logger.Field{Key: "interval", Value: e.interval.String()},
		logger.Field{Key: "listener", Value: e.listener != nil},
	)
	return nil
}

// Stop cancels the routines and waits for them until ctx is done. A cycle in flight
// finishes its current signal transaction first.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}
	if e.listener != nil {
		if err := e.listener.Stop(); err != nil {
			e.logger.Error(err, logger.Field{Key: "action", Value: "stop_listener"})
		}
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Paper trading engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// RunOnce processes one batch of pending signals.
func (e *Engine) RunOnce(ctx context.Context) (*tradingDomain.CycleResult, error) {
	start := e.now()

	ctx = util.WithRequestID(ctx, "")
	ctx = util.WithCycleID(ctx, util.NewULID(start))
	if e.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cycleTimeout)
		defer cancel()
	}

	result, err := e.trading.ProcessPending(ctx)
	metrics.ObserveCycle(engineName, start, err)
	if err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "process_pending"})
		return result, err
	}

	fields := []logger.Field{
		{Key: "processed", Value: result.Processed},
		{Key: "applied", Value: result.Applied},
		{Key: "rejected", Value: result.Rejected},
		{Key: "skipped", Value: result.Skipped},
		{Key: "locked", Value: result.Locked},
	}
	if result.Valuation != nil {
		fields = append(fields,
			logger.Field{Key: "cash", Value: result.Valuation.Cash},
			logger.Field{Key: "equity", Value: result.Valuation.Equity},
		)
	}
	e.logger.InfoContext(ctx, "Cycle complete", fields...)
	return result, nil
}

// runTrader runs a cycle right away, then on every tick of the interval or nudge.
func (e *Engine) runTrader(nudges <-chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		_, _ = e.RunOnce(e.ctx)

		select {
		case <-e.ctx.Done():
			e.logger.Info("Trader shutting down")
			return
		case <-ticker.C:
		case <-nudges:
			e.logger.Debug("Woken by signal announcement")
		}
	}
}
