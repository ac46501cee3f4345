package engine

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
	evaluatorDomain "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/evaluator"
)

const engineName = "strategy"

// Consumer feeds ticks into storage while the engine runs. Start and Subscribe block
// until their context is done.
type Consumer interface {
	Start(ctx context.Context)
	Subscribe(ctx context.Context)
	Stop() error
}

// Engine runs the evaluator on a fixed interval and, when configured, the tick consumer
// next to it.
type Engine struct {
	evaluator evaluatorDomain.Usecase
	consumer  Consumer
	logger    logger.Interface

	interval     time.Duration
	cycleTimeout time.Duration
	now          func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an engine. consumer may be nil.
func NewEngine(evaluator evaluatorDomain.Usecase, consumer Consumer, logger logger.Interface, options *Options) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}
	return &Engine{
		evaluator:    evaluator,
		consumer:     consumer,
		logger:       logger,
		interval:     options.Interval,
		cycleTimeout: options.CycleTimeout,
		now:          time.Now,
	}
}

// Start launches the background routines and returns immediately.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	if e.consumer != nil {
		e.wg.Add(2)
		go func() {
			defer e.wg.Done()
			e.consumer.Start(e.ctx)
		}()
		go func() {
			defer e.wg.Done()
			e.consumer.Subscribe(e.ctx)
		}()
	}

	e.wg.Add(1)
	go e.runEvaluator()

	e.logger.Info("Strategy engine started",
		logger.Field{Key: "interval", Value: e.interval.String()},
		logger.Field{Key: "consumer", Value: e.consumer != nil},
	)
	return nil
}

// Stop cancels the routines and waits for them until ctx is done.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}
	if e.consumer != nil {
		if err := e.consumer.Stop(); err != nil {
			e.logger.Error(err, logger.Field{Key: "action", Value: "stop_consumer"})
		}
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Strategy engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// RunOnce evaluates every strategy as of now. Used by the loop and by one-shot runs.
func (e *Engine) RunOnce(ctx context.Context) (*evaluatorDomain.CycleResult, error) {
	start := e.now()
	asOf := start.UTC()

	ctx = util.WithRequestID(ctx, "")
	ctx = util.WithCycleID(ctx, util.NewULID(start))
	if e.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cycleTimeout)
		defer cancel()
	}

	result, err := e.evaluator.RunCycle(ctx, asOf)
	metrics.ObserveCycle(engineName, start, err)
	if err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "run_cycle"})
		return result, err
	}

	e.logger.InfoContext(ctx, "Cycle complete",
		logger.Field{Key: "strategies", Value: result.StrategiesEvaluated},
		logger.Field{Key: "failed", Value: result.StrategiesFailed},
		logger.Field{Key: "emitted", Value: result.SignalsEmitted},
		logger.Field{Key: "inserted", Value: result.SignalsInserted},
	)
	return result, nil
}

// runEvaluator runs a cycle right away and then on every tick of the interval.
func (e *Engine) runEvaluator() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		_, _ = e.RunOnce(e.ctx)

		select {
		case <-e.ctx.Done():
			e.logger.Info("Evaluator shutting down")
			return
		case <-ticker.C:
		}
	}
}
