package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
	scannerDomain "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/scanner"
)

const engineName = "scanner"

// Scanner runs a market scan on a fixed interval.
type Scanner struct {
	usecase scannerDomain.Usecase
	logger  logger.Interface

	interval    time.Duration
	scanTimeout time.Duration
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScanner creates a scanner.
func NewScanner(usecase scannerDomain.Usecase, logger logger.Interface, options *Options) *Scanner {
	if options == nil {
		options = DefaultScannerOptions()
	}
	return &Scanner{
		usecase:     usecase,
		logger:      logger,
		interval:    options.Interval,
		scanTimeout: options.ScanTimeout,
		now:         time.Now,
	}
}

// Start launches the scan loop and returns immediately.
func (s *Scanner) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("Market scanner started", logger.Field{Key: "interval", Value: s.interval.String()})
	return nil
}

// Stop cancels the loop and waits for it until ctx is done.
func (s *Scanner) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Market scanner stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scanner stop timeout exceeded")
		return ctx.Err()
	}
}

// RunOnce performs one scan.
func (s *Scanner) RunOnce(ctx context.Context) (*scannerDomain.ScanResult, error) {
	start := s.now()

	ctx = util.WithRequestID(ctx, "")
	ctx = util.WithCycleID(ctx, util.NewULID(start))
	if s.scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.scanTimeout)
		defer cancel()
	}

	result, err := s.usecase.Scan(ctx)
	metrics.ObserveCycle(engineName, start, err)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "scan_markets"})
		return result, err
	}

	s.logger.InfoContext(ctx, "Scan complete",
		logger.Field{Key: "markets", Value: result.Markets},
		logger.Field{Key: "ticks", Value: result.Ticks},
		logger.Field{Key: "opportunities", Value: len(result.Opportunities)},
		logger.Field{Key: "duration", Value: s.now().Sub(start).String()},
	)
	return result, nil
}

func (s *Scanner) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		_, _ = s.RunOnce(s.ctx)

		select {
		case <-s.ctx.Done():
			s.logger.Info("Scan loop shutting down")
			return
		case <-ticker.C:
		}
	}
}
