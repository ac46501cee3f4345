package scanner

import (
	"context"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/arbitrage"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
	scannerDomain "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/scanner"
	"github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/infrastructure/polymarket"
	"github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/infrastructure/postgresql/market"
)

// maxLoggedOpportunities bounds the per-scan opportunity log lines.
const maxLoggedOpportunities = 20

// Options tunes a scan.
type Options struct {
	Tolerance float64
}

type usecase struct {
	client           polymarket.Client
	marketRepository market.MarketRepository
	prices           pricecache.Cache
	dbTx             postgresql.Transaction
	retry            postgresql.RetryConfig
	options          Options
	logger           logger.Interface
	now              func() time.Time
}

// NewUsecase creates the scanner usecase. prices may be nil.
func NewUsecase(
	client polymarket.Client,
	marketRepository market.MarketRepository,
	prices pricecache.Cache,
	dbTx postgresql.Transaction,
	retry postgresql.RetryConfig,
	options Options,
	logger logger.Interface,
) *usecase {
	if options.Tolerance <= 0 {
		options.Tolerance = arbitrage.DefaultTolerance
	}
	return &usecase{
		client:           client,
		marketRepository: marketRepository,
		prices:           prices,
		dbTx:             dbTx,
		retry:            retry,
		options:          options,
		logger:           logger,
		now:              time.Now,
	}
}

var _ scannerDomain.Usecase = (*usecase)(nil)

func (u *usecase) Scan(ctx context.Context) (*scannerDomain.ScanResult, error) {
	result := &scannerDomain.ScanResult{ScannedAt: u.now().UTC()}

	markets, err := u.client.ActiveMarkets(ctx)
	if err != nil {
		return result, err
	}
	result.Markets = len(markets)
	metrics.MarketsScanned.Add(float64(len(markets)))

	if len(markets) > 0 {
		var ticks int64
		err = postgresql.AtomicWithRetry(ctx, u.dbTx, u.retry, func(txCtx context.Context) error {
			if _, err := u.marketRepository.UpsertMarkets(txCtx, markets); err != nil {
				return err
			}
			if _, err := u.marketRepository.InsertSnapshots(txCtx, markets); err != nil {
				return err
			}
			n, err := u.marketRepository.InsertTicks(txCtx, markets)
			ticks = n
			return err
		}, u.notifyRetry(ctx, "store_scan"))
		if err != nil {
			return result, err
		}

		result.Ticks = ticks
		metrics.TicksIngested.WithLabelValues(marketv1.TickSource).Add(float64(ticks))
		u.cachePrices(ctx, markets)
	}

	quotes := make([]arbitrage.Quote, len(markets))
	for i, m := range markets {
		quotes[i] = m.Quote()
	}
	result.Opportunities = arbitrage.Detect(quotes, u.options.Tolerance)
	metrics.ArbitrageOpportunities.Add(float64(len(result.Opportunities)))

	for i, opp := range result.Opportunities {
		if i == maxLoggedOpportunities {
			u.logger.InfoContext(ctx, "More arbitrage opportunities not logged",
				logger.Field{Key: "action", Value: "detect_arbitrage"},
				logger.Field{Key: "remaining", Value: len(result.Opportunities) - i},
			)
			break
		}
		u.logger.InfoContext(ctx, "Arbitrage opportunity",
			logger.Field{Key: "action", Value: "detect_arbitrage"},
			logger.Field{Key: "market_id", Value: opp.MarketID},
			logger.Field{Key: "question", Value: opp.Question},
			logger.Field{Key: "yes", Value: opp.YesPrice},
			logger.Field{Key: "no", Value: opp.NoPrice},
			logger.Field{Key: "sum", Value: opp.Sum},
			logger.Field{Key: "kind", Value: string(opp.Kind)},
		)
	}

	return result, nil
}

// cachePrices runs after commit. A cache failure only costs freshness.
func (u *usecase) cachePrices(ctx context.Context, markets []marketv1.Market) {
	if u.prices == nil {
		return
	}
	for _, m := range markets {
		for _, leg := range m.Legs() {
			err := u.prices.Put(ctx, pricecache.Quote{Symbol: leg.Symbol, Price: leg.Price, Timestamp: m.ScannedAt})
			if err != nil {
				u.logger.WarnContext(ctx, "price cache write failed",
					logger.Field{Key: "action", Value: "cache_prices"},
					logger.Field{Key: "symbol", Value: leg.Symbol},
					logger.Field{Key: "error", Value: err.Error()},
				)
			}
		}
	}
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
