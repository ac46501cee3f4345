package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	"github.com/muhammadchandra19/paper-trading/pkg/redis"
	app "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/app/scanner"
	"github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/bootstrap"
	scannerUc "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/usecase/scanner"
	"github.com/muhammadchandra19/paper-trading/services/market-scanner/pkg/config"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	log, err = logger.NewLogger(
		logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)),
		logger.WithService(cfg.App.Name),
	)
	if err != nil {
		panic(err)
	}
}

func main() {
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	db, err := postgresql.ConnectWithRetry(ctx, cfg.Database, func(err error, wait time.Duration) {
		log.Warn("Waiting for PostgreSQL",
			logger.Field{Key: "delay", Value: wait.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	})
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_postgresql"})
		return
	}
	defer db.Close()

	checks := map[string]healthcheck.Check{"postgresql": postgresql.HealthChecker(db)}

	var rclient redis.Client
	if cfg.Redis.Enabled {
		rclient = redis.NewClient(log, &cfg.Redis)
		if err := rclient.Connect(ctx); err != nil {
			log.Warn("Redis unavailable, retrying", logger.Field{Key: "error", Value: err.Error()})
			if !rclient.Reconnect(ctx) {
				log.Warn("Continuing without Redis, prices are cached in process only")
				rclient = nil
			}
		}
		if rclient != nil {
			defer func() { _ = rclient.Disconnect(context.Background()) }()
			checks["redis"] = rclient.Ping
		}
	}

	prices, err := pricecache.New(cfg.PriceCache, rclient, log)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "create_price_cache"})
		return
	}
	defer prices.Close()

	b := &bootstrap.Bootstrap{}
	b.Init(bootstrap.BoostrapConfig{
		DB:         db,
		Logger:     log,
		PriceCache: prices,
		Retry:      cfg.Database.Retry,
		Polymarket: cfg.Polymarket,
		Scan:       scannerUc.Options{Tolerance: cfg.Scan.ArbitrageTolerance},
	})

	scanner := app.NewScanner(b.Usecase.ScannerUsecase, log, &app.Options{
		Interval:    cfg.Scan.Interval,
		ScanTimeout: cfg.Scan.Timeout,
	})

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.Serve(cfg.Metrics.Addr, checks)
	}

	if err := scanner.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start_scanner"})
		return
	}

	log.Info("Market scanner running", logger.Field{Key: "api", Value: cfg.Polymarket.BaseURL})

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := scanner.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_scanner"})
	}
	if err := metrics.Shutdown(metricsServer, 5*time.Second); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_metrics"})
	}

	log.Info("Market scanner shutdown complete")
}
