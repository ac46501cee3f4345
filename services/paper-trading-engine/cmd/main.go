package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	"github.com/muhammadchandra19/paper-trading/pkg/redis"
	app "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/app/engine"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/bootstrap"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/redis/lock"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/usecase/trading"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/pkg/config"
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
				log.Warn("Continuing without Redis, the portfolio lease is disabled")
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

	bootstrapConfig := bootstrap.BoostrapConfig{
		DB:         db,
		Logger:     log,
		PriceCache: prices,
		Retry:      cfg.Database.Retry,
		Trading: trading.Options{
			PortfolioID:  cfg.Engine.PortfolioID,
			StartingCash: cfg.Engine.StartingCash,
			BatchSize:    cfg.Engine.BatchSize,
			LockTTL:      cfg.Engine.LockTTL,
		},
		Fill: bootstrap.FillOptions{
			Model:       cfg.Fill.Model,
			SlippageBps: cfg.Fill.SlippageBps,
		},
	}
	if rclient != nil {
		bootstrapConfig.Locker = lock.NewLocker(rclient, log)
	}
	if cfg.Kafka.Enabled {
		bootstrapConfig.SignalReader = kafka.NewReader(cfg.Kafka, cfg.Kafka.SignalTopic, cfg.Engine.ConsumerGroup, log)
	}

	b := &bootstrap.Bootstrap{}
	if _, err := b.Init(bootstrapConfig); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "bootstrap"})
		return
	}

	if _, err := b.Usecase.TradingUsecase.EnsurePortfolio(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "ensure_portfolio"})
		return
	}

	var listener app.Listener
	if b.Consumer.SignalListener != nil {
		listener = b.Consumer.SignalListener
	}

	engine := app.NewEngine(b.Usecase.TradingUsecase, listener, log, &app.Options{
		Interval:     cfg.Engine.Interval,
		CycleTimeout: cfg.Engine.CycleTimeout,
	})

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.Serve(cfg.Metrics.Addr, checks)
	}

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start_engine"})
		return
	}

	log.Info("Paper trading engine running",
		logger.Field{Key: "portfolio", Value: cfg.Engine.PortfolioID},
		logger.Field{Key: "fill_model", Value: b.Usecase.FillModel.Name()},
	)

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_engine"})
	}
	if err := metrics.Shutdown(metricsServer, 5*time.Second); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_metrics"})
	}

	log.Info("Paper trading engine shutdown complete")
}
