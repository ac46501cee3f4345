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
	app "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/app/engine"
	"github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/bootstrap"
	"github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/usecase/strategy"
	"github.com/muhammadchandra19/paper-trading/services/strategy-engine/pkg/config"
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

	definitions, err := config.LoadStrategies(cfg.StrategyConfigPath)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "load_strategies"})
		return
	}
	strategies, err := strategy.NewAll(definitions)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "build_strategies"})
		return
	}

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
				log.Warn("Continuing without Redis")
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
		Strategies: strategies,
		Retry:      cfg.Database.Retry,
	}
	if cfg.Kafka.Enabled {
		writer := kafka.NewWriter(cfg.Kafka, cfg.Kafka.SignalTopic, log)
		bootstrapConfig.SignalWriter = writer
		bootstrapConfig.TickReader = kafka.NewReader(cfg.Kafka, cfg.Kafka.TickTopic, cfg.Engine.ConsumerGroup, log)
	}

	b := &bootstrap.Bootstrap{}
	b.Init(bootstrapConfig)
	defer func() {
		if err := b.Usecase.Publisher.Close(); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "close_publisher"})
		}
	}()

	var consumer app.Consumer
	if b.Consumer.TickConsumer != nil {
		consumer = b.Consumer.TickConsumer
	}

	engine := app.NewEngine(b.Usecase.EvaluatorUsecase, consumer, log, &app.Options{
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

	log.Info("Strategy engine running", logger.Field{Key: "strategies", Value: len(strategies)})

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

	log.Info("Strategy engine shutdown complete")
}
