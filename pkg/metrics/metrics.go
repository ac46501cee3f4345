// Package metrics holds the Prometheus collectors shared by the engines and the
// HTTP server that exposes them.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/httplib/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "papertrade"

var (
	TicksIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ticks_ingested_total", Help: "Market ticks stored, by source"},
		[]string{"source"},
	)
	TicksDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ticks_dropped_total", Help: "Tick messages committed without being stored, by reason"},
		[]string{"reason"},
	)
	SignalsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "signals_emitted_total", Help: "Signals persisted by the strategy engine"},
		[]string{"strategy", "side"},
	)
	StrategyErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "strategy_errors_total", Help: "Strategy evaluations that failed or panicked"},
		[]string{"strategy"},
	)
	SignalsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "signals_processed_total", Help: "Signals handled by the paper trading engine, by outcome"},
		[]string{"outcome"},
	)
	CycleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "cycle_duration_seconds", Help: "Duration of an engine cycle", Buckets: prometheus.DefBuckets},
		[]string{"engine"},
	)
	CycleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cycle_errors_total", Help: "Engine cycles that ended with an error"},
		[]string{"engine"},
	)
	DBRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "db_retries_total", Help: "Transient database failures that were retried"},
		[]string{"operation"},
	)
	PortfolioEquity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "portfolio_equity", Help: "Cash plus marked position value"},
		[]string{"portfolio"},
	)
	PortfolioCash = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "portfolio_cash", Help: "Cash balance"},
		[]string{"portfolio"},
	)
	MarketsScanned = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "markets_scanned_total", Help: "Markets fetched from the prediction market API"},
	)
	ArbitrageOpportunities = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "arbitrage_opportunities_total", Help: "Markets whose YES and NO prices do not sum to one"},
	)
)

func init() {
	prometheus.MustRegister(
		TicksIngested,
		TicksDropped,
		SignalsEmitted,
		StrategyErrors,
		SignalsProcessed,
		CycleDuration,
		CycleErrors,
		DBRetries,
		PortfolioEquity,
		PortfolioCash,
		MarketsScanned,
		ArbitrageOpportunities,
	)
}

// ObserveCycle records the duration of a cycle that started at start and counts it as
// failed when err is not nil.
func ObserveCycle(engine string, start time.Time, err error) {
	CycleDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	if err != nil {
		CycleErrors.WithLabelValues(engine).Inc()
	}
}

// Config controls the metrics listener.
type Config struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Addr    string `env:"ADDR" envDefault:":9090"`
}

// Serve starts /metrics, /health and /ready on addr in the background.
func Serve(addr string, checks map[string]healthcheck.Check) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           healthcheck.HealthCheck{Checks: checks}.Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

// Shutdown stops srv, waiting at most timeout for in-flight scrapes.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
