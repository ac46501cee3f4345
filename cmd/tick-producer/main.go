// Command tick-producer publishes random walk market ticks to Kafka for local runs
// of the strategy engine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
)

type options struct {
	brokers    []string
	topic      string
	symbols    string
	interval   time.Duration
	count      int
	volatility float64
	source     string
	seed       int64
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "tick-producer:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	var kcfg kafka.Config
	_ = env.ParseWithOptions(&kcfg, env.Options{Prefix: "KAFKA_"})

	opts := options{}
	cmd := &cobra.Command{
		Use:           "tick-producer",
		Short:         "Publish random walk ticks to Kafka",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.NewLogger(
				logger.WithLoggingLevel(logger.Level(opts.logLevel)),
				logger.WithService("tick-producer"),
			)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			seeds, err := parseSymbols(opts.symbols)
			if err != nil {
				return err
			}
			if opts.seed == 0 {
				opts.seed = time.Now().UnixNano()
			}

			kcfg.Brokers = opts.brokers
			writer := kafka.NewWriter(kcfg, opts.topic, log)
			defer writer.Close()

			log.Info("Publishing ticks",
				logger.Field{Key: "brokers", Value: opts.brokers},
				logger.Field{Key: "topic", Value: opts.topic},
				logger.Field{Key: "symbols", Value: len(seeds)},
				logger.Field{Key: "interval", Value: opts.interval.String()},
			)

			w := newWalker(seeds, opts.volatility, opts.source, opts.seed)
			sent, err := run(cmd.Context(), writer, w, opts.interval, opts.count, time.Now, log)
			log.Info("Stopped publishing", logger.Field{Key: "sent", Value: sent})
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.brokers, "brokers", kcfg.Brokers, "Kafka broker addresses")
	f.StringVar(&opts.topic, "topic", kcfg.TickTopic, "topic to publish to")
	f.StringVar(&opts.symbols, "symbols", "BTC-USD=65000,ETH-USD=3500,SOL-USD=150", "NAME=PRICE pairs to simulate")
	f.DurationVar(&opts.interval, "interval", time.Second, "delay between rounds")
	f.IntVar(&opts.count, "count", 0, "rounds to publish, 0 runs until interrupted")
	f.Float64Var(&opts.volatility, "volatility", 0.002, "standard deviation of the log return per round")
	f.StringVar(&opts.source, "source", "sim", "source tag of the ticks")
	f.Int64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level")

	return cmd
}

// run publishes one round of ticks per interval until count rounds are sent or ctx
// is done. It returns the number of ticks written.
func run(
	ctx context.Context,
	writer kafka.MessageWriter,
	w *walker,
	interval time.Duration,
	count int,
	now func() time.Time,
	log logger.Interface,
) (int, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sent := 0
	for round := 1; ; round++ {
		ticks := w.next(now())
		msgs := make([]kafkago.Message, 0, len(ticks))
		for _, t := range ticks {
			value, err := json.Marshal(t)
			if err != nil {
				return sent, err
			}
			msgs = append(msgs, kafkago.Message{Key: []byte(t.Symbol), Value: value, Time: t.Timestamp})
		}

		if err := writer.WriteMessages(ctx, msgs...); err != nil {
			if ctx.Err() != nil {
				return sent, ctx.Err()
			}
			log.Error(err, logger.Field{Key: "action", Value: "publish_ticks"}, logger.Field{Key: "round", Value: round})
		} else {
			sent += len(msgs)
			log.Debug("Published round", logger.Field{Key: "round", Value: round}, logger.Field{Key: "sent", Value: sent})
		}

		if count > 0 && round >= count {
			return sent, nil
		}

		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		case <-ticker.C:
		}
	}
}
