package consumer

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/event"
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/metrics"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
	"github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/infrastructure/postgresql/tick"
	kafkago "github.com/segmentio/kafka-go"
)

// TickConsumer stores ticks read from the market data topic.
type TickConsumer struct {
	reader kafka.MessageReader

	tickRepository tick.TickRepository
	priceCache     pricecache.Cache
	retry          postgresql.RetryConfig
	logger         logger.Interface

	msgChan chan kafkago.Message
}

// NewTickConsumer creates a new TickConsumer. priceCache may be nil.
func NewTickConsumer(
	reader kafka.MessageReader,
	tickRepository tick.TickRepository,
	priceCache pricecache.Cache,
	retry postgresql.RetryConfig,
	logger logger.Interface,
) *TickConsumer {
	return &TickConsumer{
		reader:         reader,
		tickRepository: tickRepository,
		priceCache:     priceCache,
		retry:          retry,
		logger:         logger,
		msgChan:        make(chan kafkago.Message),
	}
}

// Start reads messages until ctx is done, then closes the channel Subscribe drains.
func (c *TickConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting tick consumer", logger.Field{
		Key:   "action",
		Value: "tick_consumer_start",
	})
	defer close(c.msgChan)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.InfoContext(ctx, "context done", logger.Field{
					Key:   "action",
					Value: "tick_consumer_stop",
				})
				return
			}
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "read_message",
			})
			continue
		}

		select {
		case c.msgChan <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// Stop closes the reader.
func (c *TickConsumer) Stop() error {
	c.logger.Info("stopping tick consumer", logger.Field{
		Key:   "action",
		Value: "tick_consumer_stop",
	})
	return c.reader.Close()
}

// Subscribe handles messages until Start closes the channel or ctx is done.
// Group offsets are committed in order, so a message is only committed once its tick
// is stored or it is recorded as dropped. While the store keeps failing transiently
// the same message is retried and nothing after it is committed.
func (c *TickConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to tick consumer", logger.Field{
		Key:   "action",
		Value: "tick_consumer_subscribe",
	})

	for msg := range c.msgChan {
		if !c.process(ctx, msg) {
			return
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

// process reports whether msg may be committed. It returns false only when ctx ended
// before the tick could be stored.
func (c *TickConsumer) process(ctx context.Context, msg kafkago.Message) bool {
	for {
		err := c.handleMessage(ctx, msg)
		switch {
		case err == nil:
			return true
		case ctx.Err() != nil:
			return false
		case isPoison(err):
			c.drop(ctx, msg, "undecodable", err)
			return true
		case !postgresql.IsTransient(err):
			c.drop(ctx, msg, "store_failed", err)
			return true
		}

		c.logger.WarnContext(ctx, "tick store still failing, retrying message",
			logger.Field{Key: "action", Value: "store_tick"},
			logger.Field{Key: "offset", Value: msg.Offset},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
}

func (c *TickConsumer) drop(ctx context.Context, msg kafkago.Message, reason string, err error) {
	metrics.TicksDropped.WithLabelValues(reason).Inc()
	c.logger.ErrorContext(ctx, err,
		logger.Field{Key: "action", Value: "drop_tick"},
		logger.Field{Key: "reason", Value: reason},
		logger.Field{Key: "offset", Value: msg.Offset},
	)
}

var errPoison = stderrors.New("undecodable tick")

func isPoison(err error) bool {
	return stderrors.Is(err, errPoison)
}

func (c *TickConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var ev event.TickEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return errors.NewTracer(err.Error()).Wrap(errPoison)
	}
	if err := ev.Validate(); err != nil {
		return errors.NewTracer(err.Error()).Wrap(errPoison)
	}

	source := ev.Source
	if source == "" {
		source = "kafka"
	}

	t := marketv1.Tick{
		Symbol:    ev.Symbol,
		Price:     ev.Price,
		Volume:    ev.Volume,
		Source:    source,
		Timestamp: ev.Timestamp.UTC(),
	}

	var stored int64
	err := postgresql.Retry(ctx, c.retry, func(ctx context.Context) error {
		var err error
		stored, err = c.tickRepository.StoreBatch(ctx, []marketv1.Tick{t})
		return err
	}, c.notifyRetry(ctx))
	if err != nil {
		return err
	}
	metrics.TicksIngested.WithLabelValues(source).Add(float64(stored))

	if c.priceCache != nil {
		quote := pricecache.Quote{Symbol: t.Symbol, Price: t.Price, Timestamp: t.Timestamp}
		if err := c.priceCache.Put(ctx, quote); err != nil {
			c.logger.WarnContext(ctx, "failed to cache price",
				logger.Field{Key: "action", Value: "cache_price"},
				logger.Field{Key: "symbol", Value: t.Symbol},
				logger.Field{Key: "error", Value: err.Error()},
			)
		}
	}

	return nil
}

func (c *TickConsumer) notifyRetry(ctx context.Context) func(error, time.Duration) {
	return func(err error, wait time.Duration) {
		metrics.DBRetries.WithLabelValues("store_tick").Inc()
		c.logger.WarnContext(ctx, "retrying transient database error",
			logger.Field{Key: "action", Value: "store_tick"},
			logger.Field{Key: "delay", Value: wait.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
}
