package signal

import (
	"context"
	"encoding/json"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/event"
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
	publisherv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/signal-publisher/v1"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher writes SignalEvents to the signals topic.
type Publisher struct {
	writer kafka.MessageWriter
	logger logger.Interface
}

var _ publisherv1.SignalPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for signal events.
func NewPublisher(writer kafka.MessageWriter, logger logger.Interface) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish writes one message per signal, keyed by symbol.
func (p *Publisher) Publish(ctx context.Context, signals []marketv1.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(signals))
	for _, s := range signals {
		payload, err := json.Marshal(event.SignalEvent{
			ID:        s.ID.String(),
			Strategy:  s.Strategy,
			Symbol:    s.Symbol,
			Side:      string(s.Side),
			Quantity:  s.Quantity,
			Timestamp: s.Timestamp,
		})
		if err != nil {
			return errors.TracerFromError(err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(s.Symbol),
			Value: payload,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "publish_signal_events"},
			logger.Field{Key: "count", Value: len(msgs)},
		)
		return errors.NewTracer("failed to publish signal events").Wrap(err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Noop drops every signal. Used when Kafka is disabled; the paper trading engine
// still finds the signals by polling.
type Noop struct{}

// Publish does nothing.
func (Noop) Publish(context.Context, []marketv1.Signal) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }
