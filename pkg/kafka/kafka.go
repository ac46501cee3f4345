// Package kafka wraps segmentio/kafka-go readers and writers behind small interfaces
// so consumers and publishers can be tested with mocks.
package kafka

import (
	"context"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Config is the broker configuration shared by every service.
type Config struct {
	Enabled       bool     `env:"ENABLED" envDefault:"true"`
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	TickTopic     string   `env:"TICK_TOPIC" envDefault:"market-ticks"`
	SignalTopic   string   `env:"SIGNAL_TOPIC" envDefault:"signals"`
	ConsumerGroup string   `env:"CONSUMER_GROUP"`
}

//go:generate mockgen -source=kafka.go -destination=mock/kafka_mock.go -package=kafka_mock

// MessageReader is the subset of *kafka.Reader used by consumers.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer used by publishers.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// errorLogger routes kafka-go's internal errors (rebalances, broker reconnects) to log.
func errorLogger(log logger.Interface) kafka.Logger {
	return kafka.LoggerFunc(log.GetZap().Sugar().Errorf)
}

// NewReader creates a consumer group reader on topic. New groups start at the latest offset.
func NewReader(config Config, topic, groupID string, log logger.Interface) *kafka.Reader {
	if config.ConsumerGroup != "" {
		groupID = config.ConsumerGroup
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: 0,
		ErrorLogger:    errorLogger(log),
	})
}

// NewWriter creates a writer on topic. Messages with the same key land on the same partition.
func NewWriter(config Config, topic string, log logger.Interface) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		ErrorLogger:  errorLogger(log),
	}
}
