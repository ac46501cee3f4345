package listener

import (
	"context"
	"encoding/json"

	"github.com/muhammadchandra19/paper-trading/pkg/event"
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	kafkago "github.com/segmentio/kafka-go"
)

// Listener turns signal announcements into wake ups for the trading loop. Pending
// signals are always read back from the database, so a lost or duplicated message
// only changes when a cycle runs.
type Listener struct {
	reader kafka.MessageReader
	logger logger.Interface

	msgChan chan kafkago.Message
	nudges  chan struct{}
}

// NewListener creates a new Listener.
func NewListener(reader kafka.MessageReader, logger logger.Interface) *Listener {
	return &Listener{
		reader:  reader,
		logger:  logger,
		msgChan: make(chan kafkago.Message),
		nudges:  make(chan struct{}, 1),
	}
}

// Nudges fires at least once after any number of announcements. Bursts coalesce into
// a single pending wake up.
func (l *Listener) Nudges() <-chan struct{} {
	return l.nudges
}

// Start reads messages until ctx is done, then closes the channel Subscribe drains.
func (l *Listener) Start(ctx context.Context) {
	l.logger.InfoContext(ctx, "starting signal listener", logger.Field{
		Key:   "action",
		Value: "signal_listener_start",
	})
	defer close(l.msgChan)

	for {
		msg, err := l.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "read_message",
			})
			continue
		}

		select {
		case l.msgChan <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// Stop closes the reader.
func (l *Listener) Stop() error {
	l.logger.Info("stopping signal listener", logger.Field{
		Key:   "action",
		Value: "signal_listener_stop",
	})
	return l.reader.Close()
}

// Subscribe nudges the loop for every message and commits it.
func (l *Listener) Subscribe(ctx context.Context) {
	for msg := range l.msgChan {
		var ev event.SignalEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			l.logger.WarnContext(ctx, "undecodable signal event",
				logger.Field{Key: "action", Value: "decode_signal_event"},
				logger.Field{Key: "offset", Value: msg.Offset},
			)
		} else {
			l.logger.DebugContext(ctx, "signal announced",
				logger.Field{Key: "signal_id", Value: ev.ID},
				logger.Field{Key: "strategy", Value: ev.Strategy},
			)
			l.nudge()
		}

		if err := l.reader.CommitMessages(ctx, msg); err != nil {
			l.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (l *Listener) nudge() {
	select {
	case l.nudges <- struct{}{}:
	default:
	}
}
