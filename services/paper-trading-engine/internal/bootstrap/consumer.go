package bootstrap

import (
	signalListener "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/consumer/signal-listener"
)

// Consumer holds the optional Kafka consumers.
type Consumer struct {
	SignalListener *signalListener.Listener
}

// registerConsumer registers the signal listener when a reader was provided.
func (b *Bootstrap) registerConsumer() {
	if b.signalReader == nil {
		return
	}
	b.Consumer.SignalListener = signalListener.NewListener(b.signalReader, b.Logger)
}
