package bootstrap

import (
	tickConsumer "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/consumer/tick-consumer"
)

// Consumer holds the optional Kafka consumers.
type Consumer struct {
	TickConsumer *tickConsumer.TickConsumer
}

// registerConsumer registers the tick consumer when a reader was provided.
func (b *Bootstrap) registerConsumer() {
	if b.tickReader == nil {
		return
	}
	b.Consumer.TickConsumer = tickConsumer.NewTickConsumer(b.tickReader, b.Repository.TickRepository, b.PriceCache, b.Retry, b.Logger)
}
