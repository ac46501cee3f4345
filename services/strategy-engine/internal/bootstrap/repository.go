package bootstrap

import (
	signalInfra "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/infrastructure/postgresql/signal"
	tickInfra "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/infrastructure/postgresql/tick"
)

// Repository is the repository for the strategy engine.
type Repository struct {
	TickRepository   tickInfra.TickRepository
	SignalRepository signalInfra.SignalRepository
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.TickRepository = tickInfra.NewRepository(b.DB, b.Logger)
	b.Repository.SignalRepository = signalInfra.NewRepository(b.DB, b.Logger)
}
