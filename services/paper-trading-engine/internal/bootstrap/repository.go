package bootstrap

import (
	fillInfra "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/fill"
	portfolioInfra "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/portfolio"
	signalInfra "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/signal"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/price"
)

// Repository is the repository for the paper trading engine.
type Repository struct {
	SignalRepository    signalInfra.SignalRepository
	PortfolioRepository portfolioInfra.PortfolioRepository
	FillRepository      fillInfra.FillRepository
	PriceSource         *price.Source
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.SignalRepository = signalInfra.NewRepository(b.DB, b.Logger)
	b.Repository.PortfolioRepository = portfolioInfra.NewRepository(b.DB, b.Logger)
	b.Repository.FillRepository = fillInfra.NewRepository(b.DB, b.Logger)
	b.Repository.PriceSource = price.NewSource(b.PriceCache, b.DB, b.Logger)
}
