package bootstrap

import (
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	fillv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/fill/v1"
	tradingDomain "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/trading"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/redis/lock"
	fillUc "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/usecase/fill"
	tradingUc "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/usecase/trading"
)

// Usecase is the usecase for the paper trading engine.
type Usecase struct {
	TradingUsecase tradingDomain.Usecase
	FillModel      fillv1.Model
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() error {
	model, err := fillUc.New(b.Fill.Model, b.Fill.SlippageBps, b.Repository.PriceSource)
	if err != nil {
		return err
	}
	b.Usecase.FillModel = model

	if b.Locker == nil {
		b.Locker = lock.Noop{}
	}

	b.Usecase.TradingUsecase = tradingUc.NewUsecase(
		b.Repository.SignalRepository,
		b.Repository.PortfolioRepository,
		b.Repository.FillRepository,
		model,
		b.Repository.PriceSource,
		b.Locker,
		postgresql.NewTransaction(b.DB),
		b.Retry,
		b.Trading,
		b.Logger,
	)
	return nil
}
