package bootstrap

import (
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	lockv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/lock/v1"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/usecase/trading"
)

// Bootstrap is the bootstrap for the paper trading engine.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	Repository Repository
	Consumer   Consumer

	DB         postgresql.PostgreSQLClient
	PriceCache pricecache.Cache
	Locker     lockv1.Locker
	Retry      postgresql.RetryConfig
	Trading    trading.Options
	Fill       FillOptions

	signalReader kafka.MessageReader
}

// FillOptions selects the fill model.
type FillOptions struct {
	Model       string
	SlippageBps float64
}

// BoostrapConfig is the config for the bootstrap. PriceCache and SignalReader are
// optional; a nil Locker grants every lease.
type BoostrapConfig struct {
	DB           postgresql.PostgreSQLClient
	Logger       logger.Interface
	PriceCache   pricecache.Cache
	Locker       lockv1.Locker
	Retry        postgresql.RetryConfig
	Trading      trading.Options
	Fill         FillOptions
	SignalReader kafka.MessageReader
}

// Init initializes the bootstrap. It fails when the fill model is misconfigured.
func (b *Bootstrap) Init(config BoostrapConfig) (Bootstrap, error) {
	b.DB = config.DB
	b.Logger = config.Logger
	b.PriceCache = config.PriceCache
	b.Locker = config.Locker
	b.Retry = config.Retry
	b.Trading = config.Trading
	b.Fill = config.Fill
	b.signalReader = config.SignalReader

	b.registerRepository()
	if err := b.registerUsecase(); err != nil {
		return *b, err
	}
	b.registerConsumer()

	return *b, nil
}
