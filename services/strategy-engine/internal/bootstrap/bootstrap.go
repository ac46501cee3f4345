package bootstrap

import (
	"github.com/muhammadchandra19/paper-trading/pkg/kafka"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	strategyv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/strategy/v1"
)

// Bootstrap is the bootstrap for the strategy engine.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	Repository Repository
	Consumer   Consumer

	DB         postgresql.PostgreSQLClient
	PriceCache pricecache.Cache
	Strategies []strategyv1.Strategy
	Retry      postgresql.RetryConfig

	signalWriter kafka.MessageWriter
	tickReader   kafka.MessageReader
}

// BoostrapConfig is the config for the bootstrap. PriceCache, SignalWriter and
// TickReader are optional.
type BoostrapConfig struct {
	DB           postgresql.PostgreSQLClient
	Logger       logger.Interface
	PriceCache   pricecache.Cache
	Strategies   []strategyv1.Strategy
	Retry        postgresql.RetryConfig
	SignalWriter kafka.MessageWriter
	TickReader   kafka.MessageReader
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BoostrapConfig) Bootstrap {
	b.DB = config.DB
	b.Logger = config.Logger
	b.PriceCache = config.PriceCache
	b.Strategies = config.Strategies
	b.Retry = config.Retry
	b.signalWriter = config.SignalWriter
	b.tickReader = config.TickReader

	b.registerRepository()
	b.registerUsecase()
	b.registerConsumer()

	return *b
}
