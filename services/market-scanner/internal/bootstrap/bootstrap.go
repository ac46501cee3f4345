package bootstrap

import (
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	scannerDomain "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/scanner"
	"github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/infrastructure/polymarket"
	marketInfra "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/infrastructure/postgresql/market"
	scannerUc "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/usecase/scanner"
)

// Bootstrap is the bootstrap for the market scanner.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	Repository Repository
	Client     polymarket.Client

	DB         postgresql.PostgreSQLClient
	PriceCache pricecache.Cache
	Retry      postgresql.RetryConfig
	Polymarket polymarket.Config
	Scan       scannerUc.Options
}

// Repository is the repository for the market scanner.
type Repository struct {
	MarketRepository marketInfra.MarketRepository
}

// Usecase is the usecase for the market scanner.
type Usecase struct {
	ScannerUsecase scannerDomain.Usecase
}

// BoostrapConfig is the config for the bootstrap. PriceCache is optional.
type BoostrapConfig struct {
	DB         postgresql.PostgreSQLClient
	Logger     logger.Interface
	PriceCache pricecache.Cache
	Retry      postgresql.RetryConfig
	Polymarket polymarket.Config
	Scan       scannerUc.Options
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BoostrapConfig) Bootstrap {
	b.DB = config.DB
	b.Logger = config.Logger
	b.PriceCache = config.PriceCache
	b.Retry = config.Retry
	b.Polymarket = config.Polymarket
	b.Scan = config.Scan

	b.Client = polymarket.NewClient(b.Polymarket, b.Logger)
	b.Repository.MarketRepository = marketInfra.NewRepository(b.DB, b.Logger)
	b.Usecase.ScannerUsecase = scannerUc.NewUsecase(
		b.Client,
		b.Repository.MarketRepository,
		b.PriceCache,
		postgresql.NewTransaction(b.DB),
		b.Retry,
		b.Scan,
		b.Logger,
	)

	return *b
}
