// Package price resolves the last traded price of a symbol from the shared price cache,
// falling back to the most recent stored tick.
package price

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	fillv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/fill/v1"
)

const latestTickQuery = `SELECT price FROM market_ticks WHERE symbol = $1 ORDER BY timestamp DESC, id DESC LIMIT 1`

// Source implements fillv1.PriceSource.
type Source struct {
	cache  pricecache.Cache
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

var _ fillv1.PriceSource = (*Source)(nil)

// NewSource creates a Source. cache may be nil.
func NewSource(cache pricecache.Cache, db postgresql.PostgreSQLClient, logger logger.Interface) *Source {
	return &Source{cache: cache, db: db, logger: logger}
}

// LastPrice checks the cache first. A cache failure is logged and the database is asked
// instead.
func (s *Source) LastPrice(ctx context.Context, symbol string) (float64, bool, error) {
	if s.cache != nil {
		quote, ok, err := s.cache.Get(ctx, symbol)
		if err != nil {
			s.logger.WarnContext(ctx, "Price cache lookup failed",
				logger.Field{Key: "symbol", Value: symbol},
				logger.Field{Key: "error", Value: err.Error()},
			)
		}
		if ok {
			return quote.Price, true, nil
		}
	}

	var price float64
	err := s.db.QueryRow(ctx, latestTickQuery, symbol).Scan(&price)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.TracerFromError(err)
	}
	return price, true, nil
}
