package tick

import (
	"context"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

const (
	storeBatchQuery = `INSERT INTO market_ticks (symbol, price, volume, source, timestamp) ` +
		`SELECT * FROM unnest($1::text[], $2::float8[], $3::float8[], $4::text[], $5::timestamptz[]) ` +
		`ON CONFLICT (symbol, timestamp, source) DO NOTHING`

	listWindowQuery = `SELECT id, symbol, price, volume, source, timestamp FROM market_ticks ` +
		`WHERE symbol = ANY($1) AND timestamp >= $2 AND timestamp <= $3 ` +
		`ORDER BY symbol, timestamp, id`
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// StoreBatch inserts ticks, ignoring ones already stored, and returns how many were new.
func (r *repository) StoreBatch(ctx context.Context, ticks []marketv1.Tick) (int64, error) {
	if len(ticks) == 0 {
		return 0, nil
	}

	symbols := make([]string, len(ticks))
	prices := make([]float64, len(ticks))
	volumes := make([]float64, len(ticks))
	sources := make([]string, len(ticks))
	timestamps := make([]time.Time, len(ticks))
	for i, t := range ticks {
		symbols[i] = t.Symbol
		prices[i] = t.Price
		volumes[i] = t.Volume
		sources[i] = t.Source
		timestamps[i] = t.Timestamp.UTC()
	}

	cmd, err := r.db.Exec(ctx, storeBatchQuery, symbols, prices, volumes, sources, timestamps)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	r.logger.Debug("Inserted batch of ticks", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return cmd.RowsAffected(), nil
}

// ListWindow returns the ticks of symbols within [from, to], ordered by symbol, timestamp and id.
func (r *repository) ListWindow(ctx context.Context, symbols []string, from, to time.Time) ([]marketv1.Tick, error) {
	rows, err := r.db.Query(ctx, listWindowQuery, symbols, from.UTC(), to.UTC())
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	ticks := []marketv1.Tick{}
	for rows.Next() {
		var t marketv1.Tick
		if err := rows.Scan(&t.ID, &t.Symbol, &t.Price, &t.Volume, &t.Source, &t.Timestamp); err != nil {
			return nil, errors.TracerFromError(err)
		}
		ticks = append(ticks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return ticks, nil
}
