package market

import (
	"context"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
)

const (
	upsertMarketsQuery = `INSERT INTO markets (id, question, condition_id, slug, end_date, active, liquidity, updated_at) ` +
		`SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::timestamptz[], $6::bool[], $7::float8[], $8::timestamptz[]) ` +
		`ON CONFLICT (id) DO UPDATE SET question = EXCLUDED.question, condition_id = EXCLUDED.condition_id, ` +
		`slug = EXCLUDED.slug, end_date = EXCLUDED.end_date, active = EXCLUDED.active, ` +
		`liquidity = EXCLUDED.liquidity, updated_at = EXCLUDED.updated_at`

	insertSnapshotsQuery = `INSERT INTO market_snapshots (market_id, yes_price, no_price, liquidity, timestamp) ` +
		`SELECT * FROM unnest($1::text[], $2::float8[], $3::float8[], $4::float8[], $5::timestamptz[])`

	insertTicksQuery = `INSERT INTO market_ticks (symbol, price, volume, source, timestamp) ` +
		`SELECT * FROM unnest($1::text[], $2::float8[], $3::float8[], $4::text[], $5::timestamptz[]) ` +
		`ON CONFLICT (symbol, timestamp, source) DO NOTHING`
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

// UpsertMarkets inserts or refreshes market metadata. A market listed twice keeps its last entry.
func (r *repository) UpsertMarkets(ctx context.Context, markets []marketv1.Market) (int64, error) {
	markets = dedupe(markets)
	if len(markets) == 0 {
		return 0, nil
	}

	n := len(markets)
	ids := make([]string, n)
	questions := make([]string, n)
	conditions := make([]string, n)
	slugs := make([]string, n)
	endDates := make([]*time.Time, n)
	active := make([]bool, n)
	liquidity := make([]*float64, n)
	updated := make([]time.Time, n)
	for i, m := range markets {
		ids[i] = m.ID
		questions[i] = m.Question
		conditions[i] = m.ConditionID
		slugs[i] = m.Slug
		endDates[i] = m.EndDate
		active[i] = m.Active
		liquidity[i] = m.Liquidity
		updated[i] = m.ScannedAt.UTC()
	}

	cmd, err := r.db.Exec(ctx, upsertMarketsQuery, ids, questions, conditions, slugs, endDates, active, liquidity, updated)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	r.logger.Debug("Upserted markets", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return cmd.RowsAffected(), nil
}

// InsertSnapshots appends one price snapshot per market.
func (r *repository) InsertSnapshots(ctx context.Context, markets []marketv1.Market) (int64, error) {
	markets = dedupe(markets)
	if len(markets) == 0 {
		return 0, nil
	}

	n := len(markets)
	ids := make([]string, n)
	yes := make([]*float64, n)
	no := make([]*float64, n)
	liquidity := make([]*float64, n)
	timestamps := make([]time.Time, n)
	for i, m := range markets {
		ids[i] = m.ID
		yes[i] = m.YesPrice
		no[i] = m.NoPrice
		liquidity[i] = m.Liquidity
		timestamps[i] = m.ScannedAt.UTC()
	}

	cmd, err := r.db.Exec(ctx, insertSnapshotsQuery, ids, yes, no, liquidity, timestamps)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}
	return cmd.RowsAffected(), nil
}

// InsertTicks stores each priced leg as a tick, ignoring ones already stored, and returns how many were new.
func (r *repository) InsertTicks(ctx context.Context, markets []marketv1.Market) (int64, error) {
	var (
		symbols    []string
		prices     []float64
		volumes    []float64
		sources    []string
		timestamps []time.Time
	)
	for _, m := range dedupe(markets) {
		for _, leg := range m.Legs() {
			symbols = append(symbols, leg.Symbol)
			prices = append(prices, leg.Price)
			volumes = append(volumes, 0)
			sources = append(sources, marketv1.TickSource)
			timestamps = append(timestamps, m.ScannedAt.UTC())
		}
	}
	if len(symbols) == 0 {
		return 0, nil
	}

	cmd, err := r.db.Exec(ctx, insertTicksQuery, symbols, prices, volumes, sources, timestamps)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	r.logger.Debug("Inserted market legs as ticks", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return cmd.RowsAffected(), nil
}

func dedupe(markets []marketv1.Market) []marketv1.Market {
	index := make(map[string]int, len(markets))
	out := make([]marketv1.Market, 0, len(markets))
	for _, m := range markets {
		if i, ok := index[m.ID]; ok {
			out[i] = m
			continue
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	return out
}
