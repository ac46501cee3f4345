package signal

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
)

const insertQuery = `INSERT INTO signals (id, strategy, symbol, side, quantity, reference_price, reason, status, timestamp) ` +
	`VALUES ($1, $2, $3, $4, $5, $6, $7, 'PENDING', $8) ON CONFLICT (id) DO NOTHING RETURNING id`

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

// Insert stores signals in one round trip. Signals whose id is already present are
// left untouched and are not part of the result.
func (r *repository) Insert(ctx context.Context, signals []marketv1.Signal) ([]marketv1.Signal, error) {
	if len(signals) == 0 {
		return []marketv1.Signal{}, nil
	}

	batch := &pgx.Batch{}
	for _, s := range signals {
		batch.Queue(insertQuery,
			s.ID,
			s.Strategy,
			s.Symbol,
			string(s.Side),
			s.Quantity,
			s.ReferencePrice,
			s.Reason,
			s.Timestamp,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	inserted, err := scanInserted(results, signals)
	if closeErr := results.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	r.logger.InfoContext(ctx, "Inserted signals", logger.Field{
		Key:   "inserted",
		Value: len(inserted),
	}, logger.Field{
		Key:   "duplicates",
		Value: len(signals) - len(inserted),
	})

	return inserted, nil
}

func scanInserted(results pgx.BatchResults, signals []marketv1.Signal) ([]marketv1.Signal, error) {
	inserted := make([]marketv1.Signal, 0, len(signals))
	for _, s := range signals {
		var id uuid.UUID
		err := results.QueryRow().Scan(&id)
		if stderrors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, s)
	}
	return inserted, nil
}
