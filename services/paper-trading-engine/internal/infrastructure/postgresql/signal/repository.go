package signal

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
)

const columns = `id, strategy, symbol, side, quantity, reference_price, reason, status, COALESCE(reject_reason, ''), timestamp, created_at, processed_at`

const (
	listPendingQuery = `SELECT id FROM signals WHERE status = 'PENDING' ORDER BY timestamp, created_at, id LIMIT $1`

	getForUpdateQuery = `SELECT ` + columns + ` FROM signals WHERE id = $1 FOR UPDATE`

	markProcessedQuery = `UPDATE signals SET status = $2, reject_reason = NULLIF($3, ''), processed_at = $4 ` +
		`WHERE id = $1 AND status = 'PENDING'`
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

var _ SignalRepository = (*repository)(nil)

func (r *repository) ListPending(ctx context.Context, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, listPendingQuery, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, errors.TracerFromError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return ids, nil
}

func (r *repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*signalv1.Signal, error) {
	s, err := scan(r.db.QueryRow(ctx, getForUpdateQuery, id))
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NewErrorDetails("signal not found", string(errors.ErrSignalNotFound), "id")
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return s, nil
}

func (r *repository) MarkProcessed(ctx context.Context, id uuid.UUID, status signalv1.Status, reason string, at time.Time) error {
	commandTag, err := r.db.Exec(ctx, markProcessedQuery, id, string(status), reason, at)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if commandTag.RowsAffected() == 0 {
		return errors.NewErrorDetails("signal already processed", string(errors.ErrSignalAlreadyProcessed), "status")
	}

	r.logger.DebugContext(ctx, "Marked signal processed",
		logger.Field{Key: "signal_id", Value: id.String()},
		logger.Field{Key: "status", Value: string(status)},
	)
	return nil
}

func (r *repository) List(ctx context.Context, filter signalv1.ListFilter) ([]signalv1.Signal, error) {
	qb := postgresql.NewQueryBuilder().
		Select(columns).
		From("signals")
	if filter.Status != "" {
		qb.Where("status = ?", string(filter.Status))
	}
	if filter.Strategy != "" {
		qb.Where("strategy = ?", filter.Strategy)
	}
	if filter.Symbol != "" {
		qb.Where("symbol = ?", filter.Symbol)
	}
	qb.OrderBy("timestamp", true).OrderBy("id")
	if filter.Limit > 0 {
		qb.Limit(filter.Limit)
	}

	query, args := qb.Build()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	var signals []signalv1.Signal
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		signals = append(signals, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return signals, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*signalv1.Signal, error) {
	var (
		s      signalv1.Signal
		side   string
		status string
	)
	if err := row.Scan(
		&s.ID,
		&s.Strategy,
		&s.Symbol,
		&side,
		&s.Quantity,
		&s.ReferencePrice,
		&s.Reason,
		&status,
		&s.RejectReason,
		&s.Timestamp,
		&s.CreatedAt,
		&s.ProcessedAt,
	); err != nil {
		return nil, err
	}
	s.Side = portfoliov1.Side(side)
	s.Status = signalv1.Status(status)
	return &s, nil
}
