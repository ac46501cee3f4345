package fill

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
)

const (
	uniqueViolation  = "23505"
	signalConstraint = "fills_signal_id_key"
)

const (
	insertQuery = `INSERT INTO fills ` +
		`(id, signal_id, portfolio_id, symbol, side, quantity, price, notional, realized_pnl, fill_model, filled_at) ` +
		`VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	listRecentQuery = `SELECT id, signal_id, portfolio_id, symbol, side, quantity, price, notional, realized_pnl, fill_model, filled_at ` +
		`FROM fills WHERE portfolio_id = $1 ORDER BY filled_at DESC, id DESC LIMIT $2`
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

var _ FillRepository = (*repository)(nil)

func (r *repository) Insert(ctx context.Context, f portfoliov1.Fill) error {
	_, err := r.db.Exec(ctx, insertQuery,
		f.ID,
		f.SignalID,
		f.PortfolioID,
		f.Symbol,
		string(f.Side),
		f.Quantity,
		f.Price,
		f.Notional,
		f.RealizedPnL,
		f.FillModel,
		f.FilledAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == signalConstraint {
			return errors.NewErrorDetails("signal already filled", string(errors.ErrSignalAlreadyProcessed), "signal_id")
		}
		return errors.TracerFromError(err)
	}
	return nil
}

func (r *repository) ListRecent(ctx context.Context, portfolioID string, limit int) ([]portfoliov1.Fill, error) {
	rows, err := r.db.Query(ctx, listRecentQuery, portfolioID, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	var fills []portfoliov1.Fill
	for rows.Next() {
		var (
			f    portfoliov1.Fill
			side string
		)
		if err := rows.Scan(
			&f.ID,
			&f.SignalID,
			&f.PortfolioID,
			&f.Symbol,
			&side,
			&f.Quantity,
			&f.Price,
			&f.Notional,
			&f.RealizedPnL,
			&f.FillModel,
			&f.FilledAt,
		); err != nil {
			return nil, errors.TracerFromError(err)
		}
		f.Side = portfoliov1.Side(side)
		fills = append(fills, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return fills, nil
}
