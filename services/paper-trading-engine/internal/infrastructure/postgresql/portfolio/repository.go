package portfolio

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
)

const (
	createQuery = `INSERT INTO portfolios (id, cash, starting_cash, realized_pnl, created_at, updated_at) ` +
		`VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`

	getQuery          = `SELECT id, cash, starting_cash, realized_pnl, created_at, updated_at FROM portfolios WHERE id = $1`
	getForUpdateQuery = getQuery + ` FOR UPDATE`

	listPositionsQuery = `SELECT symbol, quantity, avg_cost, updated_at FROM positions WHERE portfolio_id = $1 ORDER BY symbol`

	updateBalancesQuery = `UPDATE portfolios SET cash = $2, realized_pnl = $3, updated_at = $4 WHERE id = $1`

	upsertPositionQuery = `INSERT INTO positions (portfolio_id, symbol, quantity, avg_cost, updated_at) ` +
		`VALUES ($1, $2, $3, $4, $5) ` +
		`ON CONFLICT (portfolio_id, symbol) DO UPDATE SET quantity = EXCLUDED.quantity, avg_cost = EXCLUDED.avg_cost, updated_at = EXCLUDED.updated_at`

	deletePositionQuery = `DELETE FROM positions WHERE portfolio_id = $1 AND symbol = $2`

	insertSnapshotQuery = `INSERT INTO portfolio_snapshots ` +
		`(portfolio_id, cash, market_value, equity, realized_pnl, unrealized_pnl, taken_at) ` +
		`VALUES ($1, $2, $3, $4, $5, $6, $7)`
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

var _ PortfolioRepository = (*repository)(nil)

func (r *repository) Create(ctx context.Context, p portfoliov1.Portfolio) (bool, error) {
	commandTag, err := r.db.Exec(ctx, createQuery, p.ID, p.Cash, p.StartingCash, p.RealizedPnL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return false, errors.TracerFromError(err)
	}
	return commandTag.RowsAffected() == 1, nil
}

func (r *repository) Get(ctx context.Context, id string) (*portfoliov1.Portfolio, error) {
	return r.get(ctx, getQuery, id)
}

func (r *repository) GetForUpdate(ctx context.Context, id string) (*portfoliov1.Portfolio, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

func (r *repository) get(ctx context.Context, query, id string) (*portfoliov1.Portfolio, error) {
	p := portfoliov1.Portfolio{Positions: map[string]portfoliov1.Position{}}
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Cash, &p.StartingCash, &p.RealizedPnL, &p.CreatedAt, &p.UpdatedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NewErrorDetails("portfolio not found", string(errors.ErrPortfolioNotFound), "id")
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	rows, err := r.db.Query(ctx, listPositionsQuery, id)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var pos portfoliov1.Position
		if err := rows.Scan(&pos.Symbol, &pos.Quantity, &pos.AvgCost, &pos.UpdatedAt); err != nil {
			return nil, errors.TracerFromError(err)
		}
		p.Positions[pos.Symbol] = pos
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return &p, nil
}

func (r *repository) UpdateBalances(ctx context.Context, id string, cash, realizedPnL float64, at time.Time) error {
	commandTag, err := r.db.Exec(ctx, updateBalancesQuery, id, cash, realizedPnL, at)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if commandTag.RowsAffected() == 0 {
		return errors.NewErrorDetails("portfolio not found", string(errors.ErrPortfolioNotFound), "id")
	}
	return nil
}

func (r *repository) UpsertPosition(ctx context.Context, id string, pos portfoliov1.Position) error {
	if _, err := r.db.Exec(ctx, upsertPositionQuery, id, pos.Symbol, pos.Quantity, pos.AvgCost, pos.UpdatedAt); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

func (r *repository) DeletePosition(ctx context.Context, id, symbol string) error {
	if _, err := r.db.Exec(ctx, deletePositionQuery, id, symbol); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

func (r *repository) InsertSnapshot(ctx context.Context, s portfoliov1.Snapshot) error {
	_, err := r.db.Exec(ctx, insertSnapshotQuery,
		s.PortfolioID,
		s.Cash,
		s.MarketValue,
		s.Equity,
		s.RealizedPnL,
		s.UnrealizedPnL,
		s.TakenAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.DebugContext(ctx, "Recorded portfolio snapshot",
		logger.Field{Key: "portfolio_id", Value: s.PortfolioID},
		logger.Field{Key: "equity", Value: s.Equity},
	)
	return nil
}
