package fill

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pkgErrors "github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	mockPg "github.com/muhammadchandra19/paper-trading/pkg/postgresql/mock"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	"github.com/stretchr/testify/assert"
)

func TestFill_Insert(t *testing.T) {
	ctx := context.Background()
	f := portfoliov1.Fill{
		ID:          "01J0000000000000000000000A",
		SignalID:    uuid.New(),
		PortfolioID: "default",
		Symbol:      "BTC-USD",
		Side:        portfoliov1.SideBuy,
		Quantity:    1,
		Price:       100,
		Notional:    100,
		FillModel:   "last_trade",
		FilledAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name     string
		err      error
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "signal already filled",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "fills_signal_id_key"}),
			assertFn: func(t *testing.T, err error) {
				assert.True(t, pkgErrors.ErrorCodeEquals(err, string(pkgErrors.ErrSignalAlreadyProcessed)))
			},
		},
		{
			name: "other unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "fills_pkey"},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.False(t, pkgErrors.ErrorCodeEquals(err, string(pkgErrors.ErrSignalAlreadyProcessed)))
			},
		},
		{
			name: "error",
			err:  errors.New("error"),
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			pg.EXPECT().Exec(ctx, insertQuery,
				f.ID, f.SignalID, f.PortfolioID, f.Symbol, "buy", f.Quantity, f.Price, f.Notional, f.RealizedPnL, f.FillModel, f.FilledAt,
			).Return(pgconn.NewCommandTag("INSERT 0 1"), tc.err)

			err := NewRepository(pg, logger.NewNop()).Insert(ctx, f)
			tc.assertFn(t, err)
		})
	}
}
