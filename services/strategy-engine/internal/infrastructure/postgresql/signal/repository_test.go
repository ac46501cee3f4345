package signal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	mockLogger "github.com/muhammadchandra19/paper-trading/pkg/logger/mock"
	mockPg "github.com/muhammadchandra19/paper-trading/pkg/postgresql/mock"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_Insert(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := marketv1.NewSignal("momentum", "BTC-USD", marketv1.SideBuy, 1, 100, "up", ts)
	second := marketv1.NewSignal("momentum", "ETH-USD", marketv1.SideSell, 2, 10, "down", ts)

	args := func(s marketv1.Signal) []any {
		return []any{s.ID, s.Strategy, s.Symbol, string(s.Side), s.Quantity, s.ReferencePrice, s.Reason, s.Timestamp}
	}

	expectBatch := func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, results *mockPg.BatchResults) {
		mockpg.EXPECT().SendBatch(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, b *pgx.Batch) pgx.BatchResults {
			require.Equal(t, 2, b.Len())
			for i, s := range []marketv1.Signal{first, second} {
				assert.Equal(t, insertQuery, b.QueuedQueries[i].SQL)
				assert.Equal(t, args(s), b.QueuedQueries[i].Arguments)
			}
			return results
		})
	}

	testCases := []struct {
		name     string
		results  *mockPg.BatchResults
		mockFn   func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, results *mockPg.BatchResults)
		assertFn func(t *testing.T, inserted []marketv1.Signal, err error)
	}{
		{
			name:    "success",
			results: mockPg.NewBatchResults(mockPg.NewRow(first.ID), mockPg.NewRow(second.ID)),
			mockFn: func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, results *mockPg.BatchResults) {
				expectBatch(t, mockpg, results)
				mockLogger.EXPECT().InfoContext(ctx, "Inserted signals",
					logger.Field{Key: "inserted", Value: 2},
					logger.Field{Key: "duplicates", Value: 0},
				)
			},
			assertFn: func(t *testing.T, inserted []marketv1.Signal, err error) {
				assert.NoError(t, err)
				assert.Equal(t, []marketv1.Signal{first, second}, inserted)
			},
		},
		{
			name:    "duplicate skipped",
			results: mockPg.NewBatchResults(mockPg.NewErrRow(pgx.ErrNoRows), mockPg.NewRow(second.ID)),
			mockFn: func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, results *mockPg.BatchResults) {
				expectBatch(t, mockpg, results)
				mockLogger.EXPECT().InfoContext(ctx, "Inserted signals",
					logger.Field{Key: "inserted", Value: 1},
					logger.Field{Key: "duplicates", Value: 1},
				)
			},
			assertFn: func(t *testing.T, inserted []marketv1.Signal, err error) {
				assert.NoError(t, err)
				assert.Equal(t, []marketv1.Signal{second}, inserted)
			},
		},
		{
			name:    "error",
			results: mockPg.NewBatchResults(mockPg.NewErrRow(errors.New("error"))),
			mockFn: func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, results *mockPg.BatchResults) {
				expectBatch(t, mockpg, results)
			},
			assertFn: func(t *testing.T, inserted []marketv1.Signal, err error) {
				assert.Error(t, err)
				assert.Nil(t, inserted)
			},
		},
		{
			name: "close error",
			results: mockPg.NewBatchResults(mockPg.NewRow(first.ID), mockPg.NewRow(second.ID)).
				WithCloseError(errors.New("conn closed")),
			mockFn: func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, results *mockPg.BatchResults) {
				expectBatch(t, mockpg, results)
			},
			assertFn: func(t *testing.T, inserted []marketv1.Signal, err error) {
				assert.Error(t, err)
				assert.Nil(t, inserted)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			repo := NewRepository(pg, log)

			tc.mockFn(t, pg, log, tc.results)

			inserted, err := repo.Insert(ctx, []marketv1.Signal{first, second})
			tc.assertFn(t, inserted, err)
			assert.True(t, tc.results.Closed())
		})
	}
}

func TestSignal_InsertEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewRepository(mockPg.NewMockPostgreSQLClient(ctrl), logger.NewNop())
	inserted, err := repo.Insert(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, inserted)
}
