package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/paper-trading/pkg/arbitrage"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	mockPg "github.com/muhammadchandra19/paper-trading/pkg/postgresql/mock"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	mockCache "github.com/muhammadchandra19/paper-trading/pkg/pricecache/mock"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
	scannerDomain "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/scanner"
	mockClient "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/infrastructure/polymarket/mock"
	mockMarket "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/infrastructure/postgresql/market/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testRetry = postgresql.RetryConfig{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxRetries: 2}
)

func ptr(v float64) *float64 { return &v }

type mocks struct {
	client *mockClient.MockClient
	market *mockMarket.MockMarketRepository
	cache  *mockCache.MockCache
	tx     *mockPg.MockTransaction
}

func expectBegin(tx *mockPg.MockTransaction, times int) {
	tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) {
		return ctx, nil
	}).Times(times)
}

func TestScanner_Scan(t *testing.T) {
	markets := []marketv1.Market{
		{ID: "m1", Question: "Rain?", Active: true, YesPrice: ptr(0.40), NoPrice: ptr(0.50), ScannedAt: now},
		{ID: "m2", Question: "Snow?", Active: true, YesPrice: ptr(0.30), NoPrice: ptr(0.70), ScannedAt: now},
		{ID: "m3", Question: "Hail?", Active: true, NoPrice: ptr(0.2), ScannedAt: now},
	}

	testCases := []struct {
		name     string
		mockFn   func(m mocks)
		assertFn func(t *testing.T, result *scannerDomain.ScanResult, err error)
	}{
		{
			name: "stores the scan, caches legs and reports opportunities",
			mockFn: func(m mocks) {
				m.client.EXPECT().ActiveMarkets(gomock.Any()).Return(markets, nil)
				expectBegin(m.tx, 1)
				m.market.EXPECT().UpsertMarkets(gomock.Any(), markets).Return(int64(3), nil)
				m.market.EXPECT().InsertSnapshots(gomock.Any(), markets).Return(int64(3), nil)
				m.market.EXPECT().InsertTicks(gomock.Any(), markets).Return(int64(5), nil)
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

				for _, q := range []pricecache.Quote{
					{Symbol: "m1:YES", Price: 0.40, Timestamp: now},
					{Symbol: "m1:NO", Price: 0.50, Timestamp: now},
					{Symbol: "m2:YES", Price: 0.30, Timestamp: now},
					{Symbol: "m2:NO", Price: 0.70, Timestamp: now},
				} {
					m.cache.EXPECT().Put(gomock.Any(), q).Return(nil)
				}
				// a cache failure does not fail the scan
				m.cache.EXPECT().Put(gomock.Any(), pricecache.Quote{Symbol: "m3:NO", Price: 0.2, Timestamp: now}).
					Return(errors.New("redis down"))
			},
			assertFn: func(t *testing.T, result *scannerDomain.ScanResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, now, result.ScannedAt)
				assert.Equal(t, 3, result.Markets)
				assert.Equal(t, int64(5), result.Ticks)
				require.Len(t, result.Opportunities, 1)
				assert.Equal(t, "m1", result.Opportunities[0].MarketID)
				assert.Equal(t, "Rain?", result.Opportunities[0].Question)
				assert.Equal(t, arbitrage.Underpriced, result.Opportunities[0].Kind)
			},
		},
		{
			name: "empty scan touches nothing",
			mockFn: func(m mocks) {
				m.client.EXPECT().ActiveMarkets(gomock.Any()).Return(nil, nil)
			},
			assertFn: func(t *testing.T, result *scannerDomain.ScanResult, err error) {
				require.NoError(t, err)
				assert.Zero(t, result.Markets)
				assert.Empty(t, result.Opportunities)
			},
		},
		{
			name: "fetch failure",
			mockFn: func(m mocks) {
				m.client.EXPECT().ActiveMarkets(gomock.Any()).Return(nil, errors.New("polymarket returned 500"))
			},
			assertFn: func(t *testing.T, result *scannerDomain.ScanResult, err error) {
				assert.EqualError(t, err, "polymarket returned 500")
				assert.Zero(t, result.Markets)
			},
		},
		{
			name: "transient failure replays the transaction",
			mockFn: func(m mocks) {
				m.client.EXPECT().ActiveMarkets(gomock.Any()).Return(markets[:1], nil)
				expectBegin(m.tx, 2)
				gomock.InOrder(
					m.market.EXPECT().UpsertMarkets(gomock.Any(), gomock.Any()).Return(int64(1), nil),
					m.market.EXPECT().InsertSnapshots(gomock.Any(), gomock.Any()).Return(int64(0), &pgconn.PgError{Code: "40P01"}),
					m.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
					m.market.EXPECT().UpsertMarkets(gomock.Any(), gomock.Any()).Return(int64(1), nil),
					m.market.EXPECT().InsertSnapshots(gomock.Any(), gomock.Any()).Return(int64(1), nil),
					m.market.EXPECT().InsertTicks(gomock.Any(), gomock.Any()).Return(int64(2), nil),
					m.tx.EXPECT().Commit(gomock.Any()).Return(nil),
				)
				m.cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
			assertFn: func(t *testing.T, result *scannerDomain.ScanResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(2), result.Ticks)
			},
		},
		{
			name: "permanent store failure skips the cache",
			mockFn: func(m mocks) {
				m.client.EXPECT().ActiveMarkets(gomock.Any()).Return(markets, nil)
				expectBegin(m.tx, 1)
				m.market.EXPECT().UpsertMarkets(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("constraint"))
				m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, result *scannerDomain.ScanResult, err error) {
				assert.EqualError(t, err, "constraint")
				assert.Equal(t, 3, result.Markets)
				assert.Zero(t, result.Ticks)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mocks{
				client: mockClient.NewMockClient(ctrl),
				market: mockMarket.NewMockMarketRepository(ctrl),
				cache:  mockCache.NewMockCache(ctrl),
				tx:     mockPg.NewMockTransaction(ctrl),
			}
			tc.mockFn(m)

			u := NewUsecase(m.client, m.market, m.cache, m.tx, testRetry, Options{}, logger.NewNop())
			u.now = func() time.Time { return now }

			result, err := u.Scan(context.Background())
			tc.assertFn(t, result, err)
		})
	}
}

func TestScanner_ScanWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mockClient.NewMockClient(ctrl)
	repo := mockMarket.NewMockMarketRepository(ctrl)
	tx := mockPg.NewMockTransaction(ctrl)

	markets := []marketv1.Market{{ID: "m1", YesPrice: ptr(0.6), NoPrice: ptr(0.6), ScannedAt: now}}
	client.EXPECT().ActiveMarkets(gomock.Any()).Return(markets, nil)
	expectBegin(tx, 1)
	repo.EXPECT().UpsertMarkets(gomock.Any(), markets).Return(int64(1), nil)
	repo.EXPECT().InsertSnapshots(gomock.Any(), markets).Return(int64(1), nil)
	repo.EXPECT().InsertTicks(gomock.Any(), markets).Return(int64(2), nil)
	tx.EXPECT().Commit(gomock.Any()).Return(nil)

	u := NewUsecase(client, repo, nil, tx, testRetry, Options{Tolerance: 0.5}, logger.NewNop())
	result, err := u.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Opportunities)
}
