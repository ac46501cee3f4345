package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	mockLogger "github.com/muhammadchandra19/paper-trading/pkg/logger/mock"
	mockPg "github.com/muhammadchandra19/paper-trading/pkg/postgresql/mock"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestMarket_UpsertMarkets(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := now.Add(24 * time.Hour)

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface)
		testData []marketv1.Market
		assertFn func(t *testing.T, n int64, err error)
	}{
		{
			name: "success keeps the last duplicate",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface) {
				mockpg.EXPECT().
					Exec(ctx, upsertMarketsQuery,
						[]string{"m1", "m2"},
						[]string{"Rain? (edited)", "Snow?"},
						[]string{"0x1", ""},
						[]string{"rain", ""},
						[]*time.Time{&end, nil},
						[]bool{true, false},
						[]*float64{ptr(10), nil},
						[]time.Time{now, now},
					).Return(pgconn.NewCommandTag("INSERT 0 2"), nil)

				mockLogger.EXPECT().
					Debug("Upserted markets", logger.Field{
						Key:   "commandTag",
						Value: "INSERT 0 2",
					})
			},
			testData: []marketv1.Market{
				{ID: "m1", Question: "Rain?", Active: true, ScannedAt: now},
				{ID: "m2", Question: "Snow?", ScannedAt: now},
				{ID: "m1", Question: "Rain? (edited)", ConditionID: "0x1", Slug: "rain", EndDate: &end, Active: true, Liquidity: ptr(10), ScannedAt: now},
			},
			assertFn: func(t *testing.T, n int64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(2), n)
			},
		},
		{
			name:     "empty batch",
			mockFn:   func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface) {},
			testData: nil,
			assertFn: func(t *testing.T, n int64, err error) {
				assert.NoError(t, err)
				assert.Zero(t, n)
			},
		},
		{
			name: "error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface) {
				mockpg.EXPECT().
					Exec(ctx, upsertMarketsQuery, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
						gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			testData: []marketv1.Market{{ID: "m1", ScannedAt: now}},
			assertFn: func(t *testing.T, n int64, err error) {
				assert.Error(t, err)
				assert.Zero(t, n)
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

			tc.mockFn(pg, log)

			n, err := repo.UpsertMarkets(ctx, tc.testData)
			tc.assertFn(t, n, err)
		})
	}
}

func TestMarket_InsertSnapshots(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mockPg.NewMockPostgreSQLClient(ctrl)
	pg.EXPECT().
		Exec(ctx, insertSnapshotsQuery,
			[]string{"m1", "m2"},
			[]*float64{ptr(0.4), nil},
			[]*float64{ptr(0.5), ptr(0.9)},
			[]*float64{nil, ptr(3)},
			[]time.Time{now, now},
		).Return(pgconn.NewCommandTag("INSERT 0 2"), nil)

	n, err := NewRepository(pg, logger.NewNop()).InsertSnapshots(ctx, []marketv1.Market{
		{ID: "m1", YesPrice: ptr(0.4), NoPrice: ptr(0.5), ScannedAt: now},
		{ID: "m2", NoPrice: ptr(0.9), Liquidity: ptr(3), ScannedAt: now},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMarket_InsertTicks(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient)
		testData []marketv1.Market
		assertFn func(t *testing.T, n int64, err error)
	}{
		{
			name: "stores priced legs only",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient) {
				mockpg.EXPECT().
					Exec(ctx, insertTicksQuery,
						[]string{"m1:YES", "m1:NO", "m2:NO"},
						[]float64{0.4, 0.5, 0.9},
						[]float64{0, 0, 0},
						[]string{"polymarket", "polymarket", "polymarket"},
						[]time.Time{now, now, now},
					).Return(pgconn.NewCommandTag("INSERT 0 3"), nil)
			},
			testData: []marketv1.Market{
				{ID: "m1", YesPrice: ptr(0.4), NoPrice: ptr(0.5), ScannedAt: now},
				{ID: "m2", NoPrice: ptr(0.9), ScannedAt: now},
				{ID: "m3", ScannedAt: now},
			},
			assertFn: func(t *testing.T, n int64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(3), n)
			},
		},
		{
			name:     "no priced legs",
			mockFn:   func(mockpg *mockPg.MockPostgreSQLClient) {},
			testData: []marketv1.Market{{ID: "m3", ScannedAt: now}},
			assertFn: func(t *testing.T, n int64, err error) {
				assert.NoError(t, err)
				assert.Zero(t, n)
			},
		},
		{
			name: "error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient) {
				mockpg.EXPECT().
					Exec(ctx, insertTicksQuery, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			testData: []marketv1.Market{{ID: "m1", YesPrice: ptr(0.4), ScannedAt: now}},
			assertFn: func(t *testing.T, n int64, err error) {
				assert.Error(t, err)
				assert.Zero(t, n)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			repo := NewRepository(pg, logger.NewNop())

			tc.mockFn(pg)

			n, err := repo.InsertTicks(ctx, tc.testData)
			tc.assertFn(t, n, err)
		})
	}
}
