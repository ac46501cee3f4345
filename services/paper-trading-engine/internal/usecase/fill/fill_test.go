package fill

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	pkgErrors "github.com/muhammadchandra19/paper-trading/pkg/errors"
	mockFill "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/fill/v1/mock"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name    string
		model   string
		bps     float64
		want    string
		wantErr bool
	}{
		{name: "default", model: "", want: ModelLastTrade},
		{name: "last trade", model: ModelLastTrade, want: ModelLastTrade},
		{name: "slippage", model: ModelSlippage, bps: 25, want: ModelSlippage},
		{name: "negative slippage", model: ModelSlippage, bps: -1, wantErr: true},
		{name: "full slippage", model: ModelSlippage, bps: 10_000, wantErr: true},
		{name: "unknown", model: "vwap", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.model, tc.bps, nil)
			if tc.wantErr {
				assert.True(t, pkgErrors.ErrorCodeEquals(err, string(pkgErrors.GeneralBadRequestError)))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.Name())
		})
	}
}

func TestModel_Price(t *testing.T) {
	ctx := context.Background()
	buy := signalv1.Signal{Symbol: "BTC-USD", Side: portfoliov1.SideBuy, Quantity: 1, ReferencePrice: 95}
	sell := buy
	sell.Side = portfoliov1.SideSell
	leg := signalv1.Signal{Symbol: "0xabc:YES", Side: portfoliov1.SideBuy, Quantity: 1}

	testCases := []struct {
		name     string
		model    string
		bps      float64
		signal   signalv1.Signal
		mockFn   func(m *mockFill.MockPriceSource)
		assertFn func(t *testing.T, price float64, err error)
	}{
		{
			name:   "last trade uses market price",
			model:  ModelLastTrade,
			signal: buy,
			mockFn: func(m *mockFill.MockPriceSource) {
				m.EXPECT().LastPrice(ctx, "BTC-USD").Return(100.0, true, nil)
			},
			assertFn: func(t *testing.T, price float64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 100.0, price)
			},
		},
		{
			name:   "last trade falls back to reference price",
			model:  ModelLastTrade,
			signal: buy,
			mockFn: func(m *mockFill.MockPriceSource) {
				m.EXPECT().LastPrice(ctx, "BTC-USD").Return(0.0, false, nil)
			},
			assertFn: func(t *testing.T, price float64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 95.0, price)
			},
		},
		{
			name:   "no price at all",
			model:  ModelLastTrade,
			signal: leg,
			mockFn: func(m *mockFill.MockPriceSource) {
				m.EXPECT().LastPrice(ctx, "0xabc:YES").Return(0.0, false, nil)
			},
			assertFn: func(t *testing.T, price float64, err error) {
				assert.True(t, pkgErrors.ErrorCodeEquals(err, string(pkgErrors.ErrNoMarketPrice)))
				assert.True(t, pkgErrors.IsBusinessRejection(err))
			},
		},
		{
			name:   "source error",
			model:  ModelLastTrade,
			signal: buy,
			mockFn: func(m *mockFill.MockPriceSource) {
				m.EXPECT().LastPrice(ctx, "BTC-USD").Return(0.0, false, errors.New("db down"))
			},
			assertFn: func(t *testing.T, price float64, err error) {
				assert.EqualError(t, err, "db down")
			},
		},
		{
			name:   "slippage raises buys",
			model:  ModelSlippage,
			bps:    50,
			signal: buy,
			mockFn: func(m *mockFill.MockPriceSource) {
				m.EXPECT().LastPrice(ctx, "BTC-USD").Return(100.0, true, nil)
			},
			assertFn: func(t *testing.T, price float64, err error) {
				assert.NoError(t, err)
				assert.InDelta(t, 100.5, price, 1e-9)
			},
		},
		{
			name:   "slippage lowers sells",
			model:  ModelSlippage,
			bps:    50,
			signal: sell,
			mockFn: func(m *mockFill.MockPriceSource) {
				m.EXPECT().LastPrice(ctx, "BTC-USD").Return(100.0, true, nil)
			},
			assertFn: func(t *testing.T, price float64, err error) {
				assert.NoError(t, err)
				assert.InDelta(t, 99.5, price, 1e-9)
			},
		},
		{
			name:   "slippage clamps legs to one",
			model:  ModelSlippage,
			bps:    500,
			signal: leg,
			mockFn: func(m *mockFill.MockPriceSource) {
				m.EXPECT().LastPrice(ctx, "0xabc:YES").Return(0.99, true, nil)
			},
			assertFn: func(t *testing.T, price float64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1.0, price)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := mockFill.NewMockPriceSource(ctrl)
			tc.mockFn(source)

			m, err := New(tc.model, tc.bps, source)
			require.NoError(t, err)

			price, err := m.Price(ctx, tc.signal)
			tc.assertFn(t, price, err)
		})
	}
}
