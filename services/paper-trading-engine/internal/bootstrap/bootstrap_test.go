package bootstrap

import (
	"testing"

	"github.com/golang/mock/gomock"
	pkgErrors "github.com/muhammadchandra19/paper-trading/pkg/errors"
	mockKafka "github.com/muhammadchandra19/paper-trading/pkg/kafka/mock"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	mockPg "github.com/muhammadchandra19/paper-trading/pkg/postgresql/mock"
	mockLock "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/lock/v1/mock"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/redis/lock"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/usecase/trading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap_Init(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(ctrl *gomock.Controller, cfg *BoostrapConfig)
		assertFn func(t *testing.T, b Bootstrap, err error)
	}{
		{
			name:   "defaults without redis or kafka",
			mutate: func(ctrl *gomock.Controller, cfg *BoostrapConfig) {},
			assertFn: func(t *testing.T, b Bootstrap, err error) {
				require.NoError(t, err)
				assert.Equal(t, "last_trade", b.Usecase.FillModel.Name())
				assert.IsType(t, lock.Noop{}, b.Locker)
				assert.Nil(t, b.Consumer.SignalListener)
				assert.NotNil(t, b.Usecase.TradingUsecase)
			},
		},
		{
			name: "slippage with locker and listener",
			mutate: func(ctrl *gomock.Controller, cfg *BoostrapConfig) {
				cfg.Fill = FillOptions{Model: "slippage", SlippageBps: 25}
				cfg.Locker = mockLock.NewMockLocker(ctrl)
				cfg.SignalReader = mockKafka.NewMockMessageReader(ctrl)
			},
			assertFn: func(t *testing.T, b Bootstrap, err error) {
				require.NoError(t, err)
				assert.Equal(t, "slippage", b.Usecase.FillModel.Name())
				assert.IsType(t, &mockLock.MockLocker{}, b.Locker)
				assert.NotNil(t, b.Consumer.SignalListener)
			},
		},
		{
			name: "unknown fill model",
			mutate: func(ctrl *gomock.Controller, cfg *BoostrapConfig) {
				cfg.Fill = FillOptions{Model: "vwap"}
			},
			assertFn: func(t *testing.T, b Bootstrap, err error) {
				assert.True(t, pkgErrors.ErrorCodeEquals(err, string(pkgErrors.GeneralBadRequestError)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cfg := BoostrapConfig{
				DB:      mockPg.NewMockPostgreSQLClient(ctrl),
				Logger:  logger.NewNop(),
				Retry:   postgresql.DefaultRetryConfig(),
				Trading: trading.Options{PortfolioID: "default", StartingCash: 1000},
			}
			tc.mutate(ctrl, &cfg)

			b := &Bootstrap{}
			got, err := b.Init(cfg)
			tc.assertFn(t, got, err)
		})
	}
}
