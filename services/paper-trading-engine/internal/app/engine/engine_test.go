package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	tradingDomain "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/trading"
	mockTrading "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/trading/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListener struct {
	started chan struct{}
	nudges  chan struct{}
	stopped bool
}

func newFakeListener() *fakeListener {
	return &fakeListener{started: make(chan struct{}), nudges: make(chan struct{}, 1)}
}

func (f *fakeListener) Start(ctx context.Context) {
	close(f.started)
	<-ctx.Done()
}

func (f *fakeListener) Subscribe(ctx context.Context) { <-ctx.Done() }

func (f *fakeListener) Stop() error {
	f.stopped = true
	return nil
}

func (f *fakeListener) Nudges() <-chan struct{} { return f.nudges }

func TestEngine_RunOnce(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(m *mockTrading.MockUsecase)
		assertFn func(t *testing.T, result *tradingDomain.CycleResult, err error)
	}{
		{
			name: "processes with cycle context",
			mockFn: func(m *mockTrading.MockUsecase) {
				m.EXPECT().ProcessPending(gomock.Any()).DoAndReturn(func(ctx context.Context) (*tradingDomain.CycleResult, error) {
					assert.NotEmpty(t, util.GetRequestID(ctx))
					assert.NotEmpty(t, util.GetCycleID(ctx))
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline)
					return &tradingDomain.CycleResult{Processed: 2, Applied: 1, Rejected: 1, Valuation: &portfoliov1.Valuation{Cash: 10, Equity: 12}}, nil
				})
			},
			assertFn: func(t *testing.T, result *tradingDomain.CycleResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.Processed)
			},
		},
		{
			name: "locked cycle is not an error",
			mockFn: func(m *mockTrading.MockUsecase) {
				m.EXPECT().ProcessPending(gomock.Any()).Return(&tradingDomain.CycleResult{Locked: true}, nil)
			},
			assertFn: func(t *testing.T, result *tradingDomain.CycleResult, err error) {
				require.NoError(t, err)
				assert.True(t, result.Locked)
			},
		},
		{
			name: "returns usecase error",
			mockFn: func(m *mockTrading.MockUsecase) {
				m.EXPECT().ProcessPending(gomock.Any()).Return(&tradingDomain.CycleResult{Processed: 1}, errors.New("db down"))
			},
			assertFn: func(t *testing.T, result *tradingDomain.CycleResult, err error) {
				assert.EqualError(t, err, "db down")
				assert.Equal(t, 1, result.Processed)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mockTrading.NewMockUsecase(ctrl)
			tc.mockFn(m)

			e := NewEngine(m, nil, logger.NewNop(), DefaultEngineOptions())
			result, err := e.RunOnce(context.Background())
			tc.assertFn(t, result, err)
		})
	}
}

func TestEngine_NudgeRunsEarly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ran := make(chan struct{}, 10)
	m := mockTrading.NewMockUsecase(ctrl)
	m.EXPECT().ProcessPending(gomock.Any()).DoAndReturn(func(ctx context.Context) (*tradingDomain.CycleResult, error) {
		ran <- struct{}{}
		return &tradingDomain.CycleResult{}, nil
	}).MinTimes(2)

	listener := newFakeListener()
	e := NewEngine(m, listener, logger.NewNop(), &Options{Interval: time.Hour})
	require.NoError(t, e.Start(context.Background()))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("no initial cycle")
	}
	<-listener.started

	listener.nudges <- struct{}{}
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("nudge did not start a cycle")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Stop(ctx))
	assert.True(t, listener.stopped)
}

func TestEngine_StartStopWithoutListener(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ran := make(chan struct{}, 1)
	m := mockTrading.NewMockUsecase(ctrl)
	m.EXPECT().ProcessPending(gomock.Any()).DoAndReturn(func(ctx context.Context) (*tradingDomain.CycleResult, error) {
		select {
		case ran <- struct{}{}:
		default:
		}
		return &tradingDomain.CycleResult{}, nil
	}).MinTimes(1)

	e := NewEngine(m, nil, logger.NewNop(), &Options{Interval: 10 * time.Millisecond})
	require.NoError(t, e.Start(context.Background()))
	<-ran

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Stop(ctx))
}
