package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/util"
	evaluatorDomain "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/evaluator"
	mockEvaluator "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/evaluator/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsumer struct {
	started    chan struct{}
	subscribed chan struct{}
	stopped    bool
}

func newFakeConsumer() *fakeConsumer {
	return &fakeConsumer{started: make(chan struct{}), subscribed: make(chan struct{})}
}

func (f *fakeConsumer) Start(ctx context.Context) {
	close(f.started)
	<-ctx.Done()
}

func (f *fakeConsumer) Subscribe(ctx context.Context) {
	close(f.subscribed)
	<-ctx.Done()
}

func (f *fakeConsumer) Stop() error {
	f.stopped = true
	return nil
}

func TestEngine_RunOnce(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	testCases := []struct {
		name     string
		mockFn   func(m *mockEvaluator.MockUsecase)
		assertFn func(t *testing.T, result *evaluatorDomain.CycleResult, err error)
	}{
		{
			name: "evaluates as of now in UTC with cycle context",
			mockFn: func(m *mockEvaluator.MockUsecase) {
				m.EXPECT().RunCycle(gomock.Any(), now.UTC()).DoAndReturn(func(ctx context.Context, asOf time.Time) (*evaluatorDomain.CycleResult, error) {
					assert.NotEmpty(t, util.GetRequestID(ctx))
					assert.NotEmpty(t, util.GetCycleID(ctx))
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline)
					return &evaluatorDomain.CycleResult{AsOf: asOf, StrategiesEvaluated: 2, SignalsEmitted: 1, SignalsInserted: 1}, nil
				})
			},
			assertFn: func(t *testing.T, result *evaluatorDomain.CycleResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.StrategiesEvaluated)
				assert.Equal(t, 1, result.SignalsInserted)
			},
		},
		{
			name: "returns evaluator error",
			mockFn: func(m *mockEvaluator.MockUsecase) {
				m.EXPECT().RunCycle(gomock.Any(), gomock.Any()).Return(&evaluatorDomain.CycleResult{StrategiesFailed: 1}, errors.New("db down"))
			},
			assertFn: func(t *testing.T, result *evaluatorDomain.CycleResult, err error) {
				assert.EqualError(t, err, "db down")
				assert.Equal(t, 1, result.StrategiesFailed)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mockEvaluator.NewMockUsecase(ctrl)
			tc.mockFn(m)

			e := NewEngine(m, nil, logger.NewNop(), DefaultEngineOptions())
			e.now = func() time.Time { return now }

			result, err := e.RunOnce(context.Background())
			tc.assertFn(t, result, err)
		})
	}
}

func TestEngine_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ran := make(chan struct{}, 10)
	m := mockEvaluator.NewMockUsecase(ctrl)
	m.EXPECT().RunCycle(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, asOf time.Time) (*evaluatorDomain.CycleResult, error) {
		select {
		case ran <- struct{}{}:
		default:
		}
		return &evaluatorDomain.CycleResult{AsOf: asOf}, nil
	}).MinTimes(1)

	consumer := newFakeConsumer()
	e := NewEngine(m, consumer, logger.NewNop(), &Options{Interval: 10 * time.Millisecond})
	require.NoError(t, e.Start(context.Background()))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("no cycle ran")
	}
	<-consumer.started
	<-consumer.subscribed

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Stop(ctx))
	assert.True(t, consumer.stopped)
}
