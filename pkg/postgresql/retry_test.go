package postgresql_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	mockPg "github.com/muhammadchandra19/paper-trading/pkg/postgresql/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() postgresql.RetryConfig {
	return postgresql.RetryConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxElapsedTime:  time.Second,
		MaxRetries:      3,
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: true},
		{name: "deadlock", err: fmt.Errorf("apply: %w", &pgconn.PgError{Code: "40P01"}), want: true},
		{name: "connection exception class", err: &pgconn.PgError{Code: "08006"}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "context canceled", err: context.Canceled, want: false},
		{name: "plain error", err: stderrors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgresql.IsTransient(tt.err))
		})
	}
}

func TestRetry(t *testing.T) {
	t.Run("retries transient errors until success", func(t *testing.T) {
		attempts := 0
		notified := 0
		err := postgresql.Retry(context.Background(), fastRetry(), func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		}, func(error, time.Duration) { notified++ })

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 2, notified)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		attempts := 0
		permanent := &pgconn.PgError{Code: "23505"}
		err := postgresql.Retry(context.Background(), fastRetry(), func(ctx context.Context) error {
			attempts++
			return permanent
		}, nil)

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		err := postgresql.Retry(context.Background(), fastRetry(), func(ctx context.Context) error {
			attempts++
			return &pgconn.PgError{Code: "40P01"}
		}, nil)

		assert.Error(t, err)
		assert.Equal(t, 4, attempts)
	})
}

func TestAtomicWithRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTx := mockPg.NewMockTransaction(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockTx.EXPECT().Begin(ctx).Return(ctx, nil),
		mockTx.EXPECT().Rollback(ctx).Return(nil),
		mockTx.EXPECT().Begin(ctx).Return(ctx, nil),
		mockTx.EXPECT().Commit(ctx).Return(nil),
	)

	calls := 0
	err := postgresql.AtomicWithRetry(ctx, mockTx, fastRetry(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAtomic_RollbackOnPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTx := mockPg.NewMockTransaction(ctrl)
	ctx := context.Background()

	mockTx.EXPECT().Begin(ctx).Return(ctx, nil)
	mockTx.EXPECT().Rollback(ctx).Return(nil)

	assert.Panics(t, func() {
		_ = postgresql.Atomic(ctx, mockTx, func(ctx context.Context) error {
			panic("boom")
		})
	})
}

func TestAtomicWithOptions(t *testing.T) {
	ctx := context.Background()
	readOnly := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	testCases := []struct {
		name    string
		fnErr   error
		mockFn  func(mockTx *mockPg.MockTransaction)
		wantErr bool
	}{
		{
			name: "commits",
			mockFn: func(mockTx *mockPg.MockTransaction) {
				mockTx.EXPECT().BeginTx(ctx, readOnly).Return(ctx, nil)
				mockTx.EXPECT().Commit(ctx).Return(nil)
			},
		},
		{
			name:  "rolls back on error",
			fnErr: stderrors.New("read failed"),
			mockFn: func(mockTx *mockPg.MockTransaction) {
				mockTx.EXPECT().BeginTx(ctx, readOnly).Return(ctx, nil)
				mockTx.EXPECT().Rollback(ctx).Return(nil)
			},
			wantErr: true,
		},
		{
			name: "begin failure",
			mockFn: func(mockTx *mockPg.MockTransaction) {
				mockTx.EXPECT().BeginTx(ctx, readOnly).Return(nil, stderrors.New("pool closed"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTx := mockPg.NewMockTransaction(ctrl)
			tc.mockFn(mockTx)

			err := postgresql.AtomicWithOptions(ctx, mockTx, postgresql.ReadOnlyTxOptions(), func(ctx context.Context) error {
				return tc.fnErr
			})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_ConnString(t *testing.T) {
	cfg := postgresql.Config{Host: "db", Port: 5433, Database: "pt", Username: "u", Password: "p", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5433/pt?sslmode=disable", cfg.ConnString())

	cfg.URL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", cfg.ConnString())
}
