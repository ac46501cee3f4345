package postgresql

import (
	"context"
	stderrors "errors"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// RetryConfig controls how transient database failures are retried.
type RetryConfig struct {
	InitialInterval time.Duration `env:"INITIAL_INTERVAL" envDefault:"200ms"`
	MaxInterval     time.Duration `env:"MAX_INTERVAL" envDefault:"5s"`
	MaxElapsedTime  time.Duration `env:"MAX_ELAPSED_TIME" envDefault:"1m"`
	MaxRetries      uint64        `env:"MAX_RETRIES" envDefault:"5"`
}

// DefaultRetryConfig mirrors the env defaults for callers that build configs in code.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  time.Minute,
		MaxRetries:      5,
	}
}

// NewBackOff builds the exponential policy bound to ctx.
func (c RetryConfig) NewBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if c.InitialInterval > 0 {
		exp.InitialInterval = c.InitialInterval
	}
	if c.MaxInterval > 0 {
		exp.MaxInterval = c.MaxInterval
	}
	exp.MaxElapsedTime = c.MaxElapsedTime

	var b backoff.BackOff = exp
	if c.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, c.MaxRetries)
	}
	return backoff.WithContext(b, ctx)
}

// SQLSTATE codes worth another attempt.
var transientCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
	"53300": {}, // too_many_connections
}

// IsTransient reports whether err is a failure that may succeed when retried.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		if _, ok := transientCodes[pgErr.Code]; ok {
			return true
		}
		// class 08: connection exception
		return strings.HasPrefix(pgErr.Code, "08")
	}

	var connectErr *pgconn.ConnectError
	if stderrors.As(err, &connectErr) {
		return true
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var netErr net.Error
	return stderrors.As(err, &netErr)
}

// Retry runs op until it succeeds, returns a non transient error, or the policy gives up.
// notify, when set, is called before every wait.
func Retry(ctx context.Context, cfg RetryConfig, op func(ctx context.Context) error, notify func(err error, wait time.Duration)) error {
	return backoff.RetryNotify(func() error {
		err := op(ctx)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, cfg.NewBackOff(ctx), notify)
}

// ConnectWithRetry retries NewClient while the server is unreachable.
func ConnectWithRetry(ctx context.Context, config Config, notify func(err error, wait time.Duration)) (PostgreSQLClient, error) {
	var client PostgreSQLClient
	err := backoff.RetryNotify(func() error {
		c, err := NewClient(ctx, config)
		if err != nil {
			if stderrors.Is(err, context.Canceled) {
				return backoff.Permanent(err)
			}
			return err
		}
		client = c
		return nil
	}, config.Retry.NewBackOff(ctx), notify)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// AtomicWithRetry runs fn in a transaction opened through tx and replays the whole
// transaction on transient failures.
func AtomicWithRetry(ctx context.Context, tx Transaction, cfg RetryConfig, fn func(ctx context.Context) error, notify func(err error, wait time.Duration)) error {
	return Retry(ctx, cfg, func(ctx context.Context) error {
		return Atomic(ctx, tx, fn)
	}, notify)
}
