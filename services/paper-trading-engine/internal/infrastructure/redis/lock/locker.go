package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/redis"
	lockv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/lock/v1"
)

const keyPrefix = "lock:"

type locker struct {
	client redis.Client
	logger logger.Interface
}

// NewLocker creates a lease locker on Redis. The lease is a key set with NX and a
// ttl whose value is a random token.
func NewLocker(client redis.Client, logger logger.Interface) lockv1.Locker {
	return &locker{client: client, logger: logger}
}

func (l *locker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, ttl)
	if err != nil {
		return "", false, errors.TracerFromError(err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *locker) Extend(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	ok, err := l.client.CompareAndExpire(ctx, keyPrefix+key, token, ttl)
	if err != nil {
		return false, errors.TracerFromError(err)
	}
	return ok, nil
}

func (l *locker) Release(ctx context.Context, key, token string) error {
	ok, err := l.client.CompareAndDelete(ctx, keyPrefix+key, token)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if !ok {
		l.logger.WarnContext(ctx, "Lease expired before release", logger.Field{Key: "key", Value: key})
	}
	return nil
}

// Noop always grants the lease. Used when Redis is disabled and a single instance runs.
type Noop struct{}

var _ lockv1.Locker = Noop{}

func (Noop) Acquire(context.Context, string, time.Duration) (string, bool, error) {
	return "local", true, nil
}

func (Noop) Extend(context.Context, string, string, time.Duration) (bool, error) { return true, nil }

func (Noop) Release(context.Context, string, string) error { return nil }
