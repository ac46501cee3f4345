package v1

import (
	"context"
	"time"
)

//go:generate mockgen -source=interface.go -destination=mock/locker_mock.go -package=mock

// Locker hands out expiring leases on a key. Only the holder of the token can extend
// or release a lease.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Extend(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, token string) error
}
