package redis

import (
	"context"
	"time"
)

// Client defines the interface for a Redis client. Keys are given without the
// configured prefix; the client adds it.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) bool

	Get(ctx context.Context, key string) (string, error)
	MGet(ctx context.Context, keys ...string) ([]string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) (int64, error)
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)
	CompareAndExpire(ctx context.Context, key, value string, expiration time.Duration) (bool, error)
}
