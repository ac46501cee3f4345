package redis

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// deletes key only while it still holds the caller's token
var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extends the ttl of key only while it still holds the caller's token
var compareAndExpire = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type client struct {
	logger  logger.Interface
	config  *Config
	cmdable redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
// Connect must be called before use.
func NewClient(logger logger.Interface, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func (c *client) validate() error {
	if c.config == nil {
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConfigError), "connect")
	}
	if len(c.config.Addrs) == 0 {
		return errors.NewErrorDetails("Redis addresses are empty", string(errors.RedisConfigError), "connect")
	}
	if c.config.Mode != Standalone && c.config.Mode != Cluster {
		return errors.NewErrorDetails("Invalid Redis mode", string(errors.RedisConfigError), "connect")
	}
	if c.config.ConnectTimeout <= 0 {
		return errors.NewErrorDetails("Invalid Redis connect timeout", string(errors.RedisConfigError), "connect")
	}
	if c.config.PoolSize <= 0 {
		return errors.NewErrorDetails("Invalid Redis pool size", string(errors.RedisConfigError), "connect")
	}
	if c.config.MaxIdleConns < 0 || c.config.MinIdleConns < 0 {
		return errors.NewErrorDetails("Invalid Redis idle connections", string(errors.RedisConfigError), "connect")
	}
	if c.config.MaxRetries < 0 {
		return errors.NewErrorDetails("Invalid Redis max retries", string(errors.RedisConfigError), "connect")
	}
	return nil
}

func (c *client) Connect(ctx context.Context) error {
	if err := c.validate(); err != nil {
		return err
	}

	switch c.config.Mode {
	case Standalone:
		c.cmdable = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		c.cmdable = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to connect to Redis: "+err.Error(), string(errors.RedisConnectionError), "connect")
	}
	return nil
}

// Reconnect retries Connect with exponential backoff and reports whether it succeeded.
func (c *client) Reconnect(ctx context.Context) bool {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.MinRetryBackoff
	policy.MaxInterval = c.config.MaxRetryBackoff
	b := backoff.WithContext(backoff.WithMaxRetries(policy, c.config.ReconnectMaxRetries), ctx)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		if c.cmdable != nil {
			_ = c.cmdable.Close()
		}
		connectCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
		return c.Connect(connectCtx)
	}, b, func(err error, wait time.Duration) {
		c.logger.Warn("Reconnecting to Redis",
			logger.Field{Key: "attempt", Value: attempt},
			logger.Field{Key: "delay", Value: wait.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	})
	if err != nil {
		c.logger.Error(errors.TracerFromError(err), logger.Field{Key: "action", Value: "redisReconnect"})
		return false
	}

	c.logger.Info("Connected to Redis", logger.Field{Key: "attempt", Value: attempt})
	return true
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return nil
	}
	if err := c.cmdable.Close(); err != nil {
		return errors.NewErrorDetails("Failed to close Redis client", string(errors.RedisDisconnectionError), "disconnect")
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", string(errors.RedisPingError), "ping")
	}
	return nil
}

func (c *client) key(k string) string {
	return c.config.PrefixKey + k
}

// Get returns "" without error when the key does not exist.
func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), "get")
	}
	return val, nil
}

// MGet returns one entry per key, "" for missing keys.
func (c *client) MGet(ctx context.Context, keys ...string) ([]string, error) {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.key(k)
	}
	vals, err := c.cmdable.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, errors.NewErrorDetails("Failed to get values from Redis", string(errors.RedisGetError), "mget")
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[i] = s
		}
	}
	return out, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, c.key(key), value, expiration).Err(); err != nil {
		return errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), "set")
	}
	return nil
}

func (c *client) SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error) {
	ok, err := c.cmdable.SetNX(ctx, c.key(key), value, expiration).Result()
	if err != nil {
		return false, errors.NewErrorDetails("Failed to set value with NX in Redis", string(errors.RedisSetNXError), "setnx")
	}
	return ok, nil
}

func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.key(k)
	}
	deleted, err := c.cmdable.Del(ctx, prefixed...).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to delete keys from Redis", string(errors.RedisDelError), "del")
	}
	return deleted, nil
}

func (c *client) CompareAndDelete(ctx context.Context, key, value string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, c.cmdable, []string{c.key(key)}, value).Int64()
	if err != nil {
		return false, errors.NewErrorDetails("Failed to release key in Redis", string(errors.RedisEvalError), "compareAndDelete")
	}
	return n == 1, nil
}

func (c *client) CompareAndExpire(ctx context.Context, key, value string, expiration time.Duration) (bool, error) {
	n, err := compareAndExpire.Run(ctx, c.cmdable, []string{c.key(key)}, value, expiration.Milliseconds()).Int64()
	if err != nil {
		return false, errors.NewErrorDetails("Failed to extend key in Redis", string(errors.RedisEvalError), "compareAndExpire")
	}
	return n == 1, nil
}
