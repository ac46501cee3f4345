// Package pricecache keeps the latest traded price per symbol in process memory
// (ristretto) backed by Redis, so engines running as separate processes share marks.
package pricecache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/redis"
)

// Quote is the last known price of a symbol.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Config controls cache sizing and freshness.
type Config struct {
	MaxEntries int64         `env:"MAX_ENTRIES" envDefault:"10000"`
	TTL        time.Duration `env:"TTL" envDefault:"10m"`
	// LocalTTL bounds how long a process keeps its own copy when Redis is shared.
	// Zero reads through to Redis every time.
	LocalTTL time.Duration `env:"LOCAL_TTL" envDefault:"1s"`
}

//go:generate mockgen -source cache.go -destination=mock/cache_mock.go -package=pricecache_mock

// Cache reads and writes last prices.
type Cache interface {
	Put(ctx context.Context, quote Quote) error
	Get(ctx context.Context, symbol string) (Quote, bool, error)
}

// PriceCache is a two level Cache. The Redis level is optional.
type PriceCache struct {
	local    *ristretto.Cache
	remote   redis.Client
	ttl      time.Duration
	localTTL time.Duration
	logger   logger.Interface
}

var _ Cache = (*PriceCache)(nil)

// New builds a PriceCache. remote may be nil to run in process only.
func New(cfg Config, remote redis.Client, log logger.Interface) (*PriceCache, error) {
	local, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.MaxEntries * 10,
		MaxCost:     cfg.MaxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return &PriceCache{
		local:    local,
		remote:   remote,
		ttl:      cfg.TTL,
		localTTL: cfg.LocalTTL,
		logger:   log,
	}, nil
}

func key(symbol string) string {
	return "price:" + symbol
}

// Put stores quote unless a newer quote for the same symbol is already held locally.
func (c *PriceCache) Put(ctx context.Context, quote Quote) error {
	if cur, ok := c.getLocal(quote.Symbol); ok && cur.Timestamp.After(quote.Timestamp) {
		return nil
	}

	c.setLocal(quote)

	if c.remote == nil {
		return nil
	}
	raw, err := json.Marshal(quote)
	if err != nil {
		return errors.TracerFromError(err)
	}
	return c.remote.Set(ctx, key(quote.Symbol), raw, c.ttl)
}

// Get returns the cached quote. A Redis failure is logged and reported as a miss so
// callers fall back to the database.
func (c *PriceCache) Get(ctx context.Context, symbol string) (Quote, bool, error) {
	if q, ok := c.getLocal(symbol); ok {
		return q, true, nil
	}
	if c.remote == nil {
		return Quote{}, false, nil
	}

	raw, err := c.remote.Get(ctx, key(symbol))
	if err != nil {
		c.logger.WarnContext(ctx, "price cache remote read failed",
			logger.Field{Key: "symbol", Value: symbol},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return Quote{}, false, nil
	}
	if raw == "" {
		return Quote{}, false, nil
	}

	var q Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return Quote{}, false, errors.TracerFromError(err)
	}
	c.setLocal(q)
	return q, true, nil
}

// setLocal keeps quote in process. With a shared Redis level other processes write
// newer prices, so the local copy only lives for localTTL.
func (c *PriceCache) setLocal(quote Quote) {
	ttl := c.ttl
	if c.remote != nil {
		ttl = c.localTTL
	}
	if ttl <= 0 {
		return
	}
	c.local.SetWithTTL(quote.Symbol, quote, 1, ttl)
	c.local.Wait()
}

func (c *PriceCache) getLocal(symbol string) (Quote, bool) {
	v, ok := c.local.Get(symbol)
	if !ok {
		return Quote{}, false
	}
	q, ok := v.(Quote)
	return q, ok
}

// Close releases the in process cache.
func (c *PriceCache) Close() {
	c.local.Close()
}
