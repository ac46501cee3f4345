package polymarket

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
)

const maxBodyBytes = 32 << 20

// Config configures the Polymarket client.
type Config struct {
	BaseURL   string        `env:"API_URL" envDefault:"https://clob.polymarket.com"`
	PageLimit int           `env:"PAGE_LIMIT" envDefault:"100"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// Retries after the first attempt of a page. Waits double from RetryInterval.
	MaxRetries    uint64        `env:"MAX_RETRIES" envDefault:"3"`
	RetryInterval time.Duration `env:"RETRY_INTERVAL" envDefault:"1s"`
	// MaxPages stops a scan whose cursor never ends.
	MaxPages int `env:"MAX_PAGES" envDefault:"1000"`
}

type client struct {
	config Config
	http   *http.Client
	logger logger.Interface
	now    func() time.Time
}

// NewClient creates a Polymarket client.
func NewClient(config Config, logger logger.Interface) *client {
	if config.PageLimit <= 0 {
		config.PageLimit = 100
	}
	if config.MaxPages <= 0 {
		config.MaxPages = 1000
	}
	return &client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: logger,
		now:    time.Now,
	}
}

var _ Client = (*client)(nil)

func (c *client) ActiveMarkets(ctx context.Context) ([]marketv1.Market, error) {
	scannedAt := c.now().UTC()
	seen := map[string]bool{}
	var markets []marketv1.Market

	cursor := ""
	for page := 1; ; page++ {
		p, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		for _, raw := range p.Data {
			m, ok := c.normalize(ctx, raw, scannedAt)
			if ok {
				markets = append(markets, m)
			}
		}

		next := ""
		if p.NextCursor != nil {
			next = *p.NextCursor
		}
		if next == "" || next == endCursor {
			break
		}
		if seen[next] {
			c.logger.WarnContext(ctx, "cursor repeated, stopping pagination", logger.Field{Key: "cursor", Value: next})
			break
		}
		if page >= c.config.MaxPages {
			c.logger.WarnContext(ctx, "page limit reached, stopping pagination", logger.Field{Key: "pages", Value: page})
			break
		}
		seen[next] = true
		cursor = next

		c.logger.DebugContext(ctx, "fetched markets page",
			logger.Field{Key: "page", Value: page},
			logger.Field{Key: "markets", Value: len(markets)},
		)
	}

	return markets, nil
}

// fetchPage retries network failures, timeouts and 429s. Other failures are final.
func (c *client) fetchPage(ctx context.Context, cursor string) (marketsPage, error) {
	query := url.Values{}
	query.Set("active", "true")
	query.Set("limit", strconv.Itoa(c.config.PageLimit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/markets?" + query.Encode()

	var page marketsPage
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(errors.TracerFromError(err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return errors.NewErrorDetails("polymarket rate limited", string(errors.ErrUpstreamStatus), "status")
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(errors.NewErrorDetails(
				fmt.Sprintf("polymarket returned %d", resp.StatusCode), string(errors.ErrUpstreamStatus), "status"))
		}

		page, err = decodePage(body)
		if err != nil {
			return backoff.Permanent(errors.NewErrorDetails(
				"unexpected polymarket response: "+err.Error(), string(errors.ErrUpstreamDecode), "body"))
		}
		return nil
	}

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		return op()
	}, c.newBackOff(ctx), func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "polymarket fetch failed, retrying",
			logger.Field{Key: "attempt", Value: attempt},
			logger.Field{Key: "delay", Value: wait.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	})
	return page, err
}

func (c *client) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.config.RetryInterval
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = c.config.RetryInterval << c.config.MaxRetries
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, c.config.MaxRetries), ctx)
}

func (c *client) normalize(ctx context.Context, raw apiMarket, at time.Time) (marketv1.Market, bool) {
	id := firstNonEmpty(raw.ID, raw.ConditionID, raw.ConditionIDAlt)
	if id == "" {
		c.logger.WarnContext(ctx, "skipping market without id", logger.Field{Key: "question", Value: raw.Question})
		return marketv1.Market{}, false
	}

	m := marketv1.Market{
		ID:          id,
		Question:    raw.Question,
		ConditionID: firstNonEmpty(raw.ConditionID, raw.ConditionIDAlt),
		Slug:        firstNonEmpty(raw.MarketSlug, raw.Slug),
		Active:      (raw.Active == nil || *raw.Active) && !raw.Closed,
		Liquidity:   raw.Liquidity.Value,
		ScannedAt:   at,
	}
	if raw.EndDateISO != nil {
		if end, err := time.Parse(time.RFC3339, *raw.EndDateISO); err == nil {
			end = end.UTC()
			m.EndDate = &end
		}
	}

	for _, t := range raw.Tokens {
		switch strings.ToLower(strings.TrimSpace(t.Outcome)) {
		case "yes":
			m.YesPrice = c.price(ctx, id, t.Price.Value)
		case "no":
			m.NoPrice = c.price(ctx, id, t.Price.Value)
		}
	}
	return m, true
}

func (c *client) price(ctx context.Context, marketID string, p *float64) *float64 {
	normalized := marketv1.NormalizePrice(p)
	if p != nil && normalized == nil {
		c.logger.WarnContext(ctx, "price out of range [0, 1]",
			logger.Field{Key: "market_id", Value: marketID},
			logger.Field{Key: "price", Value: *p},
		)
	}
	return normalized
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
