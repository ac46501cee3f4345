package polymarket

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/market-scanner/internal/domain/market/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *client {
	c := NewClient(Config{
		BaseURL:       url,
		PageLimit:     2,
		Timeout:       time.Second,
		MaxRetries:    3,
		RetryInterval: time.Millisecond,
	}, logger.NewNop())
	c.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestClient_ActiveMarkets(t *testing.T) {
	testCases := []struct {
		name     string
		handler  func(calls *int32) http.HandlerFunc
		assertFn func(t *testing.T, calls int32, markets []marketv1.Market, err error)
	}{
		{
			name: "follows cursors until the end marker",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					assert.Equal(t, "/markets", r.URL.Path)
					assert.Equal(t, "true", r.URL.Query().Get("active"))
					assert.Equal(t, "2", r.URL.Query().Get("limit"))
					switch r.URL.Query().Get("cursor") {
					case "":
						fmt.Fprint(w, `{"data":[
							{"condition_id":"0xabc","question":"Rain?","market_slug":"rain","active":true,
							 "end_date_iso":"2025-07-01T00:00:00Z","liquidity":"1500.5",
							 "tokens":[{"outcome":"Yes","price":0.45},{"outcome":"No","price":"0.5"}]}
						],"next_cursor":"MQ=="}`)
					case "MQ==":
						fmt.Fprint(w, `{"data":[
							{"id":"m2","question":"Snow?","slug":"snow","closed":true,
							 "tokens":[{"outcome":"NO","price":0.9},{"outcome":"YES","price":1.7}]}
						],"next_cursor":"LTE="}`)
					default:
						t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
					}
				}
			},
			assertFn: func(t *testing.T, calls int32, markets []marketv1.Market, err error) {
				require.NoError(t, err)
				assert.Equal(t, int32(2), calls)
				require.Len(t, markets, 2)

				rain := markets[0]
				assert.Equal(t, "0xabc", rain.ID)
				assert.Equal(t, "0xabc", rain.ConditionID)
				assert.Equal(t, "rain", rain.Slug)
				assert.True(t, rain.Active)
				require.NotNil(t, rain.Liquidity)
				assert.InDelta(t, 1500.5, *rain.Liquidity, 1e-9)
				require.NotNil(t, rain.EndDate)
				assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *rain.EndDate)
				assert.InDelta(t, 0.45, *rain.YesPrice, 1e-9)
				assert.InDelta(t, 0.5, *rain.NoPrice, 1e-9)
				assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), rain.ScannedAt)

				snow := markets[1]
				assert.Equal(t, "m2", snow.ID)
				assert.Equal(t, "snow", snow.Slug)
				assert.False(t, snow.Active)
				assert.Nil(t, snow.YesPrice)
				assert.InDelta(t, 0.9, *snow.NoPrice, 1e-9)
				assert.Nil(t, snow.EndDate)
			},
		},
		{
			name: "accepts a bare array and skips markets without id",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					fmt.Fprint(w, `[{"question":"no id"},{"conditionId":"0xdef","question":"ok","liquidity":null}]`)
				}
			},
			assertFn: func(t *testing.T, calls int32, markets []marketv1.Market, err error) {
				require.NoError(t, err)
				require.Len(t, markets, 1)
				assert.Equal(t, "0xdef", markets[0].ID)
				assert.Nil(t, markets[0].Liquidity)
			},
		},
		{
			name: "stops on a repeated cursor",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					fmt.Fprintf(w, `{"data":[{"id":"m%d"}],"next_cursor":"loop"}`, atomic.LoadInt32(calls))
				}
			},
			assertFn: func(t *testing.T, calls int32, markets []marketv1.Market, err error) {
				require.NoError(t, err)
				assert.Equal(t, int32(2), calls)
				assert.Len(t, markets, 2)
			},
		},
		{
			name: "retries rate limiting then succeeds",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					if atomic.AddInt32(calls, 1) < 3 {
						w.WriteHeader(http.StatusTooManyRequests)
						return
					}
					fmt.Fprint(w, `{"data":[{"id":"m1"}],"next_cursor":""}`)
				}
			},
			assertFn: func(t *testing.T, calls int32, markets []marketv1.Market, err error) {
				require.NoError(t, err)
				assert.Equal(t, int32(3), calls)
				assert.Len(t, markets, 1)
			},
		},
		{
			name: "gives up after max retries",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					w.WriteHeader(http.StatusTooManyRequests)
				}
			},
			assertFn: func(t *testing.T, calls int32, markets []marketv1.Market, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrUpstreamStatus)))
				assert.Equal(t, int32(4), calls)
				assert.Nil(t, markets)
			},
		},
		{
			name: "does not retry server errors",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					w.WriteHeader(http.StatusInternalServerError)
				}
			},
			assertFn: func(t *testing.T, calls int32, markets []marketv1.Market, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrUpstreamStatus)))
				assert.Contains(t, err.Error(), "500")
				assert.Equal(t, int32(1), calls)
			},
		},
		{
			name: "reports malformed json",
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					fmt.Fprint(w, `{"data": [`)
				}
			},
			assertFn: func(t *testing.T, calls int32, markets []marketv1.Market, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrUpstreamDecode)))
				assert.Equal(t, int32(1), calls)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(tc.handler(&calls))
			defer srv.Close()

			markets, err := newTestClient(srv.URL + "/").ActiveMarkets(context.Background())
			tc.assertFn(t, atomic.LoadInt32(&calls), markets, err)
		})
	}
}

func TestClient_ActiveMarketsCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.config.RetryInterval = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ActiveMarkets(ctx)
	require.Error(t, err)
}
