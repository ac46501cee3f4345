package healthcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_Handler(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		checks     map[string]Check
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "health", path: "/health", wantStatus: http.StatusOK, wantBody: "ok\n"},
		{name: "passthrough", path: "/metrics", wantStatus: http.StatusTeapot},
		{
			name:       "ready",
			path:       "/ready",
			checks:     map[string]Check{"postgres": func(context.Context) error { return nil }},
			wantStatus: http.StatusOK,
			wantBody:   "postgres: ok\n",
		},
		{
			name: "not ready",
			path: "/ready",
			checks: map[string]Check{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "postgres: ok\nredis: refused\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthCheck{Checks: tt.checks}.Handler(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
