package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// Check probes one dependency and returns nil when it is usable.
type Check func(ctx context.Context) error

// HealthCheck serves GET /health (process is up) and GET /ready (every registered
// dependency answers).
type HealthCheck struct {
	Checks  map[string]Check
	Timeout time.Duration
}

// Handler is used to control the flow of GET /health and GET /ready endpoints
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case IsHealthCheckRequest(r):
			hc.ServeHTTP(w, r)
			return
		case IsReadinessRequest(r):
			hc.serveReady(w, r)
			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (hc HealthCheck) serveReady(w http.ResponseWriter, r *http.Request) {
	timeout := hc.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	names := make([]string, 0, len(hc.Checks))
	for name := range hc.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	lines := make([]string, 0, len(names))
	for _, name := range names {
		if err := hc.Checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			lines = append(lines, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		lines = append(lines, name+": ok")
	}

	w.WriteHeader(status)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/health"
}

// IsReadinessRequest reports whether r targets the readiness endpoint.
func IsReadinessRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/ready"
}
