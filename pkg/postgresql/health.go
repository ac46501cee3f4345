package postgresql

import (
	"context"
	"fmt"
	"time"
)

// HealthCheck represents database health information
type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	ActiveConns  int32         `json:"active_connections"`
	IdleConns    int32         `json:"idle_connections"`
	MaxConns     int32         `json:"max_connections"`
	DatabaseName string        `json:"database_name"`
	Error        string        `json:"error,omitempty"`
}

// CheckHealth pings the pool and reports its statistics.
func (c *Client) CheckHealth(ctx context.Context) *HealthCheck {
	start := time.Now()

	stats := c.Stats()
	health := &HealthCheck{
		DatabaseName: c.DatabaseName(),
		ActiveConns:  stats.AcquiredConns(),
		IdleConns:    stats.IdleConns(),
		MaxConns:     stats.MaxConns(),
		Status:       "healthy",
	}

	if err := c.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Error = fmt.Sprintf("ping failed: %v", err)
	}

	health.ResponseTime = time.Since(start)
	return health
}

// HealthChecker returns a probe suitable for the metrics server readiness endpoint.
func HealthChecker(db PostgreSQLClient) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if c, ok := db.(*Client); ok {
			if h := c.CheckHealth(ctx); h.Status != "healthy" {
				return fmt.Errorf("postgresql %s: %s", h.Status, h.Error)
			}
			return nil
		}
		return db.Ping(ctx)
	}
}
