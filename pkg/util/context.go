package util

import (
	"context"
)

type key string

const (
	cycleIDKey   = key("cycle-id")
	strategyKey  = key("strategy")
	portfolioKey = key("portfolio-id")
)

// Fields returns a map of the key-value pairs that this package has set into `context`.
func Fields(ctx context.Context) map[string]interface{} {
	mapFields := make(map[string]interface{})
	mapFields["request_id"] = GetRequestID(ctx)
	if id := GetCycleID(ctx); id != "" {
		mapFields["cycle_id"] = id
	}
	if name := GetStrategy(ctx); name != "" {
		mapFields["strategy"] = name
	}
	if id := GetPortfolioID(ctx); id != "" {
		mapFields["portfolio_id"] = id
	}

	return mapFields
}

// WithRequestID returns a context with request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return ContextWithRequestID(ctx, id)
}

// WithCycleID returns a context tagged with the id of the engine cycle it belongs to.
func WithCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleIDKey, id)
}

// WithStrategy returns a context tagged with a strategy name.
func WithStrategy(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, strategyKey, name)
}

// WithPortfolioID returns a context tagged with a portfolio id.
func WithPortfolioID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, portfolioKey, id)
}

// GetRequestID returns request id from context
func GetRequestID(ctx context.Context) string {
	return FromContext(ctx)
}

// GetCycleID returns the cycle id, empty when not present.
func GetCycleID(ctx context.Context) string {
	id, _ := ctx.Value(cycleIDKey).(string)
	return id
}

// GetStrategy returns the strategy name, empty when not present.
func GetStrategy(ctx context.Context) string {
	name, _ := ctx.Value(strategyKey).(string)
	return name
}

// GetPortfolioID returns the portfolio id, empty when not present.
func GetPortfolioID(ctx context.Context) string {
	id, _ := ctx.Value(portfolioKey).(string)
	return id
}
