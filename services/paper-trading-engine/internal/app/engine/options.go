package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	// Interval between two scheduled trading cycles. Nudges can start one earlier.
	Interval time.Duration
	// CycleTimeout bounds a single cycle. Zero means no bound.
	CycleTimeout time.Duration
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		Interval:     15 * time.Second,
		CycleTimeout: 60 * time.Second,
	}
}
