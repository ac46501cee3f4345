package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	// Interval between the start of two evaluation cycles.
	Interval time.Duration
	// CycleTimeout bounds a single cycle. Zero means no bound.
	CycleTimeout time.Duration
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		Interval:     30 * time.Second,
		CycleTimeout: 25 * time.Second,
	}
}
