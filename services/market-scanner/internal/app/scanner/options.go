package scanner

import "time"

// Options represents configuration options for the Scanner.
type Options struct {
	// Interval between the start of two scans.
	Interval time.Duration
	// ScanTimeout bounds a single scan. Zero means no bound.
	ScanTimeout time.Duration
}

// DefaultScannerOptions returns the default scanner options.
func DefaultScannerOptions() *Options {
	return &Options{
		Interval:    60 * time.Second,
		ScanTimeout: 5 * time.Minute,
	}
}
