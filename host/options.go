package host

import (
	"log/slog"
	"time"
)

// hostConfig holds configuration for a Host.
type hostConfig struct {
	logger      *slog.Logger
	clock       func() time.Time
	stackTraces bool
}

func defaultHostConfig() hostConfig {
	return hostConfig{
		clock:       time.Now,
		stackTraces: true,
	}
}

// Option defines a functional option for configuring the Host.
type Option func(*hostConfig)

// WithLogger sets the logger used for best-effort failures the facade
// tolerates (for example a stderr write failing during Abort).
func WithLogger(logger *slog.Logger) Option {
	return func(c *hostConfig) {
		c.logger = logger
	}
}

// WithClock replaces the wall clock behind GetFileTime.
func WithClock(now func() time.Time) Option {
	return func(c *hostConfig) {
		c.clock = now
	}
}

// WithStackTraces enables/disables appending call stacks to warnings.
// Default is true.
func WithStackTraces(enabled bool) Option {
	return func(c *hostConfig) {
		c.stackTraces = enabled
	}
}
