package headless

import (
	"log/slog"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// PerformanceLogger is a PerformanceReporter that logs each frame at debug level.
type PerformanceLogger struct {
	logger *slog.Logger
}

var _ ports.PerformanceReporter = (*PerformanceLogger)(nil)

// NewPerformanceLogger creates a reporter writing to logger (slog.Default() when nil).
func NewPerformanceLogger(logger *slog.Logger) *PerformanceLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &PerformanceLogger{logger: logger}
}

// Report implements ports.PerformanceReporter.
func (p *PerformanceLogger) Report(draw, update time.Duration, cacheSize int, isGPUPath bool) {
	p.logger.Debug("headless: frame performance",
		"draw", draw,
		"update", update,
		"cache_size", cacheSize,
		"gpu", isGPUPath,
	)
}
