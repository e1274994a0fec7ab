package headless

import (
	"log/slog"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/host/registry"
	"github.com/jsil-dev/host-sdk/go/infrastructure/runlater"
)

// environmentConfig holds configuration for an Environment.
type environmentConfig struct {
	logger      *slog.Logger
	performance ports.PerformanceReporter
}

// EnvironmentOption configures an Environment.
type EnvironmentOption func(*environmentConfig)

// WithLogger sets the logger shared by the environment's providers.
func WithLogger(logger *slog.Logger) EnvironmentOption {
	return func(c *environmentConfig) {
		c.logger = logger
	}
}

// WithPerformanceReporter replaces the logging performance reporter.
func WithPerformanceReporter(reporter ports.PerformanceReporter) EnvironmentOption {
	return func(c *environmentConfig) {
		c.performance = reporter
	}
}

// Environment is the set of headless providers a shell registers. It keeps
// the concrete types so the shell can drive input and frames.
type Environment struct {
	Canvas      *Canvas
	Keyboard    *Keyboard
	Mouse       *Mouse
	Visibility  *PageVisibility
	Ticks       *TickScheduler
	RunLater    *runlater.Queue
	Performance ports.PerformanceReporter
}

var _ registry.ServiceBundle = (*Environment)(nil)

// NewEnvironment builds providers configured from cfg.
func NewEnvironment(cfg entities.ShellConfig, opts ...EnvironmentOption) *Environment {
	var c environmentConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.performance == nil {
		c.performance = NewPerformanceLogger(c.logger)
	}

	return &Environment{
		Canvas:      NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height),
		Keyboard:    &Keyboard{},
		Mouse:       &Mouse{},
		Visibility:  NewPageVisibility(!cfg.PageHidden),
		Ticks:       NewTickScheduler(WithInterval(cfg.Ticks.Interval), WithSchedulerLogger(c.logger)),
		RunLater:    runlater.New(runlater.WithLogger(c.logger)),
		Performance: c.performance,
	}
}

// Services implements registry.ServiceBundle.
func (e *Environment) Services() map[string]any {
	return map[string]any{
		entities.CapabilityCanvas.String():              e.Canvas,
		entities.CapabilityKeyboard.String():            e.Keyboard,
		entities.CapabilityMouse.String():               e.Mouse,
		entities.CapabilityPageVisibility.String():      e.Visibility,
		entities.CapabilityTickScheduler.String():       e.Ticks,
		entities.CapabilityRunLater.String():            e.RunLater,
		entities.CapabilityPerformanceReporter.String(): e.Performance,
	}
}
