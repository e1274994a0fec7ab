package entities

import (
	"time"
)

// Storage backends understood by the headless shell.
const (
	StorageBackendMemory   = "memory"
	StorageBackendFile     = "file"
	StorageBackendPostgres = "postgres"
)

// ShellConfig configures a headless shell: which providers it registers and
// how they behave. It is loaded from YAML and validated with struct tags.
type ShellConfig struct {
	// LogLevel is the slog level for shell diagnostics ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// Canvas configures the default surface size.
	Canvas CanvasConfig `yaml:"canvas" json:"canvas"`

	// Ticks configures the frame loop driving the tick scheduler.
	Ticks TickConfig `yaml:"ticks" json:"ticks"`

	// Storage selects the key-value backend behind storage volumes.
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Metrics enables the Prometheus performance reporter.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// PageHidden starts the shell with the page visibility flag cleared.
	PageHidden bool `yaml:"page_hidden" json:"page_hidden,omitempty"`
}

// CanvasConfig sets the size of the surface returned by a bare GetCanvas call.
type CanvasConfig struct {
	Width  int `yaml:"width" json:"width" validate:"gte=1,lte=16384"`
	Height int `yaml:"height" json:"height" validate:"gte=1,lte=16384"`
}

// TickConfig controls the frame loop.
type TickConfig struct {
	// Frames is the number of frames to run after the script finishes. Zero runs none.
	Frames int `yaml:"frames" json:"frames" validate:"gte=0"`

	// Interval is the pause between frames.
	Interval time.Duration `yaml:"interval" json:"interval" validate:"gte=0"`
}

// StorageConfig selects and configures a key-value backend.
type StorageConfig struct {
	Backend string `yaml:"backend" json:"backend" validate:"oneof=memory file postgres" jsonschema:"enum=memory,enum=file,enum=postgres"`

	// Path is the YAML file used by the file backend.
	Path string `yaml:"path" json:"path,omitempty" validate:"required_if=Backend file"`

	// DSN is the connection string used by the postgres backend.
	DSN string `yaml:"dsn" json:"dsn,omitempty" validate:"required_if=Backend postgres"`

	// Table is the SQL table holding volume entries.
	Table string `yaml:"table" json:"table,omitempty" validate:"omitempty,sql_identifier"`
}

// MetricsConfig configures the Prometheus performance reporter.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace,omitempty"`
}

// DefaultShellConfig returns the configuration used when no file is given.
func DefaultShellConfig() ShellConfig {
	return ShellConfig{
		LogLevel: "info",
		Canvas:   CanvasConfig{Width: 800, Height: 600},
		Storage:  StorageConfig{Backend: StorageBackendMemory, Table: "volume_entries"},
		Metrics:  MetricsConfig{Namespace: "jsil"},
	}
}

// ShellConfigOption is a functional option for building a ShellConfig.
type ShellConfigOption func(*ShellConfig)

// WithCanvasSize sets the default canvas size.
func WithCanvasSize(width, height int) ShellConfigOption {
	return func(c *ShellConfig) {
		if width > 0 && height > 0 {
			c.Canvas = CanvasConfig{Width: width, Height: height}
		}
	}
}

// WithFrames sets how many frames the shell runs.
func WithFrames(n int) ShellConfigOption {
	return func(c *ShellConfig) {
		if n >= 0 {
			c.Ticks.Frames = n
		}
	}
}

// WithLogLevel sets the shell log level.
func WithLogLevel(level string) ShellConfigOption {
	return func(c *ShellConfig) {
		c.LogLevel = level
	}
}

// NewShellConfig creates a ShellConfig from defaults and the given options.
func NewShellConfig(opts ...ShellConfigOption) ShellConfig {
	cfg := DefaultShellConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
