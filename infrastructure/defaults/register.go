package defaults

import (
	"io"
	"os"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// registerConfig holds the streams used for the default writers.
type registerConfig struct {
	stdout io.Writer
	stderr io.Writer
	errors ports.ErrorReporter
}

// RegisterOption configures Register.
type RegisterOption func(*registerConfig)

// WithStdout sets the writer behind the "stdout" capability (default os.Stdout).
func WithStdout(w io.Writer) RegisterOption {
	return func(c *registerConfig) {
		c.stdout = w
	}
}

// WithStderr sets the writer behind the "stderr" capability (default os.Stderr).
func WithStderr(w io.Writer) RegisterOption {
	return func(c *registerConfig) {
		c.stderr = w
	}
}

// WithErrorService replaces the fail-fast error provider.
func WithErrorService(reporter ports.ErrorReporter) RegisterOption {
	return func(c *registerConfig) {
		c.errors = reporter
	}
}

// Services returns the default providers keyed by capability name.
func Services(opts ...RegisterOption) map[string]any {
	cfg := registerConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
		errors: NewFatalErrorService(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return map[string]any{
		entities.CapabilityTime.String():   NewTimeService(),
		entities.CapabilityError.String():  cfg.errors,
		entities.CapabilityStdout.String(): NewWriterService(cfg.stdout),
		entities.CapabilityStderr.String(): NewWriterService(cfg.stderr),
	}
}

// Register installs the default time, error, stdout and stderr providers.
func Register(reg ports.ServiceRegistry, opts ...RegisterOption) error {
	return reg.RegisterServices(Services(opts...))
}
