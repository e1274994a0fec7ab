package shell

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"github.com/jmoiron/sqlx"
	sdk "github.com/jsil-dev/host-sdk/go"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/infrastructure/defaults"
	jsbridge "github.com/jsil-dev/host-sdk/go/infrastructure/goja"
	"github.com/jsil-dev/host-sdk/go/infrastructure/headless"
	"github.com/jsil-dev/host-sdk/go/infrastructure/metrics"
	hostlog "github.com/jsil-dev/host-sdk/go/log"
)

// shellConfig holds configuration for a Shell.
type shellConfig struct {
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
	db     *sqlx.DB
}

// Option configures a Shell.
type Option func(*shellConfig)

// WithLogger sets the logger for registry and runtime diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *shellConfig) {
		c.logger = logger
	}
}

// WithStdout sets the writer behind the "stdout" service (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(c *shellConfig) {
		c.stdout = w
	}
}

// WithStderr sets the writer behind the "stderr" service (default os.Stderr).
func WithStderr(w io.Writer) Option {
	return func(c *shellConfig) {
		c.stderr = w
	}
}

// WithDB supplies the database used by the postgres storage backend. The
// shell does not close it.
func WithDB(db *sqlx.DB) Option {
	return func(c *shellConfig) {
		c.db = db
	}
}

// Shell is a headless environment with a script runtime.
type Shell struct {
	config  entities.ShellConfig
	runtime *sdk.Runtime
	env     *headless.Environment
	metrics *metrics.Reporter
	store   ports.KVStore
	vm      *goja.Runtime
	fatal   *fatalRecorder
	logger  *slog.Logger
	closers []func() error
}

// Result summarizes a completed Run.
type Result struct {
	Frames int
}

// New wires every provider described by cfg.
func New(ctx context.Context, cfg entities.ShellConfig, opts ...Option) (*Shell, error) {
	c := shellConfig{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	s := &Shell{
		config:  cfg,
		runtime: sdk.NewRuntime(sdk.WithLogger(c.logger)),
		fatal:   &fatalRecorder{},
		vm:      goja.New(),
	}

	err := defaults.Register(s.runtime.Registry,
		defaults.WithStdout(c.stdout),
		defaults.WithStderr(c.stderr),
		defaults.WithErrorService(s.fatal),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register default services: %w", err)
	}

	// Diagnostics from here on go through the facade's own output services.
	s.logger = hostlog.New(s.runtime.Host, hostlog.WithLevel(ParseLevel(cfg.LogLevel)))

	envOpts := []headless.EnvironmentOption{headless.WithLogger(s.logger)}
	if cfg.Metrics.Enabled {
		reporter, err := metrics.NewReporter(metrics.WithNamespace(cfg.Metrics.Namespace))
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics reporter: %w", err)
		}
		s.metrics = reporter
		envOpts = append(envOpts, headless.WithPerformanceReporter(reporter))
	}
	s.env = headless.NewEnvironment(cfg, envOpts...)
	if err := s.runtime.Registry.RegisterBundle(s.env); err != nil {
		return nil, fmt.Errorf("failed to register headless services: %w", err)
	}

	store, closer, err := openStore(ctx, cfg.Storage, c.db)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		s.closers = append(s.closers, closer)
	}
	s.store = store
	if err := s.runtime.Registry.Register(entities.CapabilityStorage.String(), store); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to register storage: %w", err)
	}

	err = jsbridge.Install(s.vm, s.runtime.Host,
		jsbridge.WithInitQueue(s.runtime.InitQueue),
		jsbridge.WithVolumes(s.runtime.Host),
		jsbridge.WithLogger(s.logger),
	)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to install script bridge: %w", err)
	}

	s.logger.Debug("shell ready",
		"services", strings.Join(s.runtime.Registry.Names(), ","),
		"storage", cfg.Storage.Backend,
		"metrics", cfg.Metrics.Enabled,
	)
	return s, nil
}

// Run evaluates source, drains the init queue, flushes run-later actions and
// then drives the configured number of frames, flushing run-later actions
// after each. The first fatal error reported through the facade ends the run.
func (s *Shell) Run(ctx context.Context, name string, source []byte) (Result, error) {
	var res Result

	if _, err := s.vm.RunScript(name, string(source)); err != nil {
		if fatal := s.fatal.Err(); fatal != nil {
			return res, fatal
		}
		return res, fmt.Errorf("script %s: %w", name, err)
	}
	if err := s.check(); err != nil {
		return res, err
	}

	if err := s.runtime.InitQueue.Run(); err != nil {
		return res, err
	}
	if err := s.check(); err != nil {
		return res, err
	}

	if err := s.flush(); err != nil {
		return res, err
	}

	frames, err := s.env.Ticks.RunFramesWith(ctx, s.config.Ticks.Frames, func(int) error {
		return s.flush()
	})
	res.Frames = frames
	return res, err
}

// flush drains the run-later queue and reports any recorded fatal error.
func (s *Shell) flush() error {
	if _, err := s.runtime.Host.RunLaterFlush(); err != nil {
		return err
	}
	return s.check()
}

func (s *Shell) check() error {
	return s.fatal.Err()
}

// Runtime returns the registry, facade and init queue of the shell.
func (s *Shell) Runtime() *sdk.Runtime {
	return s.runtime
}

// Environment returns the headless providers so callers can drive input.
func (s *Shell) Environment() *headless.Environment {
	return s.env
}

// Metrics returns the Prometheus reporter, or nil when metrics are disabled.
func (s *Shell) Metrics() *metrics.Reporter {
	return s.metrics
}

// Store returns the storage backend.
func (s *Shell) Store() ports.KVStore {
	return s.store
}

// Logger returns the logger that writes through the facade.
func (s *Shell) Logger() *slog.Logger {
	return s.logger
}

// Close releases resources the shell opened.
func (s *Shell) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return stdErrors.Join(errs...)
}

// ParseLevel maps a config log level to a slog.Level. Unknown values map to Info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// fatalRecorder is the shell's "error" service. It keeps the first reported
// failure so Run can stop instead of unwinding through the script engine.
type fatalRecorder struct {
	mu  sync.Mutex
	err error
}

var _ ports.ErrorReporter = (*fatalRecorder)(nil)

func (r *fatalRecorder) Error(err error) error {
	fatal := &errors.FatalError{Err: err}
	r.mu.Lock()
	if r.err == nil {
		r.err = fatal
	}
	r.mu.Unlock()
	return fatal
}

// Err returns the first recorded failure.
func (r *fatalRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
