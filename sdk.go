// Package sdk is the process-wide entry point of the JSIL host SDK.
//
// Generated runtimes expect a single service registry, facade and init queue
// per process. Default creates them lazily; the package-level functions act on
// it. Environments that need isolation (tests, several guests in one process)
// build their own Runtime with NewRuntime instead.
package sdk

import (
	"log/slog"
	"sync"

	"github.com/jsil-dev/host-sdk/go/application/initqueue"
	"github.com/jsil-dev/host-sdk/go/host"
	"github.com/jsil-dev/host-sdk/go/host/registry"
	"github.com/jsil-dev/host-sdk/go/infrastructure/defaults"
)

// runtimeConfig holds configuration for a Runtime.
type runtimeConfig struct {
	logger      *slog.Logger
	hostOptions []host.Option
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*runtimeConfig)

// WithLogger sets the logger shared by the registry, facade and init queue.
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(c *runtimeConfig) {
		c.logger = logger
	}
}

// WithHostOptions passes options through to host.New.
func WithHostOptions(opts ...host.Option) RuntimeOption {
	return func(c *runtimeConfig) {
		c.hostOptions = append(c.hostOptions, opts...)
	}
}

// Runtime bundles a registry, the facade over it and an init queue.
type Runtime struct {
	Registry  *registry.Registry
	Host      *host.Host
	InitQueue *initqueue.Queue
}

// NewRuntime creates an empty Runtime. No services are registered.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	var cfg runtimeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	reg := registry.New(registry.WithLogger(cfg.logger))
	hostOpts := append([]host.Option{host.WithLogger(cfg.logger)}, cfg.hostOptions...)
	return &Runtime{
		Registry:  reg,
		Host:      host.New(reg, hostOpts...),
		InitQueue: initqueue.New(initqueue.WithLogger(cfg.logger)),
	}
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide Runtime, creating it on first use.
func Default() *Runtime {
	defaultOnce.Do(func() {
		defaultRuntime = NewRuntime()
	})
	return defaultRuntime
}

// ResetDefault discards the process-wide Runtime so the next Default call
// creates a fresh one. It must not race with Default.
func ResetDefault() {
	defaultOnce = sync.Once{}
	defaultRuntime = nil
}

// Facade returns the default Runtime's host facade.
func Facade() *host.Host {
	return Default().Host
}

// RegisterService registers a provider in the default registry.
func RegisterService(name string, service any) error {
	return Default().Registry.Register(name, service)
}

// RegisterServices registers every entry of services in the default registry.
func RegisterServices(services map[string]any) error {
	return Default().Registry.RegisterServices(services)
}

// RegisterDefaults registers the default time, error, stdout and stderr
// providers in the default registry.
func RegisterDefaults(opts ...defaults.RegisterOption) error {
	return defaults.Register(Default().Registry, opts...)
}

// GetService resolves a provider from the default registry.
func GetService(name string, optional bool) (any, error) {
	return Default().Registry.GetService(name, optional)
}

// QueueInitCallback appends fn to the default init queue.
func QueueInitCallback(fn func()) error {
	return Default().InitQueue.Enqueue(fn)
}

// RunInitCallbacks drains the default init queue.
func RunInitCallbacks() error {
	return Default().InitQueue.Run()
}
