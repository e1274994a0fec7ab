// Package registry provides the service registry: the table mapping capability
// names to the provider objects a hosting environment supplies.
//
// Registration is last-write-wins. The registry is safe for concurrent use in
// the sense that the map is never corrupted, but it provides no ordering
// between a registration and a concurrent lookup: registration should complete
// during startup, before any code that depends on the service runs.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// registryConfig holds configuration for the Registry.
type registryConfig struct {
	logger         *slog.Logger
	checkContracts bool // Reject providers that do not implement their capability interface
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		checkContracts: true,
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithContractChecking enables/disables interface checks at registration time.
// Default is true. Disable only when providers are adapted lazily by the caller.
func WithContractChecking(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.checkContracts = enabled
	}
}

// WithLogger sets the logger used to report overwritten registrations.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		c.logger = logger
	}
}

// Registry implements ports.ServiceRegistry.
type Registry struct {
	config   registryConfig
	mu       sync.RWMutex
	services map[string]any
}

var _ ports.ServiceRegistry = (*Registry)(nil)

// New creates an empty Registry with the given options.
func New(opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Registry{
		config:   cfg,
		services: make(map[string]any),
	}
}

// Register stores service under name, replacing any previous provider.
func (r *Registry) Register(name string, service any) error {
	if name == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if service == nil {
		return fmt.Errorf("service %q cannot be nil", name)
	}
	if r.config.checkContracts {
		if err := CheckContract(entities.Capability(name), service); err != nil {
			return err
		}
	}

	r.mu.Lock()
	_, replaced := r.services[name]
	r.services[name] = service
	r.mu.Unlock()

	if replaced {
		r.config.logger.Debug("registry: service replaced", "name", name, "type", fmt.Sprintf("%T", service))
	}
	return nil
}

// RegisterServices registers every entry of services in sorted key order.
// A nil or empty map registers nothing. Registration stops at the first
// rejected entry; entries before it stay registered.
func (r *Registry) RegisterServices(services map[string]any) error {
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.Register(name, services[name]); err != nil {
			return fmt.Errorf("failed to register %q: %w", name, err)
		}
	}
	return nil
}

// RegisterBundle registers every provider of a bundle.
func (r *Registry) RegisterBundle(bundle ServiceBundle) error {
	return r.RegisterServices(bundle.Services())
}

// GetService returns the provider registered under name.
// When nothing is registered it returns (nil, nil) if optional is true and a
// *errors.ServiceUnavailableError otherwise.
func (r *Registry) GetService(name string, optional bool) (any, error) {
	r.mu.RLock()
	service, ok := r.services[name]
	r.mu.RUnlock()

	if !ok {
		if optional {
			return nil, nil
		}
		return nil, &errors.ServiceUnavailableError{Capability: name}
	}
	return service, nil
}

// Has returns true if a provider is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.services[name]
	return ok
}

// Unregister removes the provider registered under name, if any.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.services, name)
	r.mu.Unlock()
}

// Names returns a sorted list of all registered service names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Logger returns the logger the registry reports through.
func (r *Registry) Logger() *slog.Logger {
	return r.config.logger
}

// Lookup resolves name and asserts the provider to T.
// The boolean result is false when an optional service is absent or when the
// registered provider does not implement T. The latter is logged at debug
// level through the resolver's logger, if it has one.
func Lookup[T any](r ports.ServiceResolver, name string, optional bool) (T, bool, error) {
	var zero T
	service, err := r.GetService(name, optional)
	if err != nil {
		return zero, false, err
	}
	if service == nil {
		return zero, false, nil
	}
	typed, ok := service.(T)
	if !ok {
		want := fmt.Sprintf("%T", (*T)(nil))[1:]
		got := fmt.Sprintf("%T", service)
		if optional {
			resolverLogger(r).Debug("registry: optional service ignored, wrong type",
				"name", name, "want", want, "got", got)
			return zero, false, nil
		}
		return zero, false, &errors.ContractError{Capability: name, Want: want, Got: got}
	}
	return typed, true, nil
}

func resolverLogger(r ports.ServiceResolver) *slog.Logger {
	if l, ok := r.(interface{ Logger() *slog.Logger }); ok && l.Logger() != nil {
		return l.Logger()
	}
	return slog.Default()
}
