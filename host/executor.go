package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jsil-dev/host-sdk/go/hostfuncs"
	jsilwazero "github.com/jsil-dev/host-sdk/go/infrastructure/wazero"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// executorConfig holds configuration for an Executor.
type executorConfig struct {
	logger     *slog.Logger
	registry   *hostfuncs.HandlerRegistry
	bundles    []hostfuncs.HostFuncBundle
	moduleName string
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorConfig)

// WithHandlerRegistry replaces the facade registry the executor exports.
func WithHandlerRegistry(reg *hostfuncs.HandlerRegistry) ExecutorOption {
	return func(c *executorConfig) {
		c.registry = reg
	}
}

// WithHostFunctions exports additional bundles next to the facade functions.
// Ignored when WithHandlerRegistry is set.
func WithHostFunctions(bundles ...hostfuncs.HostFuncBundle) ExecutorOption {
	return func(c *executorConfig) {
		c.bundles = append(c.bundles, bundles...)
	}
}

// WithHostModuleName sets the host module guests import from (default "jsil_host").
func WithHostModuleName(name string) ExecutorOption {
	return func(c *executorConfig) {
		c.moduleName = name
	}
}

// WithExecutorLogger sets the logger for host function and ABI failures.
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(c *executorConfig) {
		c.logger = logger
	}
}

// Executor runs WebAssembly guests against a facade.
type Executor struct {
	runtime  wazero.Runtime
	registry *hostfuncs.HandlerRegistry
}

// NewExecutor creates a wazero runtime with WASI and a host module exporting
// the facade functions of h.
func NewExecutor(ctx context.Context, h *Host, opts ...ExecutorOption) (*Executor, error) {
	if h == nil {
		return nil, fmt.Errorf("executor requires a host facade")
	}
	cfg := executorConfig{moduleName: jsilwazero.DefaultModuleName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = h.config.logger
	}

	if cfg.registry == nil {
		bundles := append([]hostfuncs.HostFuncBundle{hostfuncs.FacadeBundle(h)}, cfg.bundles...)
		reg, err := hostfuncs.NewRegistry(
			hostfuncs.WithMiddleware(
				hostfuncs.PanicRecoveryMiddleware(),
				hostfuncs.LoggingMiddleware(cfg.logger),
				hostfuncs.CapabilityMiddleware(h.Services(), hostfuncs.FacadeCapabilities()),
			),
			hostfuncs.WithBundle(hostfuncs.Combine(bundles...)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create facade registry: %w", err)
		}
		cfg.registry = reg
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}

	err := jsilwazero.RegisterWithRuntime(ctx, rt, cfg.registry,
		jsilwazero.WithModuleName(cfg.moduleName),
		jsilwazero.WithMaxRequestSize(uint32(cfg.registry.MaxRequestSize())), //nolint:gosec // G115: bounded by the registry
		jsilwazero.WithLogger(cfg.logger),
		jsilwazero.WithCustomHandler(jsilwazero.LogMessageHandler(h, cfg.logger)),
	)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return &Executor{runtime: rt, registry: cfg.registry}, nil
}

// Functions returns the names of the exported host functions, sorted.
func (e *Executor) Functions() []string {
	return e.registry.Names()
}

// Close releases the runtime and every guest instantiated in it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Guest is an instantiated WebAssembly module.
type Guest struct {
	module api.Module
}

// LoadGuest instantiates a WebAssembly module and runs its "_initialize"
// export when present.
func (e *Executor) LoadGuest(ctx context.Context, wasmBytes []byte) (*Guest, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate guest: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &Guest{module: mod}, nil
}

// Name returns the guest module name.
func (g *Guest) Name() string {
	return g.module.Name()
}

// Call invokes export name with input and returns the bytes of its packed
// ptr+len result. A zero result yields nil.
func (g *Guest) Call(ctx context.Context, name string, input []byte) ([]byte, error) {
	packed, err := g.callRaw(ctx, name, input)
	if err != nil {
		return nil, err
	}
	return g.readPacked(packed)
}

// CallJSON marshals req, calls export name and unmarshals the result into resp.
func (g *Guest) CallJSON(ctx context.Context, name string, req, resp any) error {
	input, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", name, err)
	}
	data, err := g.Call(ctx, name, input)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("null response from guest export %q", name)
	}
	return json.Unmarshal(data, resp)
}

// Close releases the guest module.
func (g *Guest) Close(ctx context.Context) error {
	return g.module.Close(ctx)
}

func (g *Guest) callRaw(ctx context.Context, name string, input []byte) (uint64, error) {
	f := g.module.ExportedFunction(name)
	if f == nil {
		return 0, fmt.Errorf("export %q not found", name)
	}

	var results []uint64
	var err error

	if len(input) == 0 {
		results, err = f.Call(ctx)
	} else {
		allocate := g.module.ExportedFunction("allocate")
		if allocate == nil {
			return 0, fmt.Errorf("guest does not export 'allocate'")
		}
		resAlloc, errAlloc := allocate.Call(ctx, uint64(len(input)))
		if errAlloc != nil {
			return 0, fmt.Errorf("failed to allocate in guest: %w", errAlloc)
		}
		if len(resAlloc) == 0 {
			return 0, fmt.Errorf("allocate returned no results")
		}
		ptr := uint32(resAlloc[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit
		if !g.module.Memory().Write(ptr, input) {
			return 0, fmt.Errorf("failed to write input to guest memory")
		}
		results, err = f.Call(ctx, uint64(ptr), uint64(len(input)))
	}

	if err != nil {
		return 0, fmt.Errorf("guest export %q failed: %w", name, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0], nil
}

func (g *Guest) readPacked(packed uint64) ([]byte, error) {
	ptr := uint32(packed >> 32) //nolint:gosec // G115: Packed format stores 32-bit values
	length := uint32(packed)    //nolint:gosec // G115: Packed format stores 32-bit values
	if ptr == 0 || length == 0 {
		return nil, nil
	}
	data, ok := g.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("failed to read response from guest memory")
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}
