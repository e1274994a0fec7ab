package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsil-dev/host-sdk/go/hostfuncs"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// DefaultModuleName is the host module guests import facade functions from.
const DefaultModuleName = "jsil_host"

// DefaultAllocator is the guest export that hands out response memory.
const DefaultAllocator = "allocate"

// adapterConfig holds configuration for RegisterWithRuntime.
type adapterConfig struct {
	logger         *slog.Logger
	moduleName     string
	allocator      string
	maxRequestSize uint32
	custom         []CustomHandler
}

func defaultAdapterConfig() adapterConfig {
	return adapterConfig{
		moduleName:     DefaultModuleName,
		allocator:      DefaultAllocator,
		maxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// CustomHandler is a raw wazero function exported next to the registry's
// handlers, for calls that do not return a JSON response.
type CustomHandler struct {
	Name        string
	Handler     api.GoModuleFunc
	ParamTypes  []api.ValueType
	ResultTypes []api.ValueType
}

// AdapterOption configures RegisterWithRuntime.
type AdapterOption func(*adapterConfig)

// WithModuleName sets the host module name (default "jsil_host").
func WithModuleName(name string) AdapterOption {
	return func(c *adapterConfig) {
		if name != "" {
			c.moduleName = name
		}
	}
}

// WithAllocator sets the guest export used to allocate response memory.
func WithAllocator(export string) AdapterOption {
	return func(c *adapterConfig) {
		if export != "" {
			c.allocator = export
		}
	}
}

// WithMaxRequestSize caps the request a guest may pass. Larger requests get a
// VALIDATION_ERROR response without being read.
func WithMaxRequestSize(size uint32) AdapterOption {
	return func(c *adapterConfig) {
		c.maxRequestSize = size
	}
}

// WithCustomHandler exports h from the host module.
func WithCustomHandler(h CustomHandler) AdapterOption {
	return func(c *adapterConfig) {
		c.custom = append(c.custom, h)
	}
}

// WithLogger sets the logger for calls whose response cannot be delivered.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(c *adapterConfig) {
		c.logger = logger
	}
}

// RegisterWithRuntime instantiates a host module in runtime exporting every
// handler of registry as func(i64) i64. The argument is the span of a JSON
// request in guest memory; the result is the span of the JSON response, or 0
// when it could not be written back.
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *hostfuncs.HandlerRegistry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	x := &exporter{config: cfg, registry: registry}
	builder := runtime.NewHostModuleBuilder(cfg.moduleName)
	for _, name := range registry.Names() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(x.function(name), []api.ValueType{api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}).
			Export(name)
	}
	for _, h := range cfg.custom {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(h.Handler, h.ParamTypes, h.ResultTypes).
			Export(h.Name)
	}

	if _, err := builder.Instantiate(ctx); err != nil {
		return fmt.Errorf("failed to instantiate host module %q: %w", cfg.moduleName, err)
	}
	return nil
}

type exporter struct {
	config   adapterConfig
	registry *hostfuncs.HandlerRegistry
}

func (x *exporter) function(name string) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		ctx = WithGuestName(ctx, GetGuestName(ctx, mod))
		stack[0] = x.respond(ctx, mod, name, x.call(ctx, mod, name, decodeSpan(stack[0])))
	}
}

// call produces the response bytes for one guest call. ABI failures become
// error responses so the guest always has something to decode.
func (x *exporter) call(ctx context.Context, mod api.Module, name string, req span) []byte {
	if req.length > x.config.maxRequestSize {
		msg := fmt.Sprintf("request of %d bytes exceeds the %d byte limit", req.length, x.config.maxRequestSize)
		return hostfuncs.NewValidationError(msg).ToJSON()
	}
	payload, ok := req.read(mod)
	if !ok {
		msg := fmt.Sprintf("request span %d+%d is outside guest memory", req.offset, req.length)
		return hostfuncs.NewValidationError(msg).ToJSON()
	}
	resp, err := x.registry.Invoke(ctx, name, payload)
	if err != nil {
		x.config.logger.ErrorContext(ctx, "wazero: handler failed", "function", name, "error", err)
		return hostfuncs.NewInternalError(err.Error()).ToJSON()
	}
	return resp
}

func (x *exporter) respond(ctx context.Context, mod api.Module, name string, resp []byte) uint64 {
	out, err := deliver(ctx, mod, x.config.allocator, resp)
	if err != nil {
		x.config.logger.ErrorContext(ctx, "wazero: response dropped",
			"function", name, "guest", mod.Name(), "error", err)
		return 0
	}
	return out.encode()
}
