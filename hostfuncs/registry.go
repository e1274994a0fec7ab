package hostfuncs

import (
	"context"
	"fmt"
	"sort"
)

// DefaultMaxRequestSize limits the size of incoming requests (1MB).
const DefaultMaxRequestSize = 1 * 1024 * 1024

// HandlerRegistry maps function names to middleware-wrapped handlers.
// The set is fixed by NewRegistry, so concurrent Invoke calls need no locking.
type HandlerRegistry struct {
	handlers       map[string]ByteHandler
	names          []string // sorted for consistent iteration
	maxRequestSize int
}

// registryBuilder collects handlers, middleware and option errors until NewRegistry seals them.
type registryBuilder struct {
	handlers       map[string]ByteHandler
	middleware     []Middleware
	errors         []error
	maxRequestSize int
}

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// NewRegistry builds a HandlerRegistry from opts.
// It fails with the first option error, such as a name exported twice.
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(FacadeBundle(facade)),
//	    WithHandler("echo", echo),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{
		handlers:       make(map[string]ByteHandler),
		maxRequestSize: DefaultMaxRequestSize,
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	// First middleware wraps outermost.
	wrapped := make(map[string]ByteHandler, len(b.handlers))
	for name, handler := range b.handlers {
		h := handler
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		wrapped[name] = h
	}

	return &HandlerRegistry{
		handlers:       wrapped,
		names:          names,
		maxRequestSize: b.maxRequestSize,
	}, nil
}

// Invoke runs the handler exported as name.
// Unknown names and oversized payloads produce an ErrorResponse JSON, not a Go error.
func (r *HandlerRegistry) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return NewNotFoundError(name).ToJSON(), nil
	}
	if len(payload) > r.maxRequestSize {
		msg := fmt.Sprintf("request size %d exceeds maximum %d bytes", len(payload), r.maxRequestSize)
		return NewValidationError(msg).ToJSON(), nil
	}

	return handler(CallContextFrom(ctx, name), payload)
}

// Has reports whether name is exported.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the exported names in sorted order.
func (r *HandlerRegistry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// MaxRequestSize returns the largest payload Invoke accepts.
func (r *HandlerRegistry) MaxRequestSize() int {
	return r.maxRequestSize
}

func (b *registryBuilder) addHandler(name string, handler ByteHandler) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler %q cannot be nil", name)
	}
	if _, exists := b.handlers[name]; exists {
		return fmt.Errorf("duplicate handler name: %q", name)
	}
	b.handlers[name] = handler
	return nil
}

// WithByteHandler exports handler as name.
func WithByteHandler(name string, handler ByteHandler) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addHandler(name, handler); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithHandler exports fn as name with JSON decoding and encoding around it.
func WithHandler[Req any, Resp any](name string, fn HostFunc[Req, Resp]) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addHandler(name, NewJSONHandler(fn)); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithBundle exports every handler of bundle. A name already taken is an error.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		handlers := bundle.Handlers()
		names := make([]string, 0, len(handlers))
		for name := range handlers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := b.addHandler(name, handlers[name]); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithMiddleware appends mw to the chain around every handler.
// Earlier middleware runs first, including across several WithMiddleware options.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithMaxRequestSize sets the largest payload Invoke accepts.
// Non-positive values keep DefaultMaxRequestSize.
func WithMaxRequestSize(size int) RegistryOption {
	return func(b *registryBuilder) {
		if size > 0 {
			b.maxRequestSize = size
		}
	}
}
