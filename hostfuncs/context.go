package hostfuncs

import (
	"context"
	"sync"
)

// CallContext is the context a registry passes down the middleware chain: the
// caller's context, the name of the function being called and a scratch area
// where one middleware can leave values for the next.
type CallContext interface {
	context.Context

	// Function is the name the guest called.
	Function() string

	// Set stores a value for the rest of the call.
	Set(key, value any)

	// Get returns a value stored with Set, then falls back to the parent context.
	Get(key any) (any, bool)
}

type callContext struct {
	context.Context
	function string

	mu      sync.Mutex
	scratch map[any]any
}

// NewCallContext starts a call to function under parent.
func NewCallContext(parent context.Context, function string) CallContext {
	return &callContext{Context: parent, function: function}
}

func (c *callContext) Function() string {
	return c.function
}

func (c *callContext) Set(key, value any) {
	c.mu.Lock()
	if c.scratch == nil {
		c.scratch = make(map[any]any)
	}
	c.scratch[key] = value
	c.mu.Unlock()
}

func (c *callContext) Get(key any) (any, bool) {
	c.mu.Lock()
	v, ok := c.scratch[key]
	c.mu.Unlock()
	if ok {
		return v, true
	}
	if v := c.Context.Value(key); v != nil {
		return v, true
	}
	return nil, false
}

// CallContextFrom reuses ctx when it already is a CallContext for function
// and starts a new call otherwise.
func CallContextFrom(ctx context.Context, function string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.Function() == function {
		return cc
	}
	return NewCallContext(ctx, function)
}

// FunctionFromContext returns the function name carried by a CallContext.
func FunctionFromContext(ctx context.Context) (string, bool) {
	if cc, ok := ctx.(CallContext); ok {
		return cc.Function(), true
	}
	return "", false
}
