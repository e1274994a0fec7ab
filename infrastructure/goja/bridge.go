// Package goja installs the host facade into a goja JavaScript runtime.
//
// Install defines a global object (default "JSIL") with a Host property whose
// camelCase methods mirror the facade, and a queueInitCallback function bound
// to an init queue. Facade failures are thrown as JavaScript errors carrying
// the Go error message. Exceptions escaping a callback the host invokes later
// (run-later actions, tick and init callbacks) are forwarded to Abort.
package goja

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dop251/goja"
	"github.com/jsil-dev/host-sdk/go/application/initqueue"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// DefaultGlobalName is the global object Install populates.
const DefaultGlobalName = "JSIL"

// installConfig holds configuration for Install.
type installConfig struct {
	logger     *slog.Logger
	queue      *initqueue.Queue
	volumes    VolumeOpener
	globalName string
}

// InstallOption configures Install.
type InstallOption func(*installConfig)

// WithInitQueue binds JSIL.queueInitCallback to queue. Without it the
// function is not defined.
func WithInitQueue(queue *initqueue.Queue) InstallOption {
	return func(c *installConfig) {
		c.queue = queue
	}
}

// WithVolumes defines JSIL.Host.openVolume backed by opener.
func WithVolumes(opener VolumeOpener) InstallOption {
	return func(c *installConfig) {
		c.volumes = opener
	}
}

// WithGlobalName sets the global object name (default "JSIL").
func WithGlobalName(name string) InstallOption {
	return func(c *installConfig) {
		if name != "" {
			c.globalName = name
		}
	}
}

// WithLogger sets the logger for failures that cannot be thrown.
func WithLogger(logger *slog.Logger) InstallOption {
	return func(c *installConfig) {
		c.logger = logger
	}
}

type bridge struct {
	vm     *goja.Runtime
	host   ports.Host
	logger *slog.Logger
}

// Install defines the facade in vm. An existing global object of the same
// name is extended rather than replaced.
func Install(vm *goja.Runtime, h ports.Host, opts ...InstallOption) error {
	if vm == nil || h == nil {
		return fmt.Errorf("install requires a runtime and a host")
	}
	cfg := installConfig{globalName: DefaultGlobalName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	b := &bridge{vm: vm, host: h, logger: cfg.logger}

	global := vm.Get(cfg.globalName)
	var root *goja.Object
	if global == nil || goja.IsUndefined(global) || goja.IsNull(global) {
		root = vm.NewObject()
		if err := vm.Set(cfg.globalName, root); err != nil {
			return fmt.Errorf("failed to define %s: %w", cfg.globalName, err)
		}
	} else {
		root = global.ToObject(vm)
	}

	hostObj, err := b.hostObject()
	if err != nil {
		return fmt.Errorf("failed to define %s.Host: %w", cfg.globalName, err)
	}
	if cfg.volumes != nil {
		if err := hostObj.Set("openVolume", b.openVolume(cfg.volumes)); err != nil {
			return fmt.Errorf("failed to define %s.Host.openVolume: %w", cfg.globalName, err)
		}
	}
	if err := root.Set("Host", hostObj); err != nil {
		return fmt.Errorf("failed to define %s.Host: %w", cfg.globalName, err)
	}

	if cfg.queue != nil {
		queue := cfg.queue
		err := root.Set("queueInitCallback", func(call goja.FunctionCall) goja.Value {
			fn := b.callable(call.Argument(0))
			b.throwIf(queue.Enqueue(b.callback(fn)))
			return goja.Undefined()
		})
		if err != nil {
			return fmt.Errorf("failed to define %s.queueInitCallback: %w", cfg.globalName, err)
		}
	}
	return nil
}

func (b *bridge) hostObject() (*goja.Object, error) {
	obj := b.vm.NewObject()
	methods := map[string]func(goja.FunctionCall) goja.Value{
		"getTime": func(goja.FunctionCall) goja.Value {
			now, err := b.host.GetTime()
			b.throwIf(err)
			return b.vm.ToValue(now.UnixMilli())
		},
		"getTimezoneOffsetInMilliseconds": func(goja.FunctionCall) goja.Value {
			offset, err := b.host.GetTimezoneOffsetInMilliseconds()
			b.throwIf(err)
			return b.vm.ToValue(offset)
		},
		"getTickCount": func(goja.FunctionCall) goja.Value {
			ms, err := b.host.GetTickCount()
			b.throwIf(err)
			return b.vm.ToValue(ms)
		},
		"getFileTime": func(goja.FunctionCall) goja.Value {
			return b.vm.ToValue(b.host.GetFileTime().UnixMilli())
		},
		"getCanvas": func(call goja.FunctionCall) goja.Value {
			var size []int
			if len(call.Arguments) >= 2 {
				size = []int{int(call.Argument(0).ToInteger()), int(call.Argument(1).ToInteger())}
			}
			surface, err := b.host.GetCanvas(size...)
			b.throwIf(err)
			return b.vm.ToValue(map[string]any{"id": surface.ID, "width": surface.Width, "height": surface.Height})
		},
		"createCanvas": func(call goja.FunctionCall) goja.Value {
			surface, err := b.host.CreateCanvas(int(call.Argument(0).ToInteger()), int(call.Argument(1).ToInteger()))
			b.throwIf(err)
			return b.vm.ToValue(map[string]any{"id": surface.ID, "width": surface.Width, "height": surface.Height})
		},
		"getHeldKeys": func(goja.FunctionCall) goja.Value {
			keys := b.host.GetHeldKeys()
			items := make([]any, len(keys))
			for i, k := range keys {
				items[i] = k
			}
			return b.vm.NewArray(items...)
		},
		"getMousePosition": func(goja.FunctionCall) goja.Value {
			p := b.host.GetMousePosition()
			return b.vm.ToValue(map[string]any{"x": p.X, "y": p.Y})
		},
		"getHeldMouseButtons": func(goja.FunctionCall) goja.Value {
			buttons := b.host.GetHeldMouseButtons()
			items := make([]any, len(buttons))
			for i, btn := range buttons {
				items[i] = btn
			}
			return b.vm.NewArray(items...)
		},
		"isPageVisible": func(goja.FunctionCall) goja.Value {
			return b.vm.ToValue(b.host.IsPageVisible())
		},
		"runLater": func(call goja.FunctionCall) goja.Value {
			fn := b.callable(call.Argument(0))
			return b.vm.ToValue(b.host.RunLater(b.callback(fn)))
		},
		"runLaterFlush": func(goja.FunctionCall) goja.Value {
			flushed, err := b.host.RunLaterFlush()
			b.throwIf(err)
			return b.vm.ToValue(flushed)
		},
		"logWrite": func(call goja.FunctionCall) goja.Value {
			b.throwIf(b.host.LogWrite(call.Argument(0).String()))
			return goja.Undefined()
		},
		"logWriteLine": func(call goja.FunctionCall) goja.Value {
			b.throwIf(b.host.LogWriteLine(call.Argument(0).String()))
			return goja.Undefined()
		},
		"warning": func(call goja.FunctionCall) goja.Value {
			b.throwIf(b.host.Warning(call.Argument(0).String()))
			return goja.Undefined()
		},
		"abort": func(call goja.FunctionCall) goja.Value {
			extra := make([]string, 0, len(call.Arguments))
			for _, arg := range call.Arguments[min(1, len(call.Arguments)):] {
				extra = append(extra, arg.String())
			}
			b.throwIf(b.host.Abort(b.scriptError(call.Argument(0)), extra...))
			return goja.Undefined()
		},
		"assertionFailed": func(call goja.FunctionCall) goja.Value {
			var message []string
			if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
				message = append(message, arg.String())
			}
			b.throwIf(b.host.AssertionFailed(message...))
			return goja.Undefined()
		},
		"scheduleTick": func(call goja.FunctionCall) goja.Value {
			fn := b.callable(call.Argument(0))
			b.throwIf(b.host.ScheduleTick(b.callback(fn)))
			return goja.Undefined()
		},
		"reportPerformance": func(call goja.FunctionCall) goja.Value {
			b.host.ReportPerformance(
				millis(call.Argument(0).ToFloat()),
				millis(call.Argument(1).ToFloat()),
				int(call.Argument(2).ToInteger()),
				call.Argument(3).ToBoolean(),
			)
			return goja.Undefined()
		},
	}
	if err := defineMethods(obj, methods); err != nil {
		return nil, err
	}
	return obj, nil
}

// defineMethods sets each method on obj in name order, stopping at the first failure.
func defineMethods(obj *goja.Object, methods map[string]func(goja.FunctionCall) goja.Value) error {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := obj.Set(name, methods[name]); err != nil {
			return fmt.Errorf("method %s: %w", name, err)
		}
	}
	return nil
}

// callable asserts v is a function or throws a TypeError.
func (b *bridge) callable(v goja.Value) goja.Callable {
	fn, ok := goja.AssertFunction(v)
	if !ok {
		panic(b.vm.NewTypeError("callback must be a function"))
	}
	return fn
}

// callback adapts a script function to a Go callback. A script exception is
// forwarded to Abort.
func (b *bridge) callback(fn goja.Callable) func() {
	return func() {
		if _, err := fn(goja.Undefined()); err != nil {
			var exc *goja.Exception
			if stdErrors.As(err, &exc) {
				err = b.scriptError(exc.Value())
			}
			if abortErr := b.host.Abort(err); abortErr != nil {
				b.logger.Error("goja: callback failed", "error", abortErr)
			}
		}
	}
}

// throwIf throws err as a JavaScript Error.
func (b *bridge) throwIf(err error) {
	if err != nil {
		panic(b.vm.NewGoError(err))
	}
}

// scriptError converts an abort argument into an error, keeping the stack of
// Error objects.
func (b *bridge) scriptError(v goja.Value) error {
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if obj, ok := v.(*goja.Object); ok {
		if message := obj.Get("message"); message != nil && !goja.IsUndefined(message) {
			e := &jsError{message: message.String()}
			if stack := obj.Get("stack"); stack != nil && !goja.IsUndefined(stack) {
				e.stack = stack.String()
			}
			return e
		}
	}
	return stdErrors.New(v.String())
}

// jsError is a script failure with the script's own stack.
type jsError struct {
	message string
	stack   string
}

func (e *jsError) Error() string      { return e.message }
func (e *jsError) StackTrace() string { return e.stack }

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
