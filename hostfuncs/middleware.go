package hostfuncs

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// Middleware wraps a ByteHandler. The first middleware given to a registry is
// the outermost layer.
type Middleware func(next ByteHandler) ByteHandler

// PanicRecoveryMiddleware answers a panicking handler with an INTERNAL_ERROR
// response. With the fail-fast error service registered, a guest's abort or
// failed assertion arrives here as a *errors.FatalError panic.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp, err = NewPanicError(r).ToJSON(), nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware logs each call at debug level and handler errors at error level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			funcName := functionName(ctx)
			start := time.Now()
			logger.DebugContext(ctx, "hostfuncs: invoking", "function", funcName, "request_bytes", len(payload))

			resp, err := next(ctx, payload)
			if err != nil {
				logger.ErrorContext(ctx, "hostfuncs: handler failed", "function", funcName, "error", err)
			} else {
				logger.DebugContext(ctx, "hostfuncs: completed", "function", funcName, "duration", time.Since(start))
			}
			return resp, err
		}
	}
}

// CapabilityMiddleware short-circuits calls to functions whose required
// capability has no provider in resolver, answering SERVICE_UNAVAILABLE.
// Functions missing from required pass through unchecked.
func CapabilityMiddleware(resolver ports.ServiceResolver, required map[string]entities.Capability) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			capability, ok := required[functionName(ctx)]
			if !ok {
				return next(ctx, payload)
			}
			svc, err := resolver.GetService(capability.String(), true)
			if err != nil || svc == nil {
				return NewServiceUnavailableError(capability.String()).ToJSON(), nil
			}
			return next(ctx, payload)
		}
	}
}

func functionName(ctx context.Context) string {
	if name, ok := FunctionFromContext(ctx); ok {
		return name
	}
	return "unknown"
}
