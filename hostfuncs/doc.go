// Package hostfuncs exposes host facade operations as named JSON handlers.
//
// A HandlerRegistry is an immutable table of ByteHandlers built once with
// functional options. Each handler takes a JSON request and returns a JSON
// response; failures travel inside the response (an "error" member holding an
// ErrorResponse) rather than as Go errors, so a guest always receives a
// parseable answer. The package has no WebAssembly runtime dependency; see
// infrastructure/wazero for the adapter that exports a registry to guests.
//
// # Basic Usage
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithMiddleware(
//	        hostfuncs.PanicRecoveryMiddleware(),
//	        hostfuncs.CapabilityMiddleware(services, hostfuncs.FacadeCapabilities()),
//	    ),
//	    hostfuncs.WithBundle(hostfuncs.FacadeBundle(facade)),
//	)
//
//	resp, _ := registry.Invoke(ctx, "log_write_line", []byte(`{"text":"hello"}`))
package hostfuncs
