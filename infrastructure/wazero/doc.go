// Package wazero exposes a hostfuncs registry to WebAssembly guests running in
// the wazero runtime.
//
// Every handler is exported from a host module (default "jsil_host") using the
// packed i64 ABI: the guest passes ptr<<32|len of a JSON request and receives
// ptr<<32|len of a JSON response written into memory obtained from the guest's
// "allocate" export. WithModuleName and WithAllocator change both names.
//
// # Basic Usage
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware()),
//	    hostfuncs.WithBundle(hostfuncs.FacadeBundle(facade)),
//	)
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	err = jsilwazero.RegisterWithRuntime(ctx, runtime, registry)
//
// # Custom Handlers
//
// Functions that don't fit the request/response pattern, such as a fire and
// forget log call, are added with WithCustomHandler:
//
//	jsilwazero.RegisterWithRuntime(ctx, runtime, registry,
//	    jsilwazero.WithCustomHandler(jsilwazero.CustomHandler{
//	        Name:        "log_message",
//	        Handler:     logMessage,
//	        ParamTypes:  []api.ValueType{api.ValueTypeI64},
//	        ResultTypes: []api.ValueType{},
//	    }),
//	)
package wazero
