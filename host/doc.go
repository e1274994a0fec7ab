// Package host provides the host facade: one narrow operation per capability,
// each resolving its provider from a service registry on every call.
//
// Callers never hold a reference to a concrete provider, so an environment can
// swap providers (for example replacing the fail-fast error service) at any
// point and the next facade call picks the new one up. Required capabilities
// fail with *errors.ServiceUnavailableError when unregistered; optional ones
// fall back to documented defaults.
//
// The package also hosts the shell config Loader and the WebAssembly Executor,
// which exposes the facade to guests through the hostfuncs registry.
package host
