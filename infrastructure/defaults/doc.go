// Package defaults provides the fallback providers a host registers when no
// environment-specific service is available: a monotonic time service, a
// fail-fast fatal error service and stdout/stderr writers over io.Writer.
//
// The fatal error service panics. Environments that can present failures
// without tearing the process down register their own "error" provider, or
// use NewReturningErrorService, after Register.
package defaults
