package entities

import "sort"

// Capability names an environment-provided function group that the host
// facade depends on. Providers are registered under these names.
type Capability string

// Known capabilities. The facade resolves each of them on every call.
const (
	CapabilityTime                Capability = "time"
	CapabilityStdout              Capability = "stdout"
	CapabilityStderr              Capability = "stderr"
	CapabilityError               Capability = "error"
	CapabilityCanvas              Capability = "canvas"
	CapabilityKeyboard            Capability = "keyboard"
	CapabilityMouse               Capability = "mouse"
	CapabilityPageVisibility      Capability = "pageVisibility"
	CapabilityRunLater            Capability = "runLater"
	CapabilityTickScheduler       Capability = "tickScheduler"
	CapabilityPerformanceReporter Capability = "performanceReporter"
	CapabilityStorage             Capability = "storage"
)

// String returns the registry key for the capability.
func (c Capability) String() string {
	return string(c)
}

// optionalCapabilities are capabilities whose absence the facade tolerates
// by returning a documented default value.
var optionalCapabilities = map[Capability]bool{
	CapabilityKeyboard:            true,
	CapabilityMouse:               true,
	CapabilityPageVisibility:      true,
	CapabilityRunLater:            true,
	CapabilityPerformanceReporter: true,
}

// IsOptional reports whether the facade degrades gracefully when no
// provider is registered for the capability.
func (c Capability) IsOptional() bool {
	return optionalCapabilities[c]
}

// KnownCapabilities returns every capability the facade understands, sorted by name.
func KnownCapabilities() []Capability {
	caps := []Capability{
		CapabilityTime,
		CapabilityStdout,
		CapabilityStderr,
		CapabilityError,
		CapabilityCanvas,
		CapabilityKeyboard,
		CapabilityMouse,
		CapabilityPageVisibility,
		CapabilityRunLater,
		CapabilityTickScheduler,
		CapabilityPerformanceReporter,
		CapabilityStorage,
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}
