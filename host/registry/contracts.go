package registry

import (
	"fmt"
	"reflect"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// contracts maps each known capability to the interface its provider must implement.
var contracts = map[entities.Capability]reflect.Type{
	entities.CapabilityTime:                reflect.TypeFor[ports.TimeProvider](),
	entities.CapabilityStdout:              reflect.TypeFor[ports.TextWriter](),
	entities.CapabilityStderr:              reflect.TypeFor[ports.TextWriter](),
	entities.CapabilityError:               reflect.TypeFor[ports.ErrorReporter](),
	entities.CapabilityCanvas:              reflect.TypeFor[ports.CanvasProvider](),
	entities.CapabilityKeyboard:            reflect.TypeFor[ports.KeyboardProvider](),
	entities.CapabilityMouse:               reflect.TypeFor[ports.MouseProvider](),
	entities.CapabilityPageVisibility:      reflect.TypeFor[ports.PageVisibilityProvider](),
	entities.CapabilityRunLater:            reflect.TypeFor[ports.RunLaterQueue](),
	entities.CapabilityTickScheduler:       reflect.TypeFor[ports.TickScheduler](),
	entities.CapabilityPerformanceReporter: reflect.TypeFor[ports.PerformanceReporter](),
	entities.CapabilityStorage:             reflect.TypeFor[ports.KVStore](),
}

// ContractFor returns the interface a provider for capability must implement.
// The boolean is false for capabilities the SDK does not know about.
func ContractFor(capability entities.Capability) (reflect.Type, bool) {
	t, ok := contracts[capability]
	return t, ok
}

// CheckContract verifies that service implements the interface of a known
// capability. Unknown capabilities are accepted unchecked.
func CheckContract(capability entities.Capability, service any) error {
	want, ok := contracts[capability]
	if !ok {
		return nil
	}
	got := reflect.TypeOf(service)
	if got == nil || !got.Implements(want) {
		return &errors.ContractError{
			Capability: capability.String(),
			Want:       want.String(),
			Got:        fmt.Sprintf("%T", service),
		}
	}
	return nil
}
