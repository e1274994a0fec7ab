package host

import (
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/host/registry"
)

// RunLater defers action to the "runLater" queue. It reports false when no
// queue is registered or action is nil; the action is then not run.
func (h *Host) RunLater(action func()) bool {
	if action == nil {
		return false
	}
	svc, ok, _ := registry.Lookup[ports.RunLaterQueue](h.services, entities.CapabilityRunLater.String(), true)
	if !ok {
		return false
	}
	svc.Enqueue(action)
	return true
}

// RunLaterFlush drains the "runLater" queue, including actions enqueued by
// actions run during the flush. It reports false when no queue is registered
// or the queue cannot be flushed. A fatal failure raised by an action, such as
// an assertion reported to the fail-fast error service, propagates as a panic.
func (h *Host) RunLaterFlush() (bool, error) {
	svc, ok, _ := registry.Lookup[ports.RunLaterQueue](h.services, entities.CapabilityRunLater.String(), true)
	if !ok {
		return false, nil
	}
	flusher, ok := svc.(ports.RunLaterFlusher)
	if !ok {
		return false, nil
	}
	if err := flusher.Flush(); err != nil {
		return true, &errors.ProviderError{Capability: entities.CapabilityRunLater.String(), Operation: "flush", Err: err}
	}
	return true, nil
}

// ScheduleTick hands callback to the required "tickScheduler" service.
func (h *Host) ScheduleTick(callback func()) error {
	svc, _, err := registry.Lookup[ports.TickScheduler](h.services, entities.CapabilityTickScheduler.String(), false)
	if err != nil {
		return err
	}
	if err := svc.Schedule(callback); err != nil {
		return &errors.ProviderError{Capability: entities.CapabilityTickScheduler.String(), Operation: "schedule", Err: err}
	}
	return nil
}

// ReportPerformance forwards frame timings to the "performanceReporter" service, if any.
func (h *Host) ReportPerformance(draw, update time.Duration, cacheSize int, isGPUPath bool) {
	svc, ok, _ := registry.Lookup[ports.PerformanceReporter](h.services, entities.CapabilityPerformanceReporter.String(), true)
	if !ok {
		return
	}
	svc.Report(draw, update, cacheSize, isGPUPath)
}
