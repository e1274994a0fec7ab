package ports

import "time"

// RunLaterQueue backs the optional "runLater" capability.
type RunLaterQueue interface {
	Enqueue(action func())
}

// RunLaterFlusher is implemented by run-later queues that can be drained on demand.
// Flush must run every queued action, including actions enqueued while it runs,
// before returning.
type RunLaterFlusher interface {
	Flush() error
}

// TickScheduler backs the "tickScheduler" capability.
type TickScheduler interface {
	Schedule(callback func()) error
}

// PerformanceReporter backs the optional "performanceReporter" capability.
type PerformanceReporter interface {
	Report(draw, update time.Duration, cacheSize int, isGPUPath bool)
}
