// Package initqueue provides the one-shot queue of initialization callbacks
// an environment runs once its assets have loaded.
package initqueue

import (
	stdErrors "errors"
	"log/slog"
	"sync"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
)

var errNilCallback = stdErrors.New("callback cannot be nil")

// queueConfig holds configuration for a Queue.
type queueConfig struct {
	logger *slog.Logger
}

// QueueOption configures a Queue instance.
type QueueOption func(*queueConfig)

// WithLogger sets the logger that records the run.
func WithLogger(logger *slog.Logger) QueueOption {
	return func(c *queueConfig) {
		c.logger = logger
	}
}

// Queue is an ordered list of callbacks drained exactly once.
// Once Run has started the queue is terminal: further Enqueue and Run calls
// fail with *errors.InitQueueError wrapping errors.ErrAlreadyRun.
type Queue struct {
	config    queueConfig
	mu        sync.Mutex
	callbacks []func()
	ran       bool
}

// New creates an empty Queue.
func New(opts ...QueueOption) *Queue {
	var cfg queueConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Queue{config: cfg}
}

// Enqueue appends fn to the queue.
func (q *Queue) Enqueue(fn func()) error {
	if fn == nil {
		return &errors.InitQueueError{Operation: "enqueue", Err: errNilCallback}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ran {
		return &errors.InitQueueError{Operation: "enqueue", Err: errors.ErrAlreadyRun}
	}
	q.callbacks = append(q.callbacks, fn)
	return nil
}

// Run invokes every queued callback in insertion order. Callbacks are run
// without holding the lock, so a callback may call Enqueue; it is rejected.
// A panicking callback propagates to the caller and the remaining callbacks
// are dropped.
func (q *Queue) Run() error {
	q.mu.Lock()
	if q.ran {
		q.mu.Unlock()
		return &errors.InitQueueError{Operation: "run", Err: errors.ErrAlreadyRun}
	}
	q.ran = true
	callbacks := q.callbacks
	q.callbacks = nil
	q.mu.Unlock()

	q.config.logger.Debug("initqueue: running init callbacks", "count", len(callbacks))
	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// Len returns the number of callbacks waiting for Run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.callbacks)
}

// Done reports whether Run has been called.
func (q *Queue) Done() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ran
}
