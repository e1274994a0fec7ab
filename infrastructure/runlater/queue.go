// Package runlater provides the FIFO queue behind the "runLater" capability.
package runlater

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// queueConfig holds configuration for a Queue.
type queueConfig struct {
	logger *slog.Logger
}

// QueueOption configures a Queue instance.
type QueueOption func(*queueConfig)

// WithLogger sets the logger that records recovered action panics.
func WithLogger(logger *slog.Logger) QueueOption {
	return func(c *queueConfig) {
		c.logger = logger
	}
}

// Queue holds deferred actions until the next Flush.
type Queue struct {
	config  queueConfig
	mu      sync.Mutex
	actions []func()
}

var (
	_ ports.RunLaterQueue   = (*Queue)(nil)
	_ ports.RunLaterFlusher = (*Queue)(nil)
)

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

// Enqueue appends action. Nil actions are ignored.
func (q *Queue) Enqueue(action func()) {
	if action == nil {
		return
	}
	q.mu.Lock()
	q.actions = append(q.actions, action)
	q.mu.Unlock()
}

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

// Flush runs pending actions in FIFO order until the queue is empty.
// Actions enqueued while flushing run in the same flush, after everything
// that was pending before them. A panicking action is recovered and the
// flush continues; the first panic is returned as an error.
//
// A panic carrying an *errors.FatalError is not recovered: the actions not
// yet run are put back at the front of the queue and the panic propagates.
func (q *Queue) Flush() error {
	var firstErr error
	for {
		batch := q.take()
		if len(batch) == 0 {
			return firstErr
		}
		for i, action := range batch {
			fatal, err := q.run(action)
			if fatal != nil {
				q.requeue(batch[i+1:])
				panic(fatal)
			}
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
}

// take removes and returns the actions pending right now.
func (q *Queue) take() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.actions
	q.actions = nil
	return batch
}

// requeue puts actions back ahead of anything enqueued since they were taken.
func (q *Queue) requeue(actions []func()) {
	if len(actions) == 0 {
		return
	}
	q.mu.Lock()
	q.actions = append(append([]func(){}, actions...), q.actions...)
	q.mu.Unlock()
}

func (q *Queue) run(action func()) (fatal *errors.FatalError, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rErr, ok := r.(error); ok {
			if stdErrors.As(rErr, &fatal) {
				return
			}
			err = fmt.Errorf("run-later action panicked: %w", rErr)
		} else {
			err = fmt.Errorf("run-later action panicked: %v", r)
		}
		q.config.logger.Error("runlater: action panicked", "panic", r)
	}()
	action()
	return nil, nil
}
