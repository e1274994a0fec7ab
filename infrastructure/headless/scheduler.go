package headless

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// schedulerConfig holds configuration for a TickScheduler.
type schedulerConfig struct {
	logger   *slog.Logger
	interval time.Duration
}

// SchedulerOption configures a TickScheduler.
type SchedulerOption func(*schedulerConfig)

// WithInterval sets the pause between frames. Zero runs frames back to back.
func WithInterval(d time.Duration) SchedulerOption {
	return func(c *schedulerConfig) {
		if d >= 0 {
			c.interval = d
		}
	}
}

// WithSchedulerLogger sets the logger for frame diagnostics.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(c *schedulerConfig) {
		c.logger = logger
	}
}

// TickScheduler is a TickScheduler that runs callbacks when frames are driven
// with RunFrames. Callbacks scheduled while a frame runs wait for the next frame.
type TickScheduler struct {
	config  schedulerConfig
	mu      sync.Mutex
	pending []func()
	frame   int
}

var _ ports.TickScheduler = (*TickScheduler)(nil)

// NewTickScheduler creates a scheduler with no pending callbacks.
func NewTickScheduler(opts ...SchedulerOption) *TickScheduler {
	var cfg schedulerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &TickScheduler{config: cfg}
}

// Schedule queues callback for the next frame.
func (s *TickScheduler) Schedule(callback func()) error {
	if callback == nil {
		return fmt.Errorf("tick callback cannot be nil")
	}
	s.mu.Lock()
	s.pending = append(s.pending, callback)
	s.mu.Unlock()
	return nil
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Frame returns the number of frames run so far.
func (s *TickScheduler) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// RunFrames runs up to n frames and returns how many ran. It stops early with
// ctx.Err() when ctx is cancelled, checked before each frame and during the
// interval wait.
func (s *TickScheduler) RunFrames(ctx context.Context, n int) (int, error) {
	return s.RunFramesWith(ctx, n, nil)
}

// FrameHook runs after each frame's callbacks. A non-nil error stops the loop.
type FrameHook func(frame int) error

// RunFramesWith is RunFrames with a hook called after every frame.
func (s *TickScheduler) RunFramesWith(ctx context.Context, n int, after FrameHook) (int, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if i > 0 && s.config.interval > 0 {
			timer := time.NewTimer(s.config.interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return i, ctx.Err()
			case <-timer.C:
			}
		}
		frame := s.step()
		if after != nil {
			if err := after(frame); err != nil {
				return i + 1, err
			}
		}
	}
	return n, nil
}

// step runs the callbacks pending at the start of the frame.
func (s *TickScheduler) step() int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.frame++
	frame := s.frame
	s.mu.Unlock()

	s.config.logger.Debug("headless: frame", "frame", frame, "callbacks", len(batch))
	for _, callback := range batch {
		callback()
	}
	return frame
}
