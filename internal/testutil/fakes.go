package testutil

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
)

// RecordingWriter is a TextWriter that keeps every write.
type RecordingWriter struct {
	mu     sync.Mutex
	writes []string
	// Err, when set, is returned by every Write after recording it.
	Err error
}

// Write implements ports.TextWriter.
func (w *RecordingWriter) Write(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, text)
	return w.Err
}

// Writes returns a copy of the recorded writes.
func (w *RecordingWriter) Writes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.writes))
	copy(out, w.writes)
	return out
}

// String returns all writes concatenated.
func (w *RecordingWriter) String() string {
	return strings.Join(w.Writes(), "")
}

// FailingWriter fails the writes whose 1-based index is listed in FailOn.
type FailingWriter struct {
	RecordingWriter
	FailOn map[int]bool
	calls  int
}

// Write implements ports.TextWriter.
func (w *FailingWriter) Write(text string) error {
	w.calls++
	if w.FailOn[w.calls] {
		return fmt.Errorf("write %d failed", w.calls)
	}
	return w.RecordingWriter.Write(text)
}

// StaticClock is a TimeProvider returning fixed values.
type StaticClock struct {
	UTC    time.Time
	Ticks  float64
	Offset int64
}

// GetUTC implements ports.TimeProvider.
func (c *StaticClock) GetUTC() time.Time { return c.UTC }

// GetTickCount implements ports.TimeProvider.
func (c *StaticClock) GetTickCount() float64 { return c.Ticks }

// GetTimezoneOffsetInMilliseconds implements ports.TimeProvider.
func (c *StaticClock) GetTimezoneOffsetInMilliseconds() int64 { return c.Offset }

// RecordingErrorReporter is an ErrorReporter that keeps every reported error
// and returns Result from Error.
type RecordingErrorReporter struct {
	Reported []error
	Result   error
}

// Error implements ports.ErrorReporter.
func (r *RecordingErrorReporter) Error(err error) error {
	r.Reported = append(r.Reported, err)
	return r.Result
}

// FakeCanvas is a CanvasProvider that records requested sizes.
type FakeCanvas struct {
	DefaultWidth, DefaultHeight int
	Calls                       []string
}

// Get implements ports.CanvasProvider.
func (c *FakeCanvas) Get(width, height int) (*entities.Surface, error) {
	c.Calls = append(c.Calls, fmt.Sprintf("get(%d,%d)", width, height))
	if width > 0 && height > 0 {
		return &entities.Surface{ID: "primary", Width: width, Height: height}, nil
	}
	return &entities.Surface{ID: "primary", Width: c.DefaultWidth, Height: c.DefaultHeight}, nil
}

// Create implements ports.CanvasProvider.
func (c *FakeCanvas) Create(width, height int) (*entities.Surface, error) {
	c.Calls = append(c.Calls, fmt.Sprintf("create(%d,%d)", width, height))
	return &entities.Surface{ID: fmt.Sprintf("surface-%d", len(c.Calls)), Width: width, Height: height}, nil
}

// FakeMouse is a MouseProvider with fixed state.
type FakeMouse struct {
	Position entities.Point
	Buttons  []int
}

// GetPosition implements ports.MouseProvider.
func (m *FakeMouse) GetPosition() entities.Point { return m.Position }

// GetHeldButtons implements ports.MouseProvider.
func (m *FakeMouse) GetHeldButtons() []int { return m.Buttons }

// FakeKeyboard is a KeyboardProvider with fixed state.
type FakeKeyboard struct {
	Keys []string
}

// GetHeldKeys implements ports.KeyboardProvider.
func (k *FakeKeyboard) GetHeldKeys() []string { return k.Keys }

// StaticVisibility is a PageVisibilityProvider.
type StaticVisibility bool

// Get implements ports.PageVisibilityProvider.
func (v StaticVisibility) Get() bool { return bool(v) }

// EnqueueOnly is a run-later queue without flush support.
type EnqueueOnly struct {
	Actions []func()
}

// Enqueue implements ports.RunLaterQueue.
func (q *EnqueueOnly) Enqueue(action func()) {
	q.Actions = append(q.Actions, action)
}

// RecordingScheduler is a TickScheduler that keeps scheduled callbacks.
type RecordingScheduler struct {
	Callbacks []func()
}

// Schedule implements ports.TickScheduler.
func (s *RecordingScheduler) Schedule(callback func()) error {
	s.Callbacks = append(s.Callbacks, callback)
	return nil
}

// RecordingReporter is a PerformanceReporter that keeps every sample.
type RecordingReporter struct {
	Samples []entities.PerformanceSample
}

// Report implements ports.PerformanceReporter.
func (r *RecordingReporter) Report(draw, update time.Duration, cacheSize int, isGPUPath bool) {
	r.Samples = append(r.Samples, entities.PerformanceSample{Draw: draw, Update: update, CacheSize: cacheSize, IsGPUPath: isGPUPath})
}
