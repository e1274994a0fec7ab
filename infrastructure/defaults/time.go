package defaults

import (
	"math"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// TimeService implements ports.TimeProvider from the process clocks.
type TimeService struct {
	start    time.Time
	now      func() time.Time
	location *time.Location
}

var _ ports.TimeProvider = (*TimeService)(nil)

// TimeOption configures a TimeService.
type TimeOption func(*TimeService)

// WithClock replaces time.Now. The clock must carry a monotonic reading for
// GetTickCount to be immune to wall-clock changes.
func WithClock(now func() time.Time) TimeOption {
	return func(s *TimeService) {
		s.now = now
	}
}

// WithLocation sets the zone used for the timezone offset (default time.Local).
func WithLocation(loc *time.Location) TimeOption {
	return func(s *TimeService) {
		s.location = loc
	}
}

// NewTimeService creates a TimeService whose tick count starts at construction.
func NewTimeService(opts ...TimeOption) *TimeService {
	s := &TimeService{now: time.Now, location: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	s.start = s.now()
	return s
}

// GetUTC returns the current wall-clock time in UTC.
func (s *TimeService) GetUTC() time.Time {
	return s.now().UTC()
}

// GetTickCount returns milliseconds since construction, rounded to two decimals.
func (s *TimeService) GetTickCount() float64 {
	elapsed := s.now().Sub(s.start)
	ms := float64(elapsed) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}

// GetTimezoneOffsetInMilliseconds returns local time minus UTC in milliseconds.
// Zones east of Greenwich are positive.
func (s *TimeService) GetTimezoneOffsetInMilliseconds() int64 {
	_, offset := s.now().In(s.location).Zone()
	return int64(offset) * 1000
}
