package ports

import "time"

// TimeProvider backs the "time" capability.
type TimeProvider interface {
	// GetUTC returns the current wall-clock time in UTC.
	GetUTC() time.Time

	// GetTickCount returns milliseconds elapsed since an implementation-defined epoch.
	// The value never decreases.
	GetTickCount() float64

	// GetTimezoneOffsetInMilliseconds returns local time minus UTC.
	GetTimezoneOffsetInMilliseconds() int64
}
