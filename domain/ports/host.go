package ports

import (
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
)

// Host is the narrow operation set the generated runtime calls. Environment
// bridges (host functions, JavaScript engines) depend on this interface rather
// than on a concrete facade.
type Host interface {
	GetTime() (time.Time, error)
	GetTimezoneOffsetInMilliseconds() (int64, error)
	GetTickCount() (float64, error)
	GetFileTime() time.Time

	GetCanvas(size ...int) (*entities.Surface, error)
	CreateCanvas(width, height int) (*entities.Surface, error)

	GetHeldKeys() []string
	GetMousePosition() entities.Point
	GetHeldMouseButtons() []int
	IsPageVisible() bool

	RunLater(action func()) bool
	RunLaterFlush() (bool, error)

	LogWrite(text string) error
	LogWriteLine(text string) error
	Warning(text string) error
	Abort(err error, extraInfo ...string) error
	AssertionFailed(message ...string) error

	ScheduleTick(callback func()) error
	ReportPerformance(draw, update time.Duration, cacheSize int, isGPUPath bool)
}
