package hostfuncs

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// Empty is the request of functions that take no arguments.
type Empty struct{}

// StatusResponse reports whether a side-effecting call succeeded.
type StatusResponse struct {
	Error *ErrorResponse `json:"error,omitempty"`
	OK    bool           `json:"ok"`
}

// TimeResponse carries a wall-clock instant.
type TimeResponse struct {
	Error      *ErrorResponse `json:"error,omitempty"`
	RFC3339    string         `json:"rfc3339,omitempty"`
	UnixMillis int64          `json:"unix_ms"`
}

// TickCountResponse carries the elapsed-milliseconds counter.
type TickCountResponse struct {
	Error        *ErrorResponse `json:"error,omitempty"`
	Milliseconds float64        `json:"ms"`
}

// TimezoneOffsetResponse carries the local offset from UTC.
type TimezoneOffsetResponse struct {
	Error        *ErrorResponse `json:"error,omitempty"`
	OffsetMillis int64          `json:"offset_ms"`
}

// TextRequest carries text for the log and warning functions.
type TextRequest struct {
	Text string `json:"text"`
}

// AbortRequest describes an unrecoverable guest failure.
type AbortRequest struct {
	Message   string `json:"message"`
	ExtraInfo string `json:"extra_info,omitempty"`
	Stack     string `json:"stack,omitempty"`
}

// AssertionRequest carries an optional assertion message.
type AssertionRequest struct {
	Message string `json:"message,omitempty"`
}

// CanvasRequest carries optional surface dimensions.
type CanvasRequest struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// CanvasResponse carries a surface.
type CanvasResponse struct {
	Error   *ErrorResponse    `json:"error,omitempty"`
	Surface *entities.Surface `json:"surface,omitempty"`
}

// KeysResponse lists held keys.
type KeysResponse struct {
	Keys []string `json:"keys"`
}

// PositionResponse carries the cursor position.
type PositionResponse struct {
	Position entities.Point `json:"position"`
}

// ButtonsResponse lists held mouse buttons.
type ButtonsResponse struct {
	Buttons []int `json:"buttons"`
}

// VisibilityResponse reports page visibility.
type VisibilityResponse struct {
	Visible bool `json:"visible"`
}

// FlushResponse reports whether a run-later flush happened.
type FlushResponse struct {
	Error   *ErrorResponse `json:"error,omitempty"`
	Flushed bool           `json:"flushed"`
}

// PerformanceRequest carries one frame's timings.
type PerformanceRequest struct {
	DrawMillis   float64 `json:"draw_ms"`
	UpdateMillis float64 `json:"update_ms"`
	CacheSize    int     `json:"cache_size"`
	IsGPUPath    bool    `json:"is_gpu_path"`
}

// guestError is a failure reported by a guest, with the guest's own stack.
type guestError struct {
	message string
	stack   string
}

func (e *guestError) Error() string      { return e.message }
func (e *guestError) StackTrace() string { return e.stack }

// FacadeCapabilities maps each facade function to the required capability it
// needs. Functions backed by optional capabilities are absent.
func FacadeCapabilities() map[string]entities.Capability {
	return map[string]entities.Capability{
		"get_time":            entities.CapabilityTime,
		"get_tick_count":      entities.CapabilityTime,
		"get_timezone_offset": entities.CapabilityTime,
		"get_canvas":          entities.CapabilityCanvas,
		"create_canvas":       entities.CapabilityCanvas,
		"log_write":           entities.CapabilityStdout,
		"log_write_line":      entities.CapabilityStdout,
		"warning":             entities.CapabilityStderr,
		"abort":               entities.CapabilityStderr,
		"assertion_failed":    entities.CapabilityError,
	}
}

// FacadeBundle returns the facade operations a guest can call across a
// serialization boundary. Operations taking callbacks (runLater, scheduleTick)
// cannot cross it and are not included; run_later_flush drains callbacks the
// host side queued.
func FacadeBundle(h ports.Host) HostFuncBundle {
	return Bundle{
		"get_time": NewJSONHandler(func(_ context.Context, _ Empty) TimeResponse {
			now, err := h.GetTime()
			if err != nil {
				return TimeResponse{Error: FromError(err)}
			}
			return TimeResponse{UnixMillis: now.UnixMilli(), RFC3339: now.Format(time.RFC3339Nano)}
		}),
		"get_tick_count": NewJSONHandler(func(_ context.Context, _ Empty) TickCountResponse {
			ms, err := h.GetTickCount()
			return TickCountResponse{Milliseconds: ms, Error: FromError(err)}
		}),
		"get_timezone_offset": NewJSONHandler(func(_ context.Context, _ Empty) TimezoneOffsetResponse {
			offset, err := h.GetTimezoneOffsetInMilliseconds()
			return TimezoneOffsetResponse{OffsetMillis: offset, Error: FromError(err)}
		}),
		"get_file_time": NewJSONHandler(func(_ context.Context, _ Empty) TimeResponse {
			now := h.GetFileTime()
			return TimeResponse{UnixMillis: now.UnixMilli(), RFC3339: now.Format(time.RFC3339Nano)}
		}),
		"get_canvas": NewJSONHandler(func(_ context.Context, req CanvasRequest) CanvasResponse {
			surface, err := h.GetCanvas(req.Width, req.Height)
			return CanvasResponse{Surface: surface, Error: FromError(err)}
		}),
		"create_canvas": NewJSONHandler(func(_ context.Context, req CanvasRequest) CanvasResponse {
			surface, err := h.CreateCanvas(req.Width, req.Height)
			return CanvasResponse{Surface: surface, Error: FromError(err)}
		}),
		"log_write": NewJSONHandler(func(_ context.Context, req TextRequest) StatusResponse {
			return status(h.LogWrite(req.Text))
		}),
		"log_write_line": NewJSONHandler(func(_ context.Context, req TextRequest) StatusResponse {
			return status(h.LogWriteLine(req.Text))
		}),
		"warning": NewJSONHandler(func(_ context.Context, req TextRequest) StatusResponse {
			return status(h.Warning(req.Text))
		}),
		"abort": NewJSONHandler(func(_ context.Context, req AbortRequest) StatusResponse {
			message := req.Message
			if message == "" {
				message = "abort"
			}
			var failure error = &guestError{message: message, stack: req.Stack}
			if req.Stack == "" {
				failure = stdErrors.New(message)
			}
			if req.ExtraInfo != "" {
				return status(h.Abort(failure, req.ExtraInfo))
			}
			return status(h.Abort(failure))
		}),
		"assertion_failed": NewJSONHandler(func(_ context.Context, req AssertionRequest) StatusResponse {
			if req.Message == "" {
				return status(h.AssertionFailed())
			}
			return status(h.AssertionFailed(req.Message))
		}),
		"get_held_keys": NewJSONHandler(func(_ context.Context, _ Empty) KeysResponse {
			return KeysResponse{Keys: h.GetHeldKeys()}
		}),
		"get_mouse_position": NewJSONHandler(func(_ context.Context, _ Empty) PositionResponse {
			return PositionResponse{Position: h.GetMousePosition()}
		}),
		"get_held_mouse_buttons": NewJSONHandler(func(_ context.Context, _ Empty) ButtonsResponse {
			return ButtonsResponse{Buttons: h.GetHeldMouseButtons()}
		}),
		"is_page_visible": NewJSONHandler(func(_ context.Context, _ Empty) VisibilityResponse {
			return VisibilityResponse{Visible: h.IsPageVisible()}
		}),
		"run_later_flush": NewJSONHandler(func(_ context.Context, _ Empty) FlushResponse {
			flushed, err := h.RunLaterFlush()
			return FlushResponse{Flushed: flushed, Error: FromError(err)}
		}),
		"report_performance": NewJSONHandler(func(_ context.Context, req PerformanceRequest) StatusResponse {
			h.ReportPerformance(millis(req.DrawMillis), millis(req.UpdateMillis), req.CacheSize, req.IsGPUPath)
			return StatusResponse{OK: true}
		}),
	}
}

func status(err error) StatusResponse {
	return StatusResponse{OK: err == nil, Error: FromError(err)}
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
