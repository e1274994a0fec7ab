package host

import (
	"log/slog"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/jsil-dev/host-sdk/go/host/registry"
)

// Host implements ports.Host over a service resolver.
type Host struct {
	services ports.ServiceResolver
	config   hostConfig
}

var _ ports.Host = (*Host)(nil)

// New creates a Host resolving providers from services.
func New(services ports.ServiceResolver, opts ...Option) *Host {
	cfg := defaultHostConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Host{services: services, config: cfg}
}

// Services returns the resolver the facade reads from.
func (h *Host) Services() ports.ServiceResolver {
	return h.services
}

// GetTime returns the current UTC time from the "time" service.
func (h *Host) GetTime() (time.Time, error) {
	svc, _, err := registry.Lookup[ports.TimeProvider](h.services, entities.CapabilityTime.String(), false)
	if err != nil {
		return time.Time{}, err
	}
	return svc.GetUTC(), nil
}

// GetTimezoneOffsetInMilliseconds returns the signed local offset from the "time" service.
func (h *Host) GetTimezoneOffsetInMilliseconds() (int64, error) {
	svc, _, err := registry.Lookup[ports.TimeProvider](h.services, entities.CapabilityTime.String(), false)
	if err != nil {
		return 0, err
	}
	return svc.GetTimezoneOffsetInMilliseconds(), nil
}

// GetTickCount returns the elapsed-milliseconds counter from the "time" service.
func (h *Host) GetTickCount() (float64, error) {
	svc, _, err := registry.Lookup[ports.TimeProvider](h.services, entities.CapabilityTime.String(), false)
	if err != nil {
		return 0, err
	}
	return svc.GetTickCount(), nil
}

// GetFileTime returns the current wall-clock time without consulting any
// service. It approximates a file timestamp and is not reproducible.
func (h *Host) GetFileTime() time.Time {
	return h.config.clock()
}

// GetCanvas returns the primary surface from the required "canvas" service.
// When both a width and a height are given the surface is sized to them,
// otherwise the provider's default size applies.
func (h *Host) GetCanvas(size ...int) (*entities.Surface, error) {
	svc, _, err := registry.Lookup[ports.CanvasProvider](h.services, entities.CapabilityCanvas.String(), false)
	if err != nil {
		return nil, err
	}
	width, height := 0, 0
	if len(size) >= 2 {
		width, height = size[0], size[1]
	}
	surface, err := svc.Get(width, height)
	if err != nil {
		return nil, &errors.ProviderError{Capability: entities.CapabilityCanvas.String(), Operation: "get", Err: err}
	}
	return surface, nil
}

// CreateCanvas always creates a new surface of the given size.
func (h *Host) CreateCanvas(width, height int) (*entities.Surface, error) {
	svc, _, err := registry.Lookup[ports.CanvasProvider](h.services, entities.CapabilityCanvas.String(), false)
	if err != nil {
		return nil, err
	}
	surface, err := svc.Create(width, height)
	if err != nil {
		return nil, &errors.ProviderError{Capability: entities.CapabilityCanvas.String(), Operation: "create", Err: err}
	}
	return surface, nil
}

// GetHeldKeys returns the held keys, or an empty slice without a "keyboard" service.
func (h *Host) GetHeldKeys() []string {
	svc, ok, _ := registry.Lookup[ports.KeyboardProvider](h.services, entities.CapabilityKeyboard.String(), true)
	if !ok {
		return []string{}
	}
	return svc.GetHeldKeys()
}

// GetMousePosition returns the cursor position, or the origin without a "mouse" service.
func (h *Host) GetMousePosition() entities.Point {
	svc, ok, _ := registry.Lookup[ports.MouseProvider](h.services, entities.CapabilityMouse.String(), true)
	if !ok {
		return entities.Origin
	}
	return svc.GetPosition()
}

// GetHeldMouseButtons returns the held buttons, or an empty slice without a "mouse" service.
func (h *Host) GetHeldMouseButtons() []int {
	svc, ok, _ := registry.Lookup[ports.MouseProvider](h.services, entities.CapabilityMouse.String(), true)
	if !ok {
		return []int{}
	}
	return svc.GetHeldButtons()
}

// IsPageVisible reports page visibility; without a "pageVisibility" service
// the page is assumed visible.
func (h *Host) IsPageVisible() bool {
	svc, ok, _ := registry.Lookup[ports.PageVisibilityProvider](h.services, entities.CapabilityPageVisibility.String(), true)
	if !ok {
		return true
	}
	return svc.Get()
}
