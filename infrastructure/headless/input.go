package headless

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// Keyboard is a KeyboardProvider with settable state.
type Keyboard struct {
	mu   sync.Mutex
	held []string
}

var _ ports.KeyboardProvider = (*Keyboard)(nil)

// Press marks key as held. Pressing a held key is a no-op.
func (k *Keyboard) Press(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !slices.Contains(k.held, key) {
		k.held = append(k.held, key)
	}
}

// Release clears key.
func (k *Keyboard) Release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held = slices.DeleteFunc(k.held, func(s string) bool { return s == key })
}

// GetHeldKeys returns the held keys in press order.
func (k *Keyboard) GetHeldKeys() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]string, len(k.held))
	copy(out, k.held)
	return out
}

// Mouse is a MouseProvider with settable state.
type Mouse struct {
	mu       sync.Mutex
	position entities.Point
	buttons  []int
}

var _ ports.MouseProvider = (*Mouse)(nil)

// MoveTo sets the cursor position.
func (m *Mouse) MoveTo(x, y int) {
	m.mu.Lock()
	m.position = entities.Point{X: x, Y: y}
	m.mu.Unlock()
}

// Press marks button as held.
func (m *Mouse) Press(button int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.buttons, button) {
		m.buttons = append(m.buttons, button)
	}
}

// Release clears button.
func (m *Mouse) Release(button int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons = slices.DeleteFunc(m.buttons, func(b int) bool { return b == button })
}

// GetPosition implements ports.MouseProvider.
func (m *Mouse) GetPosition() entities.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// GetHeldButtons returns the held buttons in press order.
func (m *Mouse) GetHeldButtons() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.buttons))
	copy(out, m.buttons)
	return out
}

// PageVisibility is a PageVisibilityProvider with a settable flag.
type PageVisibility struct {
	hidden atomic.Bool
}

var _ ports.PageVisibilityProvider = (*PageVisibility)(nil)

// NewPageVisibility creates a flag with the given initial visibility.
func NewPageVisibility(visible bool) *PageVisibility {
	v := &PageVisibility{}
	v.hidden.Store(!visible)
	return v
}

// SetVisible updates the flag.
func (v *PageVisibility) SetVisible(visible bool) {
	v.hidden.Store(!visible)
}

// Get implements ports.PageVisibilityProvider.
func (v *PageVisibility) Get() bool {
	return !v.hidden.Load()
}
