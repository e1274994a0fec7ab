package headless

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// Canvas is a CanvasProvider keeping surfaces in memory.
type Canvas struct {
	mu       sync.Mutex
	primary  entities.Surface
	surfaces map[string]entities.Surface
	order    []string
}

var _ ports.CanvasProvider = (*Canvas)(nil)

// NewCanvas creates a canvas whose primary surface has the given default size.
func NewCanvas(width, height int) *Canvas {
	primary := entities.Surface{ID: uuid.NewString(), Width: width, Height: height}
	return &Canvas{
		primary:  primary,
		surfaces: map[string]entities.Surface{primary.ID: primary},
		order:    []string{primary.ID},
	}
}

// Get returns the primary surface, resized first when width and height are
// both positive.
func (c *Canvas) Get(width, height int) (*entities.Surface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if width > 0 && height > 0 {
		c.primary.Width, c.primary.Height = width, height
		c.surfaces[c.primary.ID] = c.primary
	}
	surface := c.primary
	return &surface, nil
}

// Create allocates a new surface.
func (c *Canvas) Create(width, height int) (*entities.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	surface := entities.Surface{ID: uuid.NewString(), Width: width, Height: height}
	c.mu.Lock()
	c.surfaces[surface.ID] = surface
	c.order = append(c.order, surface.ID)
	c.mu.Unlock()
	return &surface, nil
}

// Surfaces returns every surface in creation order, primary first.
func (c *Canvas) Surfaces() []entities.Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entities.Surface, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.surfaces[id])
	}
	return out
}
