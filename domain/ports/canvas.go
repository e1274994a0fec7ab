package ports

import "github.com/jsil-dev/host-sdk/go/domain/entities"

// CanvasProvider backs the "canvas" capability.
type CanvasProvider interface {
	// Get returns the primary surface. When width and height are both positive
	// the surface is sized to them, otherwise the provider's default size is used.
	Get(width, height int) (*entities.Surface, error)

	// Create always returns a new surface of the given size.
	Create(width, height int) (*entities.Surface, error)
}
