package ports

import "github.com/jsil-dev/host-sdk/go/domain/entities"

// KeyboardProvider backs the optional "keyboard" capability.
type KeyboardProvider interface {
	GetHeldKeys() []string
}

// MouseProvider backs the optional "mouse" capability.
type MouseProvider interface {
	GetPosition() entities.Point
	GetHeldButtons() []int
}

// PageVisibilityProvider backs the optional "pageVisibility" capability.
type PageVisibilityProvider interface {
	Get() bool
}
