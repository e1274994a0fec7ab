package entities

// Surface is a drawable area handed out by a canvas provider.
type Surface struct {
	// ID uniquely identifies the surface within its provider.
	ID string `json:"id"`

	// Width in pixels.
	Width int `json:"width"`

	// Height in pixels.
	Height int `json:"height"`
}

// Point is a two-dimensional position, used for the mouse cursor.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the position reported when no mouse provider is registered.
var Origin = Point{}
