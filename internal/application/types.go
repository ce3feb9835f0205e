package application

import "tarjetitas/internal/domain"

// Re-export domain types for use by adapters
type (
	Card        = domain.Card
	Deck        = domain.Deck
	Tile        = domain.Tile
	Orientation = domain.Orientation
)

const (
	Front = domain.Front
	Back  = domain.Back
)

// ParseOrientation accepts "front"/"back" and the display labels
func ParseOrientation(s string) (Orientation, bool) {
	return domain.ParseOrientation(s)
}
