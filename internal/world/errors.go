package world

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedMode is returned by Draw methods for an unknown RenderMode.
	ErrUnsupportedMode = errors.New("unsupported render mode")
	// ErrMissingImage is returned when drawing in tiles mode without a resolved image.
	ErrMissingImage = errors.New("no image resolved")
)

// RenderMode selects how tiles, resources and chunks are drawn.
type RenderMode int

const (
	// ModeTiles draws full sprites, one TileSize cell per tile.
	ModeTiles RenderMode = iota
	// ModePixels draws one representative pixel per tile (minimap).
	ModePixels
)

func (m RenderMode) String() string {
	switch m {
	case ModeTiles:
		return "tiles"
	case ModePixels:
		return "pixels"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// ParseRenderMode parses "tiles" or "pixels".
func ParseRenderMode(s string) (RenderMode, error) {
	switch s {
	case "tiles":
		return ModeTiles, nil
	case "pixels":
		return ModePixels, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

func unsupported(what string, m RenderMode) error {
	return fmt.Errorf("%s: %w: %s", what, ErrUnsupportedMode, m)
}
