// Package construction holds the buildings players place on tiles.
package construction

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/google/uuid"

	"township/internal/world"
)

// ErrNoTiles is returned when a stockpile is requested over an empty selection.
var ErrNoTiles = errors.New("stockpile needs at least one tile")

// TileRef addresses a tile by world tile coordinate.
type TileRef struct {
	X, Y int
}

// Stockpile is a storage area for gathered wood and stone.
type Stockpile struct {
	ID    uuid.UUID
	Tiles []TileRef
}

var stockpileTint = color.RGBA{120, 80, 30, 96}

// Kind implements world.Content.
func (s *Stockpile) Kind() string { return "stockpile" }

// Tint implements world.Content.
func (s *Stockpile) Tint() color.RGBA { return stockpileTint }

func (s *Stockpile) String() string {
	return fmt.Sprintf("stockpile %s (%d tiles)", s.ID.String()[:8], len(s.Tiles))
}

// NewStockpile covers tiles with a new stockpile, adding it to each tile's
// contents and marking the owning chunks dirty.
func NewStockpile(m *world.Map, tiles []*world.Tile) (*Stockpile, error) {
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}
	s := &Stockpile{ID: uuid.New()}
	for _, t := range tiles {
		t.AddContent(s)
		m.MarkDirty(t)
		s.Tiles = append(s.Tiles, TileRef{X: t.X, Y: t.Y})
	}
	return s, nil
}

// Ledger tracks the township's stockpiles.
type Ledger struct {
	mu         sync.Mutex
	stockpiles []*Stockpile
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddStockpile records s.
func (l *Ledger) AddStockpile(s *Stockpile) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stockpiles = append(l.stockpiles, s)
}

// Stockpiles returns a copy of the recorded stockpiles.
func (l *Ledger) Stockpiles() []*Stockpile {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Stockpile(nil), l.stockpiles...)
}
