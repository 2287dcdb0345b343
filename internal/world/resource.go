package world

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DefaultResourceValue is the yield of a freshly generated rock or tree.
const DefaultResourceValue = 100

// ResourceKind tags a Resource.
type ResourceKind uint8

const (
	ResourceRock ResourceKind = iota
	ResourceTree
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceRock:
		return "rock"
	case ResourceTree:
		return "tree"
	default:
		return fmt.Sprintf("ResourceKind(%d)", uint8(k))
	}
}

// Resource is a harvestable node sitting on a tile.
type Resource struct {
	Kind  ResourceKind
	X, Y  int // world tile coordinates of the host tile
	Chunk ChunkCoord
	Value int

	Image  image.Image
	Colour color.RGBA
}

func newResource(kind ResourceKind, t *Tile, value int, colour color.RGBA, imgs ImageSource) *Resource {
	r := &Resource{
		Kind:   kind,
		X:      t.X,
		Y:      t.Y,
		Chunk:  t.Chunk,
		Value:  value,
		Colour: colour,
	}
	if imgs != nil {
		r.Image, _ = imgs.Image(kind.String())
	}
	return r
}

// NewRock places a rock on t.
func NewRock(t *Tile, value int, imgs ImageSource) *Resource {
	return newResource(ResourceRock, t, value, color.RGBA{100, 100, 100, 255}, imgs)
}

// NewTree places a tree on t.
func NewTree(t *Tile, value int, imgs ImageSource) *Resource {
	return newResource(ResourceTree, t, value, color.RGBA{26, 109, 26, 255}, imgs)
}

// Local returns the host tile's indices inside its chunk.
func (r *Resource) Local() (int, int) {
	return LocalTile(r.X, r.Y)
}

// Draw paints the resource onto a chunk-local surface. Rocks sit on the
// tile's cell; trees centre their (larger) sprite on the cell centre.
func (r *Resource) Draw(dst draw.Image, mode RenderMode) error {
	switch mode {
	case ModeTiles:
		if r.Image == nil {
			return fmt.Errorf("%s at %d,%d: %w", r.Kind, r.X, r.Y, ErrMissingImage)
		}
		u, v := r.Local()
		b := r.Image.Bounds()
		pos := image.Pt(u*TileSize, v*TileSize)
		if r.Kind == ResourceTree {
			pos = pos.Add(image.Pt(TileSize/2-b.Dx()/2, TileSize/2-b.Dy()/2))
		}
		draw.Draw(dst, image.Rectangle{Min: pos, Max: pos.Add(b.Size())}, r.Image, b.Min, draw.Over)
	case ModePixels:
		u, v := r.Local()
		dst.Set(u, v, r.Colour)
	default:
		return unsupported(r.Kind.String(), mode)
	}
	return nil
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s (%d)", r.Kind, r.Value)
}
