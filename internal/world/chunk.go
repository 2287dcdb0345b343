package world

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Chunk is a 16x16 block of tiles with the resources on them and cached
// renderings of both. The caches are valid only while the chunk is clean.
type Chunk struct {
	Coord ChunkCoord

	tiles [ChunkSize][ChunkSize]*Tile // indexed [u][v]
	rocks []*Resource
	trees []*Resource

	tiled   *image.RGBA // ChunkPixels x ChunkPixels
	pixels  *image.RGBA // ChunkSize x ChunkSize
	dirty   bool
	renders int
}

// NewChunk allocates the chunk surfaces, generates its content with gen and
// performs the initial render.
func NewChunk(coord ChunkCoord, gen *Generator) (*Chunk, error) {
	c := &Chunk{
		Coord:  coord,
		tiled:  image.NewRGBA(image.Rect(0, 0, ChunkPixels, ChunkPixels)),
		pixels: image.NewRGBA(image.Rect(0, 0, ChunkSize, ChunkSize)),
	}
	gen.PopulateChunk(c)
	if err := c.Render(); err != nil {
		return nil, fmt.Errorf("chunk %s: %w", coord, err)
	}
	c.dirty = false
	return c, nil
}

// Tile returns the tile at chunk-local indices u, v in [0, ChunkSize).
func (c *Chunk) Tile(u, v int) *Tile {
	if u < 0 || u >= ChunkSize || v < 0 || v >= ChunkSize {
		return nil
	}
	return c.tiles[u][v]
}

// Rocks returns the rocks placed in the chunk.
func (c *Chunk) Rocks() []*Resource {
	return c.rocks
}

// Trees returns the trees placed in the chunk.
func (c *Chunk) Trees() []*Resource {
	return c.trees
}

// ResourcesAt returns the resources on the tile at local indices u, v.
func (c *Chunk) ResourcesAt(u, v int) []*Resource {
	var out []*Resource
	for _, list := range [][]*Resource{c.rocks, c.trees} {
		for _, r := range list {
			if ru, rv := r.Local(); ru == u && rv == v {
				out = append(out, r)
			}
		}
	}
	return out
}

// MarkDirty forces a full re-render on the next Draw.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// IsDirty reports whether the cached surfaces are stale.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// RenderCount is the number of full repaints performed so far.
func (c *Chunk) RenderCount() int {
	return c.renders
}

// Pinned reports whether the chunk holds player state (a selected tile or
// placed content) that regeneration would lose.
func (c *Chunk) Pinned() bool {
	for u := range c.tiles {
		for _, t := range c.tiles[u] {
			if t.Selected || len(t.Contents) > 0 {
				return true
			}
		}
	}
	return false
}

// TiledSurface returns the cached full-size rendering.
func (c *Chunk) TiledSurface() *image.RGBA {
	return c.tiled
}

// PixelSurface returns the cached one-pixel-per-tile rendering.
func (c *Chunk) PixelSurface() *image.RGBA {
	return c.pixels
}

// Render repaints both surfaces from scratch: terrain, then rocks, then trees.
func (c *Chunk) Render() error {
	blank := image.NewUniform(color.Transparent)
	draw.Draw(c.tiled, c.tiled.Bounds(), blank, image.Point{}, draw.Src)
	draw.Draw(c.pixels, c.pixels.Bounds(), blank, image.Point{}, draw.Src)

	for u := range c.tiles {
		for _, t := range c.tiles[u] {
			if err := t.Draw(c.tiled, ModeTiles); err != nil {
				return err
			}
			if err := t.Draw(c.pixels, ModePixels); err != nil {
				return err
			}
		}
	}
	for _, list := range [][]*Resource{c.rocks, c.trees} {
		for _, r := range list {
			if err := r.Draw(c.tiled, ModeTiles); err != nil {
				return err
			}
			if err := r.Draw(c.pixels, ModePixels); err != nil {
				return err
			}
		}
	}
	c.renders++
	return nil
}

// Draw blits the cached surface for mode onto dst at the chunk's position
// plus the offset, re-rendering first if the chunk is dirty.
func (c *Chunk) Draw(dst draw.Image, xOff, yOff int, mode RenderMode) error {
	var (
		src  *image.RGBA
		edge int
	)
	switch mode {
	case ModeTiles:
		src, edge = c.tiled, ChunkPixels
	case ModePixels:
		src, edge = c.pixels, ChunkSize
	default:
		return unsupported("chunk "+c.Coord.String(), mode)
	}

	if c.dirty {
		if err := c.Render(); err != nil {
			return fmt.Errorf("chunk %s: %w", c.Coord, err)
		}
		c.dirty = false
	}

	pos := image.Pt(c.Coord.X*edge+xOff, c.Coord.Y*edge+yOff)
	draw.Draw(dst, image.Rectangle{Min: pos, Max: pos.Add(src.Bounds().Size())}, src, image.Point{}, draw.Over)
	return nil
}

func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk%s", c.Coord)
}
