package world

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/draw"

	"township/internal/profiling"
)

// Options controls map construction.
type Options struct {
	Width, Height int  // initial chunk block, centred on the origin
	Generate      bool // pre-generate the initial block
	EvictRadius   int  // chunks beyond this distance from the view are dropped; 0 keeps everything
}

// DefaultOptions returns a 10x10 initial block with eviction disabled.
func DefaultOptions() Options {
	return Options{Width: 10, Height: 10, Generate: true}
}

// Map is the sparse, unbounded set of loaded chunks for one seed.
// It is driven from a single goroutine: Update, then Draw, once per frame.
type Map struct {
	seed     int64
	gen      *Generator
	store    *ChunkStore
	streamer *ChunkStreamer

	renderSet   map[ChunkCoord]struct{}
	evictRadius int
}

// NewMap derives the noise channels from seed and optionally generates the
// initial chunk block in parallel.
func NewMap(ctx context.Context, seed int64, imgs ImageSource, opts Options) (*Map, error) {
	gen := NewGenerator(seed, imgs)
	store := NewChunkStore()
	m := &Map{
		seed:        seed,
		gen:         gen,
		store:       store,
		streamer:    NewChunkStreamer(store, gen),
		renderSet:   make(map[ChunkCoord]struct{}),
		evictRadius: max(opts.EvictRadius, 0),
	}
	if opts.Generate {
		if err := m.streamer.Prefetch(ctx, initialBlock(opts.Width, opts.Height)); err != nil {
			return nil, fmt.Errorf("generate initial chunks: %w", err)
		}
		slog.Info("initial chunks generated", "seed", seed, "chunks", m.store.Len())
	}
	return m, nil
}

// initialBlock lists the chunk coordinates [-w/2, w/2) x [-h/2, h/2),
// halves rounded toward negative infinity.
func initialBlock(w, h int) []ChunkCoord {
	var coords []ChunkCoord
	for cx := floorDiv(-w, 2); cx < floorDiv(w, 2); cx++ {
		for cy := floorDiv(-h, 2); cy < floorDiv(h, 2); cy++ {
			coords = append(coords, ChunkCoord{X: cx, Y: cy})
		}
	}
	return coords
}

// Seed returns the map seed.
func (m *Map) Seed() int64 {
	return m.seed
}

// Generator returns the map's noise channels.
func (m *Map) Generator() *Generator {
	return m.gen
}

// EvictRadius returns the configured eviction radius; 0 means chunks are
// never dropped.
func (m *Map) EvictRadius() int {
	return m.evictRadius
}

// LoadedChunks returns the number of chunks in memory.
func (m *Map) LoadedChunks() int {
	return m.store.Len()
}

// Chunk returns the loaded chunk at coord without generating it.
func (m *Map) Chunk(coord ChunkCoord) *Chunk {
	return m.store.Get(coord)
}

// LocateChunk returns the chunk containing world pixel (px, py),
// generating it if necessary.
func (m *Map) LocateChunk(px, py int) (*Chunk, error) {
	return m.chunk(ChunkCoordForPixel(px, py))
}

func (m *Map) chunk(coord ChunkCoord) (*Chunk, error) {
	if c := m.store.Get(coord); c != nil {
		return c, nil
	}
	c, err := m.streamer.GenerateSync(coord)
	if err != nil {
		return nil, err
	}
	slog.Debug("chunk generated", "coord", coord, "rocks", len(c.rocks), "trees", len(c.trees))
	return c, nil
}

// Tile returns the tile under world pixel (px, py).
func (m *Map) Tile(px, py int) (*Tile, error) {
	tx, ty := PixelToTile(px, py)
	return m.TileAt(tx, ty)
}

// TileAt returns the tile at world tile coordinate (tx, ty).
func (m *Map) TileAt(tx, ty int) (*Tile, error) {
	c, err := m.chunk(ChunkCoordForTile(tx, ty))
	if err != nil {
		return nil, err
	}
	return c.Tile(LocalTile(tx, ty)), nil
}

// ResourcesAt returns the resources on the tile under world pixel (px, py).
func (m *Map) ResourcesAt(px, py int) ([]*Resource, error) {
	tx, ty := PixelToTile(px, py)
	c, err := m.chunk(ChunkCoordForTile(tx, ty))
	if err != nil {
		return nil, err
	}
	return c.ResourcesAt(LocalTile(tx, ty)), nil
}

// MarkDirty flags the chunk owning t for re-render.
func (m *Map) MarkDirty(t *Tile) {
	if c := m.store.Get(t.Chunk); c != nil {
		c.MarkDirty()
	}
}

// TileInfo describes the tile under world pixel (px, py).
func (m *Map) TileInfo(px, py int) (string, error) {
	t, err := m.Tile(px, py)
	if err != nil {
		return "", err
	}
	res, err := m.ResourcesAt(px, py)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(res))
	for _, r := range res {
		names = append(names, r.String())
	}
	resources := "none"
	if len(names) > 0 {
		resources = strings.Join(names, ", ")
	}
	return fmt.Sprintf("Tile: (%d, %d)\nType: %s\nHeight: %dm\nResources: %s",
		t.X, t.Y, capitalize(t.Terrain.String()), t.HeightMetres(), resources), nil
}

// Update recomputes the render set for a viewW x viewH view scrolled by
// (xOff, yOff), generating any chunk that comes into view, then evicts
// chunks beyond the eviction radius.
func (m *Map) Update(viewW, viewH, xOff, yOff int) error {
	defer profiling.Track("world.Update")()

	set := make(map[ChunkCoord]struct{}, len(m.renderSet))
	for x := -xOff; x < -xOff+viewW+ChunkPixels; x += ChunkPixels {
		for y := -yOff; y < -yOff+viewH+ChunkPixels; y += ChunkPixels {
			c, err := m.LocateChunk(x, y)
			if err != nil {
				return err
			}
			set[c.Coord] = struct{}{}
		}
	}
	m.renderSet = set

	if m.evictRadius > 0 {
		m.EvictAround(ChunkCoordForPixel(-xOff+viewW/2, -yOff+viewH/2), m.evictRadius)
	}
	return nil
}

// EvictAround drops loaded chunks farther than radius (Chebyshev, in
// chunks) from center. Chunks in the render set and pinned chunks stay.
// Returns the number of chunks removed.
func (m *Map) EvictAround(center ChunkCoord, radius int) int {
	removed := m.store.EvictFarChunks(center, radius, func(c ChunkCoord) bool {
		_, visible := m.renderSet[c]
		return visible
	})
	if removed > 0 {
		slog.Debug("chunks evicted",
			"center", center,
			"removed", removed,
			"loaded", m.store.Len(),
			"cache", humanize.Bytes(uint64(m.store.Len())*chunkSurfaceBytes),
		)
	}
	return removed
}

// chunkSurfaceBytes is the memory held by one chunk's cached surfaces.
const chunkSurfaceBytes = 4 * (ChunkPixels*ChunkPixels + ChunkSize*ChunkSize)

// RenderSet returns the chunk coordinates drawn by the last Update, ordered
// by row, then column.
func (m *Map) RenderSet() []ChunkCoord {
	chunks := m.renderChunks()
	out := make([]ChunkCoord, len(chunks))
	for i, c := range chunks {
		out[i] = c.Coord
	}
	return out
}

func (m *Map) renderChunks() []*Chunk {
	chunks := make([]*Chunk, 0, len(m.renderSet))
	for coord := range m.renderSet {
		if c := m.store.Get(coord); c != nil {
			chunks = append(chunks, c)
		}
	}
	sortChunks(chunks)
	return chunks
}

var minimapBackground = image.NewUniform(color.RGBA{0, 0, 0, 255})

// Draw blits the render set onto dst. When minimap is non-nil it is cleared
// and every loaded chunk, visible or not, is drawn onto it one pixel per tile.
func (m *Map) Draw(dst draw.Image, xOff, yOff int, minimap draw.Image) error {
	defer profiling.Track("world.Draw")()

	if minimap != nil {
		draw.Draw(minimap, minimap.Bounds(), minimapBackground, image.Point{}, draw.Src)
	}
	for _, c := range m.renderChunks() {
		if err := c.Draw(dst, xOff, yOff, ModeTiles); err != nil {
			return err
		}
	}
	if minimap == nil {
		return nil
	}

	b := minimap.Bounds()
	mx := b.Min.X + b.Dx()/2 + floorDiv(xOff, TileSize)
	my := b.Min.Y + b.Dy()/2 + floorDiv(yOff, TileSize)
	for _, c := range m.store.All() {
		if err := c.Draw(minimap, mx, my, ModePixels); err != nil {
			return err
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
