package world

import (
	"errors"
	"image"
	"testing"
)

func TestNewChunkRendersOnce(t *testing.T) {
	gen := NewGenerator(42, solidImages{})
	c, err := NewChunk(ChunkCoord{1, -2}, gen)
	if err != nil {
		t.Fatalf("NewChunk: %v", err)
	}
	if c.IsDirty() {
		t.Error("fresh chunk is dirty")
	}
	if c.RenderCount() != 1 {
		t.Errorf("RenderCount = %d, want 1", c.RenderCount())
	}

	ox, oy := c.Coord.Origin()
	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			tile := c.Tile(u, v)
			if tile == nil {
				t.Fatalf("tile %d,%d missing", u, v)
			}
			if tile.X != ox+u || tile.Y != oy+v {
				t.Fatalf("tile %d,%d has world coords %d,%d", u, v, tile.X, tile.Y)
			}
		}
	}
	if c.Tile(ChunkSize, 0) != nil || c.Tile(0, -1) != nil {
		t.Error("out-of-range Tile should return nil")
	}
}

func TestChunkDirtyRerender(t *testing.T) {
	c, err := NewChunk(ChunkCoord{}, NewGenerator(3, solidImages{}))
	if err != nil {
		t.Fatal(err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, ChunkPixels, ChunkPixels))

	if err := c.Draw(dst, 0, 0, ModeTiles); err != nil {
		t.Fatal(err)
	}
	if c.RenderCount() != 1 {
		t.Fatalf("clean Draw re-rendered: RenderCount = %d", c.RenderCount())
	}

	c.Tile(0, 0).Select()
	c.MarkDirty()
	if err := c.Draw(dst, 0, 0, ModePixels); err != nil {
		t.Fatal(err)
	}
	if c.RenderCount() != 2 || c.IsDirty() {
		t.Fatalf("dirty Draw: RenderCount = %d, dirty = %v", c.RenderCount(), c.IsDirty())
	}
	if err := c.Draw(dst, 0, 0, ModeTiles); err != nil {
		t.Fatal(err)
	}
	if c.RenderCount() != 2 {
		t.Fatalf("second Draw re-rendered: RenderCount = %d", c.RenderCount())
	}
}

func TestChunkDrawUnsupportedMode(t *testing.T) {
	c, err := NewChunk(ChunkCoord{}, NewGenerator(3, solidImages{}))
	if err != nil {
		t.Fatal(err)
	}
	c.MarkDirty()
	err = c.Draw(image.NewRGBA(image.Rect(0, 0, 1, 1)), 0, 0, RenderMode(-1))
	if !errors.Is(err, ErrUnsupportedMode) {
		t.Fatalf("got %v, want ErrUnsupportedMode", err)
	}
	if !c.IsDirty() {
		t.Error("failed Draw should not clear the dirty flag")
	}
}

func TestNewChunkMissingImage(t *testing.T) {
	_, err := NewChunk(ChunkCoord{}, NewGenerator(3, noImages{}))
	if !errors.Is(err, ErrMissingImage) {
		t.Fatalf("got %v, want ErrMissingImage", err)
	}
}

func TestResourcesExclusive(t *testing.T) {
	gen := NewGenerator(42, solidImages{})
	rocks, trees := 0, 0
	for cx := -3; cx < 3; cx++ {
		for cy := -3; cy < 3; cy++ {
			c, err := NewChunk(ChunkCoord{cx, cy}, gen)
			if err != nil {
				t.Fatal(err)
			}
			hasRock := make(map[[2]int]bool)
			for _, r := range c.Rocks() {
				hasRock[[2]int{r.X, r.Y}] = true
				if r.Value != DefaultResourceValue || r.Kind != ResourceRock {
					t.Fatalf("bad rock %+v", r)
				}
			}
			for _, r := range c.Trees() {
				if hasRock[[2]int{r.X, r.Y}] {
					t.Fatalf("tile %d,%d has both a rock and a tree", r.X, r.Y)
				}
				tile := c.Tile(r.Local())
				if tile.Height <= treeMinHeight || tile.Height >= treeMaxHeight {
					t.Fatalf("tree on height %v", tile.Height)
				}
			}
			rocks += len(c.Rocks())
			trees += len(c.Trees())
		}
	}
	t.Logf("rocks=%d trees=%d", rocks, trees)
}

func TestChunkGenerationDeterministic(t *testing.T) {
	a, err := NewChunk(ChunkCoord{-4, 7}, NewGenerator(42, solidImages{}))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewChunk(ChunkCoord{-4, 7}, NewGenerator(42, solidImages{}))
	if err != nil {
		t.Fatal(err)
	}
	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			ta, tb := a.Tile(u, v), b.Tile(u, v)
			if ta.Height != tb.Height || ta.ImageName != tb.ImageName {
				t.Fatalf("tile %d,%d differs", u, v)
			}
		}
	}
	if len(a.Rocks()) != len(b.Rocks()) || len(a.Trees()) != len(b.Trees()) {
		t.Fatal("resource counts differ")
	}
}

func BenchmarkNewChunk(b *testing.B) {
	gen := NewGenerator(42, solidImages{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewChunk(ChunkCoord{i % 64, i / 64}, gen); err != nil {
			b.Fatal(err)
		}
	}
}
