package world

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestClassifyHeight(t *testing.T) {
	cases := []struct {
		h    float64
		want Terrain
	}{
		{-1, TerrainOcean},
		{-0.1, TerrainWaterSand75},
		{-0.08, TerrainWaterSand50},
		{-0.07, TerrainWaterSand25},
		{-0.06, TerrainBeach},
		{-0.04, TerrainSandGrass75},
		{-0.02, TerrainSandGrass50},
		{-0.01, TerrainSandGrass25},
		{0, TerrainGrass},
		{0.39, TerrainGrass},
		{0.41, TerrainCliffGrass25},
		{0.45, TerrainCliffGrass50},
		{0.47, TerrainCliffGrass75},
		{0.5, TerrainCliff},
		{0.9, TerrainCliff},
	}
	for _, c := range cases {
		if got := ClassifyHeight(c.h); got != c.want {
			t.Errorf("ClassifyHeight(%v) = %v, want %v", c.h, got, c.want)
		}
	}
}

func TestTileMinimapColour(t *testing.T) {
	cases := []struct {
		h    float64
		want color.RGBA
	}{
		{-0.5, color.RGBA{0, 0, 64, 255}},
		{-0.04, color.RGBA{122, 122, 0, 255}},
		{0.2, color.RGBA{0, 153, 0, 255}},
		{0.6, color.RGBA{204, 204, 204, 255}},
	}
	for _, c := range cases {
		tile := &Tile{Height: c.h, Terrain: ClassifyHeight(c.h)}
		if got := tile.minimapColour(); got != c.want {
			t.Errorf("minimap colour for %v = %v, want %v", c.h, got, c.want)
		}
	}
}

func TestGrassVariantShare(t *testing.T) {
	b := 0
	const n = 10000
	for i := 0; i < n; i++ {
		tile := &Tile{X: i % 100, Y: i / 100, Terrain: TerrainGrass}
		if tile.spriteName(42) == "grassb" {
			b++
		}
	}
	if b < n/20 || b > n/5 {
		t.Fatalf("grassb share = %d/%d, want about 10%%", b, n)
	}
}

func TestTileSpriteStable(t *testing.T) {
	heights := NewNoiseGenerator(5)
	a := NewTile(ChunkCoord{}, 3, 4, heights, solidImages{})
	b := NewTile(ChunkCoord{}, 3, 4, heights, solidImages{})
	if a.ImageName != b.ImageName || a.Height != b.Height {
		t.Fatalf("same tile generated twice differs: %+v vs %+v", a, b)
	}
}

func TestTileDrawErrors(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, ChunkPixels, ChunkPixels))
	tile := NewTile(ChunkCoord{}, 1, 1, NewNoiseGenerator(1), noImages{})

	if err := tile.Draw(dst, ModeTiles); !errors.Is(err, ErrMissingImage) {
		t.Errorf("tiles mode without image: got %v, want ErrMissingImage", err)
	}
	if err := tile.Draw(dst, ModePixels); err != nil {
		t.Errorf("pixels mode without image: %v", err)
	}
	if err := tile.Draw(dst, RenderMode(7)); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("unknown mode: got %v, want ErrUnsupportedMode", err)
	}
}

func TestTileDrawSelectedShade(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, ChunkPixels, ChunkPixels))
	tile := NewTile(ChunkCoord{}, 2, 0, NewNoiseGenerator(1), solidImages{})
	if err := tile.Draw(dst, ModeTiles); err != nil {
		t.Fatal(err)
	}
	plain := dst.RGBAAt(2*TileSize, 0)

	if !tile.Select() {
		t.Fatal("Select should toggle on")
	}
	if err := tile.Draw(dst, ModeTiles); err != nil {
		t.Fatal(err)
	}
	shaded := dst.RGBAAt(2*TileSize, 0)
	if shaded.G >= plain.G {
		t.Errorf("selected tile not darker: %v vs %v", shaded, plain)
	}
}

func TestParseRenderMode(t *testing.T) {
	if m, err := ParseRenderMode("pixels"); err != nil || m != ModePixels {
		t.Errorf("ParseRenderMode(pixels) = %v, %v", m, err)
	}
	if _, err := ParseRenderMode("iso"); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("ParseRenderMode(iso) error = %v, want ErrUnsupportedMode", err)
	}
}
