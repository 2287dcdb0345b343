package world

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ImageSource resolves a sprite by name. The second result is false when no
// image matches; callers keep a nil image and fail at draw time.
type ImageSource interface {
	Image(name string) (image.Image, bool)
}

// Content is something placed on a tile, such as a stockpile.
type Content interface {
	Kind() string
	Tint() color.RGBA
}

// Terrain is the height band a tile falls into, lowest first.
type Terrain uint8

const (
	TerrainOcean Terrain = iota
	TerrainWaterSand75
	TerrainWaterSand50
	TerrainWaterSand25
	TerrainBeach
	TerrainSandGrass75
	TerrainSandGrass50
	TerrainSandGrass25
	TerrainGrass
	TerrainCliffGrass25
	TerrainCliffGrass50
	TerrainCliffGrass75
	TerrainCliff
)

// terrainBands holds the exclusive upper height bound of each band below TerrainCliff.
var terrainBands = [...]struct {
	upper   float64
	terrain Terrain
}{
	{-0.10, TerrainOcean},
	{-0.088, TerrainWaterSand75},
	{-0.075, TerrainWaterSand50},
	{-0.063, TerrainWaterSand25},
	{-0.05, TerrainBeach},
	{-0.035, TerrainSandGrass75},
	{-0.015, TerrainSandGrass50},
	{0, TerrainSandGrass25},
	{0.4, TerrainGrass},
	{0.425, TerrainCliffGrass25},
	{0.46, TerrainCliffGrass50},
	{0.5, TerrainCliffGrass75},
}

var terrainNames = [...]string{
	TerrainOcean:        "ocean",
	TerrainWaterSand75:  "water-sand-75",
	TerrainWaterSand50:  "water-sand-50",
	TerrainWaterSand25:  "water-sand-25",
	TerrainBeach:        "beach",
	TerrainSandGrass75:  "sand-grass-75",
	TerrainSandGrass50:  "sand-grass-50",
	TerrainSandGrass25:  "sand-grass-25",
	TerrainGrass:        "grass",
	TerrainCliffGrass25: "cliff-grass-25",
	TerrainCliffGrass50: "cliff-grass-50",
	TerrainCliffGrass75: "cliff-grass-75",
	TerrainCliff:        "cliff",
}

// ClassifyHeight returns the terrain band for a height sample.
func ClassifyHeight(h float64) Terrain {
	for _, b := range terrainBands {
		if h < b.upper {
			return b.terrain
		}
	}
	return TerrainCliff
}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("Terrain(%d)", uint8(t))
}

// IsWater reports whether the band is drawn as water on the minimap.
func (t Terrain) IsWater() bool {
	return t <= TerrainWaterSand25
}

// grassVariantB is the share of grass tiles using the alternate sprite.
const grassVariantB = 0.1

// Tile is one cell of terrain. Height and Terrain never change after creation.
type Tile struct {
	X, Y  int        // world tile coordinates
	Chunk ChunkCoord // owning chunk

	Height    float64
	Terrain   Terrain
	ImageName string
	Image     image.Image
	Colour    color.RGBA

	Selected bool
	Contents []Content
}

// NewTile samples the tile's height and resolves its sprite.
func NewTile(chunk ChunkCoord, x, y int, heights *NoiseGenerator, imgs ImageSource) *Tile {
	t := &Tile{
		X:      x,
		Y:      y,
		Chunk:  chunk,
		Height: heights.Sample(float64(x), float64(y), 5, DefaultAmplitude),
	}
	t.Terrain = ClassifyHeight(t.Height)
	t.ImageName = t.spriteName(heights.Seed())
	t.Colour = t.minimapColour()
	if imgs != nil {
		t.Image, _ = imgs.Image(t.ImageName)
	}
	return t
}

func (t *Tile) spriteName(seed int64) string {
	switch t.Terrain {
	case TerrainGrass:
		if coordFraction(t.X, t.Y, seed) < grassVariantB {
			return "grassb"
		}
		return "grassa"
	case TerrainCliff:
		return "cliffa"
	}
	return t.Terrain.String()
}

func (t *Tile) minimapColour() color.RGBA {
	c := uint8(min(max(127*t.Height+128, 0), 255))
	switch {
	case t.Terrain.IsWater():
		return color.RGBA{0, 0, c, 255}
	case t.Terrain < TerrainGrass:
		return color.RGBA{c, c, 0, 255}
	case t.Terrain == TerrainGrass:
		return color.RGBA{0, c, 0, 255}
	}
	return color.RGBA{c, c, c, 255}
}

// Local returns the tile's indices inside its chunk.
func (t *Tile) Local() (int, int) {
	return LocalTile(t.X, t.Y)
}

// HeightMetres scales the height sample into the metres shown to players.
func (t *Tile) HeightMetres() int {
	return int(t.Height * 400)
}

// Select toggles the selection flag and returns the new state. The owning
// chunk is not marked dirty; that is the caller's job.
func (t *Tile) Select() bool {
	t.Selected = !t.Selected
	return t.Selected
}

// AddContent places c on the tile.
func (t *Tile) AddContent(c Content) {
	t.Contents = append(t.Contents, c)
}

// Cell returns the tile's pixel rectangle inside its chunk surface.
func (t *Tile) Cell() image.Rectangle {
	u, v := t.Local()
	origin := image.Pt(u*TileSize, v*TileSize)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(TileSize, TileSize))}
}

var selectionShade = image.NewUniform(color.RGBA{0, 0, 0, 128})

// Draw paints the tile onto a chunk-local surface.
func (t *Tile) Draw(dst draw.Image, mode RenderMode) error {
	switch mode {
	case ModeTiles:
		if t.Image == nil {
			return fmt.Errorf("tile %d,%d %q: %w", t.X, t.Y, t.ImageName, ErrMissingImage)
		}
		cell := t.Cell()
		b := t.Image.Bounds()
		draw.Draw(dst, image.Rectangle{Min: cell.Min, Max: cell.Min.Add(b.Size())}, t.Image, b.Min, draw.Over)
		for _, c := range t.Contents {
			draw.Draw(dst, cell, image.NewUniform(c.Tint()), image.Point{}, draw.Over)
		}
		if t.Selected {
			draw.Draw(dst, cell, selectionShade, image.Point{}, draw.Over)
		}
	case ModePixels:
		u, v := t.Local()
		dst.Set(u, v, t.Colour)
	default:
		return unsupported("tile", mode)
	}
	return nil
}

func (t *Tile) String() string {
	return fmt.Sprintf("Tile(%d, %d)", t.X, t.Y)
}

// coordFraction maps a coordinate and seed to a stable value in [0, 1).
func coordFraction(x, y int, seed int64) float64 {
	v := uint64(int64(x))*0x9E3779B97F4A7C15 + uint64(int64(y))*0x517CC1B727220A95 + uint64(seed)
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v ^= v >> 31
	return float64(v>>11) / float64(1<<53)
}
