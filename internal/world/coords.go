package world

import "fmt"

const (
	// ChunkSize is the edge length of a chunk in tiles.
	ChunkSize = 16
	// TileSize is the edge length of a tile in display pixels.
	TileSize = 16
	// ChunkPixels is the edge length of a chunk in display pixels.
	ChunkPixels = ChunkSize * TileSize
)

// ChunkCoord addresses a chunk in chunk space.
type ChunkCoord struct {
	X, Y int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Origin returns the world tile coordinate of the chunk's top-left tile.
func (c ChunkCoord) Origin() (int, int) {
	return c.X * ChunkSize, c.Y * ChunkSize
}

// Distance is the Chebyshev distance between two chunk coordinates.
func (c ChunkCoord) Distance(o ChunkCoord) int {
	return max(abs(c.X-o.X), abs(c.Y-o.Y))
}

// ChunkCoordForPixel maps a world pixel coordinate to the chunk containing it.
func ChunkCoordForPixel(px, py int) ChunkCoord {
	return ChunkCoord{X: floorDiv(px, ChunkPixels), Y: floorDiv(py, ChunkPixels)}
}

// ChunkCoordForTile maps a world tile coordinate to the chunk containing it.
func ChunkCoordForTile(tx, ty int) ChunkCoord {
	return ChunkCoord{X: floorDiv(tx, ChunkSize), Y: floorDiv(ty, ChunkSize)}
}

// PixelToTile converts a world pixel coordinate to a world tile coordinate.
func PixelToTile(px, py int) (int, int) {
	return floorDiv(px, TileSize), floorDiv(py, TileSize)
}

// LocalTile returns the chunk-local indices of a world tile coordinate.
func LocalTile(tx, ty int) (int, int) {
	return mod(tx, ChunkSize), mod(ty, ChunkSize)
}

// floorDiv divides rounding toward negative infinity. b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// mod is the non-negative remainder of a / b. b > 0.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
