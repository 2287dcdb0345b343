package world

import (
	"math/rand"
)

// Resource placement thresholds.
const (
	rockThreshold  = 0.75
	treeMinHeight  = 0
	treeMaxHeight  = 0.45
	treeNoiseFloor = 0.3

	rockAmplitude = 0.025
	treeAmplitude = 0.05
)

// Generator turns chunk coordinates into tiles and resources. It holds the
// three noise channels of a map and is safe for concurrent use.
type Generator struct {
	Heights *NoiseGenerator
	Rocks   *NoiseGenerator
	Trees   *NoiseGenerator

	images ImageSource
}

// NewGenerator derives the height, rock and tree channels from seed.
func NewGenerator(seed int64, imgs ImageSource) *Generator {
	rng := rand.New(rand.NewSource(seed))
	heightSeed := rng.Int63()
	rockSeed := rng.Int63()
	treeSeed := rng.Int63()
	return &Generator{
		Heights: NewNoiseGenerator(heightSeed),
		Rocks:   NewNoiseGenerator(rockSeed),
		Trees:   NewNoiseGenerator(treeSeed),
		images:  imgs,
	}
}

// HeightAt returns the terrain height of a world tile.
func (g *Generator) HeightAt(tx, ty int) float64 {
	return g.Heights.Sample(float64(tx), float64(ty), 5, DefaultAmplitude)
}

// PopulateChunk fills every tile of c and places its resources.
func (g *Generator) PopulateChunk(c *Chunk) {
	ox, oy := c.Coord.Origin()
	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			t := NewTile(c.Coord, ox+u, oy+v, g.Heights, g.images)
			c.tiles[u][v] = t
			g.placeResources(c, t)
		}
	}
	c.dirty = true
}

// placeResources rolls a rock and a tree for t. A tile whose rock roll
// crosses the threshold never grows a tree, whether or not a rock was placed.
func (g *Generator) placeResources(c *Chunk, t *Tile) {
	x, y := float64(t.X), float64(t.Y)

	rock := g.Rocks.Sample(x, y, 5, rockAmplitude)
	if rock+t.Height > rockThreshold {
		c.rocks = append(c.rocks, NewRock(t, DefaultResourceValue, g.images))
	}

	tree := g.Trees.Sample(x, y, 5, treeAmplitude)
	if t.Height > treeMinHeight && t.Height < treeMaxHeight && tree > treeNoiseFloor {
		if rock+t.Height < rockThreshold {
			c.trees = append(c.trees, NewTree(t, DefaultResourceValue, g.images))
		}
	}
}
