package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

const (
	// MaxOctaves is the number of octave sources each NoiseGenerator owns.
	MaxOctaves = 8
	// DefaultAmplitude is the amplitude used for terrain height.
	DefaultAmplitude = 0.5
)

// NoiseGenerator samples seeded multi-octave OpenSimplex noise.
// It is immutable after construction and safe for concurrent use.
type NoiseGenerator struct {
	seed    int64
	octaves [MaxOctaves]opensimplex.Noise
}

// NewNoiseGenerator builds the octave sources from a private random stream
// seeded with seed. The draw order is fixed so equal seeds give equal noise.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	rng := rand.New(rand.NewSource(seed))
	g := &NoiseGenerator{seed: seed}
	for i := range g.octaves {
		g.octaves[i] = opensimplex.New(int64(rng.Float64() * 1000))
	}
	return g
}

// Seed returns the seed the generator was built from.
func (g *NoiseGenerator) Seed() int64 {
	return g.seed
}

// Sample returns the weighted average of the first octaves sources at (x, y).
// Octave counts outside [1, MaxOctaves] are clamped. Amplitude stretches the
// sampling grid: larger values give smoother, larger features.
func (g *NoiseGenerator) Sample(x, y float64, octaves int, amplitude float64) float64 {
	octaves = min(max(octaves, 1), MaxOctaves)

	nx := x/(200*amplitude) - amplitude
	ny := y/(200*amplitude) - amplitude

	sum := 0.0
	weight := 0.0
	f := 1.0
	for i := 0; i < octaves; i++ {
		sum += g.octaves[i].Eval2(f*nx, f*ny) / f
		weight += 1 / f
		f *= 2
	}
	return sum / weight
}
