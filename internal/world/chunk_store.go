package world

import (
	"sort"
	"sync"
)

// ChunkStore owns every loaded chunk, keyed by chunk coordinate.
type ChunkStore struct {
	chunks map[ChunkCoord]*Chunk
	mu     sync.RWMutex
}

// NewChunkStore creates an empty chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Get returns the chunk at coord, or nil if it is not loaded.
func (cs *ChunkStore) Get(coord ChunkCoord) *Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.chunks[coord]
}

// Has reports whether a chunk is loaded at coord.
func (cs *ChunkStore) Has(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, ok := cs.chunks[coord]
	cs.mu.RUnlock()
	return ok
}

// Add installs chunk unless one is already present at its coordinate and
// returns the chunk that ends up stored.
func (cs *ChunkStore) Add(chunk *Chunk) *Chunk {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if existing, ok := cs.chunks[chunk.Coord]; ok {
		return existing
	}
	cs.chunks[chunk.Coord] = chunk
	return chunk
}

// Len returns the number of loaded chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// All returns every loaded chunk ordered by row, then column.
func (cs *ChunkStore) All() []*Chunk {
	cs.mu.RLock()
	out := make([]*Chunk, 0, len(cs.chunks))
	for _, c := range cs.chunks {
		out = append(out, c)
	}
	cs.mu.RUnlock()

	sortChunks(out)
	return out
}

// EvictFarChunks drops chunks farther than radius (Chebyshev, in chunks)
// from center. Pinned chunks and chunks for which keep returns true stay.
// Returns the number of removed chunks.
func (cs *ChunkStore) EvictFarChunks(center ChunkCoord, radius int, keep func(ChunkCoord) bool) int {
	removed := 0
	cs.mu.Lock()
	for coord, c := range cs.chunks {
		if coord.Distance(center) <= radius {
			continue
		}
		if (keep != nil && keep(coord)) || c.Pinned() {
			continue
		}
		delete(cs.chunks, coord)
			removed++
	}
	cs.mu.Unlock()
	return removed
}

func sortChunks(list []*Chunk) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Coord, list[j].Coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
