package world

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"township/internal/profiling"
)

// ChunkStreamer generates chunks and installs them in a store. Generation
// is a pure function of the coordinate, so parallel and sequential paths
// produce identical chunks.
type ChunkStreamer struct {
	store   *ChunkStore
	gen     *Generator
	workers int
}

// NewChunkStreamer creates a streamer using one worker per CPU.
func NewChunkStreamer(store *ChunkStore, gen *Generator) *ChunkStreamer {
	return &ChunkStreamer{
		store:   store,
		gen:     gen,
		workers: max(runtime.NumCPU(), 1),
	}
}

// GenerateSync returns the chunk at coord, generating it on the calling
// goroutine if it is not loaded.
func (cs *ChunkStreamer) GenerateSync(coord ChunkCoord) (*Chunk, error) {
	if c := cs.store.Get(coord); c != nil {
		return c, nil
	}
	c, err := cs.generate(coord)
	if err != nil {
		return nil, err
	}
	return cs.store.Add(c), nil
}

// Prefetch generates every missing chunk in coords on a bounded worker
// pool. The first generation error cancels the remaining work.
func (cs *ChunkStreamer) Prefetch(ctx context.Context, coords []ChunkCoord) error {
	defer profiling.Track("world.Prefetch")()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cs.workers)
	for _, coord := range coords {
		if cs.store.Has(coord) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := cs.generate(coord)
			if err != nil {
				return err
			}
			cs.store.Add(c)
			return nil
		})
	}
	return g.Wait()
}

func (cs *ChunkStreamer) generate(coord ChunkCoord) (*Chunk, error) {
	defer profiling.Track("world.GenerateChunk")()
	return NewChunk(coord, cs.gen)
}
