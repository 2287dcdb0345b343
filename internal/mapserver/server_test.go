package mapserver

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"township/internal/images"
	"township/internal/world"
)

func newServer(t *testing.T) (*httptest.Server, *world.Map) {
	t.Helper()
	return newServerWith(t, world.Options{})
}

func newServerWith(t *testing.T, opts world.Options) (*httptest.Server, *world.Map) {
	t.Helper()
	m, err := world.NewMap(context.Background(), 42, images.NewPlaceholder(world.TileSize), opts)
	require.NoError(t, err)
	srv := httptest.NewServer(New(m).Routes())
	t.Cleanup(srv.Close)
	return srv, m
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChunkPNG(t *testing.T) {
	srv, m := newServer(t)
	resp, err := http.Get(srv.URL + "/api/chunks/-1/2.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, world.ChunkPixels, img.Bounds().Dx())
	assert.NotNil(t, m.Chunk(world.ChunkCoord{X: -1, Y: 2}), "chunk generated on demand")
}

func TestTileReadout(t *testing.T) {
	srv, m := newServer(t)
	resp, err := http.Get(srv.URL + "/api/tiles/5/5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr TileResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	tile, err := m.TileAt(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, tr.X)
	assert.Equal(t, tile.Terrain.String(), tr.Terrain)
	assert.Equal(t, tile.HeightMetres(), tr.Metres)
	assert.Contains(t, tr.Info, "Tile: (5, 5)")
}

func TestBadRequests(t *testing.T) {
	srv, _ := newServer(t)
	for _, path := range []string{
		"/api/tiles/a/1",
		"/api/chunks/1/b.png",
		"/api/chunks/1/1.png?mode=iso",
		"/api/minimap.png?size=0",
		"/api/minimap.png?x=left",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestMapAndMinimap(t *testing.T) {
	srv, m := newServer(t)
	_, err := m.LocateChunk(0, 0)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/map")
	require.NoError(t, err)
	var mr MapResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mr))
	resp.Body.Close()
	assert.Equal(t, int64(42), mr.Seed)
	assert.Equal(t, 1, mr.LoadedChunks)

	resp, err = http.Get(srv.URL + "/api/minimap.png?size=64")
	require.NoError(t, err)
	defer resp.Body.Close()
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestChunkPixelsMode(t *testing.T) {
	srv, _ := newServer(t)
	resp, err := http.Get(srv.URL + "/api/chunks/3/-2.png?mode=pixels")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, world.ChunkSize, img.Bounds().Dx())
	_, _, _, a := img.At(world.ChunkSize-1, world.ChunkSize-1).RGBA()
	assert.NotZero(t, a, "every tile has a pixel")
}

func TestRequestsKeepChunkCountBounded(t *testing.T) {
	srv, m := newServerWith(t, world.Options{EvictRadius: 1})
	for i := 0; i < 50; i++ {
		for _, path := range []string{
			fmt.Sprintf("/api/tiles/%d/0", i*1000),
			fmt.Sprintf("/api/chunks/0/%d.png", i*100),
		} {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	}
	assert.LessOrEqual(t, m.LoadedChunks(), 9)
	assert.NotNil(t, m.Chunk(world.ChunkCoord{X: 0, Y: 4900}), "last requested chunk stays loaded")
}

func TestNoEvictionWithoutRadius(t *testing.T) {
	srv, m := newServer(t)
	for i := 0; i < 5; i++ {
		resp, err := http.Get(srv.URL + fmt.Sprintf("/api/tiles/%d/0", i*1000))
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, 5, m.LoadedChunks())
}
