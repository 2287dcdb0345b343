package world

import "testing"

func TestFloorDivAndMod(t *testing.T) {
	cases := []struct {
		a, b, div, mod int
	}{
		{0, 16, 0, 0},
		{15, 16, 0, 15},
		{16, 16, 1, 0},
		{-1, 16, -1, 15},
		{-16, 16, -1, 0},
		{-17, 16, -2, 15},
		{-256, 256, -1, 0},
		{-257, 256, -2, 255},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.div {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.div)
		}
		if got := mod(c.a, c.b); got != c.mod {
			t.Errorf("mod(%d, %d) = %d, want %d", c.a, c.b, got, c.mod)
		}
	}
}

func TestChunkCoordForPixel(t *testing.T) {
	cases := []struct {
		px, py int
		want   ChunkCoord
	}{
		{0, 0, ChunkCoord{0, 0}},
		{255, 255, ChunkCoord{0, 0}},
		{256, 0, ChunkCoord{1, 0}},
		{-1, 0, ChunkCoord{-1, 0}},
		{0, -1, ChunkCoord{0, -1}},
		{-256, -257, ChunkCoord{-1, -2}},
	}
	for _, c := range cases {
		if got := ChunkCoordForPixel(c.px, c.py); got != c.want {
			t.Errorf("ChunkCoordForPixel(%d, %d) = %v, want %v", c.px, c.py, got, c.want)
		}
	}
}

func TestLocalTileNegative(t *testing.T) {
	u, v := LocalTile(-1, -16)
	if u != 15 || v != 0 {
		t.Fatalf("LocalTile(-1, -16) = (%d, %d), want (15, 0)", u, v)
	}
	if got := ChunkCoordForTile(-1, -16); got != (ChunkCoord{-1, -1}) {
		t.Fatalf("ChunkCoordForTile(-1, -16) = %v, want (-1, -1)", got)
	}
}

func TestChunkDistance(t *testing.T) {
	a := ChunkCoord{0, 0}
	if d := a.Distance(ChunkCoord{3, -5}); d != 5 {
		t.Errorf("distance = %d, want 5", d)
	}
	if d := a.Distance(a); d != 0 {
		t.Errorf("distance to self = %d, want 0", d)
	}
}
