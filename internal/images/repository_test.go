package images

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRepositoryLookup(t *testing.T) {
	r := NewRepository()
	r.Set("grassb", solid(1, 1, color.RGBA{0, 2, 0, 255}))
	r.Set("grassa", solid(1, 1, color.RGBA{0, 1, 0, 255}))
	r.Set("tree", solid(1, 1, color.RGBA{0, 3, 0, 255}))

	img, ok := r.Image("tree")
	require.True(t, ok)
	assert.Equal(t, uint8(3), img.(*image.RGBA).RGBAAt(0, 0).G)

	img, ok = r.Image("grass")
	require.True(t, ok, "substring lookup")
	assert.Equal(t, uint8(1), img.(*image.RGBA).RGBAAt(0, 0).G, "first sorted match wins")

	_, ok = r.Image("ocean")
	assert.False(t, ok)

	r.Set("tree", solid(1, 1, color.RGBA{0, 4, 0, 255}))
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"grassa", "grassb", "tree"}, r.Names())
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "terrain")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	writeFile := func(path string, encode func(*os.File) error) {
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, encode(f))
		require.NoError(t, f.Close())
	}
	writeFile(filepath.Join(dir, "rock.png"), func(f *os.File) error {
		return png.Encode(f, solid(16, 16, color.RGBA{100, 100, 100, 255}))
	})
	writeFile(filepath.Join(sub, "beach.bmp"), func(f *os.File) error {
		return bmp.Encode(f, solid(16, 16, color.RGBA{220, 200, 130, 255}))
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	r, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"beach", "rock"}, r.Names())

	img, ok := r.Image("beach")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{220, 200, 130, 255}, img.(*image.RGBA).RGBAAt(8, 8))
}

func TestLoadDirCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644))
	_, err := LoadDir(dir)
	assert.Error(t, err)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	src := solid(2, 2, color.RGBA{10, 20, 30, 255})
	src.SetRGBA(1, 1, color.RGBA{200, 0, 0, 255})
	dst := Scale(src, 8, 8)
	assert.Equal(t, image.Rect(0, 0, 8, 8), dst.Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{200, 0, 0, 255}, dst.RGBAAt(7, 7))
}

func TestPlaceholderCoversSprites(t *testing.T) {
	r := NewPlaceholder(16)
	for _, name := range append(TerrainNames, "rock", "tree") {
		img, ok := r.Image(name)
		require.True(t, ok, name)
		require.NotNil(t, img, name)
	}
	tree, _ := r.Image("tree")
	assert.Equal(t, image.Rect(0, 0, 24, 32), tree.Bounds())
}

func TestFitTo(t *testing.T) {
	r := NewRepository()
	r.Set("grassa", solid(32, 32, color.RGBA{0, 200, 0, 255}))
	r.Set("rock", solid(16, 16, color.RGBA{100, 100, 100, 255}))
	r.Set("tree", solid(24, 32, color.RGBA{0, 90, 0, 255}))

	assert.Equal(t, 1, r.FitTo(16, "tree"))

	img, _ := r.Image("grassa")
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	assert.Equal(t, color.RGBA{0, 200, 0, 255}, img.(*image.RGBA).RGBAAt(15, 15))
	img, _ = r.Image("tree")
	assert.Equal(t, image.Rect(0, 0, 24, 32), img.Bounds(), "kept sprite untouched")

	assert.Zero(t, r.FitTo(16, "tree"))
}
