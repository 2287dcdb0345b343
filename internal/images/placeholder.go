package images

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// TerrainNames lists every terrain sprite the map asks for.
var TerrainNames = []string{
	"ocean",
	"water-sand-75", "water-sand-50", "water-sand-25",
	"beach",
	"sand-grass-75", "sand-grass-50", "sand-grass-25",
	"grassa", "grassb",
	"cliff-grass-25", "cliff-grass-50", "cliff-grass-75",
	"cliffa",
}

var (
	water = color.RGBA{38, 92, 180, 255}
	sand  = color.RGBA{222, 200, 130, 255}
	grass = color.RGBA{72, 150, 60, 255}
	cliff = color.RGBA{128, 124, 118, 255}
)

// placeholderMix describes a terrain sprite as a base colour with a share
// of an overlay colour, matching the 25/50/75 transition tiles.
var placeholderMix = map[string]struct {
	base, over color.RGBA
	share      float64
}{
	"ocean":          {water, water, 0},
	"water-sand-75":  {sand, water, 0.75},
	"water-sand-50":  {sand, water, 0.5},
	"water-sand-25":  {sand, water, 0.25},
	"beach":          {sand, sand, 0},
	"sand-grass-75":  {grass, sand, 0.75},
	"sand-grass-50":  {grass, sand, 0.5},
	"sand-grass-25":  {grass, sand, 0.25},
	"grassa":         {grass, grass, 0},
	"grassb":         {grass, color.RGBA{98, 170, 70, 255}, 0.3},
	"cliff-grass-25": {grass, cliff, 0.25},
	"cliff-grass-50": {grass, cliff, 0.5},
	"cliff-grass-75": {grass, cliff, 0.75},
	"cliffa":         {cliff, cliff, 0},
}

// NewPlaceholder builds a repository of flat-shaded sprites for every
// terrain and resource name so the map can be drawn without asset files.
func NewPlaceholder(tileSize int) *Repository {
	r := NewRepository()
	for _, name := range TerrainNames {
		mix := placeholderMix[name]
		r.Set(name, stripes(tileSize, mix.base, mix.over, mix.share))
	}
	r.Set("rock", rockSprite(tileSize))
	r.Set("tree", treeSprite(tileSize*3/2, tileSize*2))
	return r
}

// stripes fills the top share of rows with over and the rest with base.
func stripes(size int, base, over color.RGBA, share float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(base), image.Point{}, draw.Src)
	rows := int(float64(size) * share)
	draw.Draw(img, image.Rect(0, 0, size, rows), image.NewUniform(over), image.Point{}, draw.Src)
	return img
}

func rockSprite(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fillCircle(img, size/2, size/2+1, size*3/8, color.RGBA{100, 100, 100, 255})
	fillCircle(img, size/2-1, size/2, size/4, color.RGBA{140, 140, 140, 255})
	return img
}

func treeSprite(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	trunk := image.Rect(w/2-w/10, h/2, w/2+w/10+1, h)
	draw.Draw(img, trunk, image.NewUniform(color.RGBA{96, 64, 32, 255}), image.Point{}, draw.Src)
	fillCircle(img, w/2, h/3, w/2-1, color.RGBA{26, 109, 26, 255})
	return img
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
