package world

import (
	"image"
	"image/color"
)

// solidImages resolves every sprite name to a tile-sized solid square.
type solidImages struct{}

var solidSprite = func() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 90, 160, 60, 255
	}
	return img
}()

func (solidImages) Image(string) (image.Image, bool) { return solidSprite, true }

// noImages resolves nothing.
type noImages struct{}

func (noImages) Image(string) (image.Image, bool) { return nil, false }

// stamp is a tile content used to pin chunks in tests.
type stamp struct{}

func (stamp) Kind() string     { return "stamp" }
func (stamp) Tint() color.RGBA { return color.RGBA{255, 0, 0, 64} }
