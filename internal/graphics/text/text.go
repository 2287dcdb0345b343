// Package text draws overlay text onto CPU-side images.
package text

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	face       = basicfont.Face7x13
	lineHeight = face.Metrics().Height.Ceil()
	textShadow = image.NewUniform(color.RGBA{0, 0, 0, 160})
)

// Bounds returns the size of text laid out one line per newline.
func Bounds(text string) image.Point {
	lines := strings.Split(text, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, font.MeasureString(face, l).Ceil())
	}
	return image.Pt(w, len(lines)*lineHeight)
}

// Draw writes text onto dst with its top-left corner at (x, y) over a
// translucent backing box. Newlines start a new line.
func Draw(dst draw.Image, x, y int, text string, col color.Color) {
	if text == "" {
		return
	}
	const pad = 3
	size := Bounds(text)
	box := image.Rect(x-pad, y-pad, x+size.X+pad, y+size.Y+pad)
	draw.Draw(dst, box, textShadow, image.Point{}, draw.Over)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(x, y+ascent+i*lineHeight)
		d.DrawString(line)
	}
}
