package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/sh1106/draw"
)

// Bitmap is a 1-bit image: a fixed grid where every pixel is either on or off.
type Bitmap interface {
	// Bounds of the grid.
	Bounds() image.Rectangle

	// BitAt reports if the pixel at (x, y) is on (foreground, white).
	BitAt(x, y int) bool
}

// Threshold converts img to a Bitmap by switching on every pixel with a luminance of at least
// half of the full scale.
//
// Images that are already a Bitmap are returned as is.
func Threshold(img image.Image) Bitmap {
	if b, ok := img.(Bitmap); ok {
		return b
	}
	return thresholdBitmap{img}
}

type thresholdBitmap struct {
	image.Image
}

func (b thresholdBitmap) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(b.Bounds()) {
		return false
	}
	return isOn(b.At(x, y))
}

var monoPalette = color.Palette{color.Black, color.White}

// Dither converts img to a Bitmap using Floyd-Steinberg error diffusion.
func Dither(img image.Image) Bitmap {
	r := img.Bounds()
	dst := image.NewPaletted(r, monoPalette)
	draw.FloydSteinberg.Draw(dst, r, img, r.Min)
	return palettedBitmap{dst}
}

type palettedBitmap struct {
	*image.Paletted
}

func (b palettedBitmap) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(b.Rect) {
		return false
	}
	return b.ColorIndexAt(x, y) == 1
}
