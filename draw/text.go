package draw

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is the face to use when no TrueType font is available.
var DefaultFace font.Face = basicfont.Face7x13

// LoadFont loads the TrueType font at path as a face of size points (at 72 DPI, so one point is
// one pixel).
func LoadFont(path string, points float64) (font.Face, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFont(b, points)
}

// ParseFont parses TrueType font data as a face of size points.
func ParseFont(data []byte, points float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("draw: invalid TrueType font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Text draws s with its top-left corner at pt and returns the advance width in pixels.
func Text(dst Image, pt image.Point, face font.Face, c color.Color, s string) int {
	if face == nil {
		face = DefaultFace
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(pt.X),
			Y: fixed.I(pt.Y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
	return (d.Dot.X - fixed.I(pt.X)).Ceil()
}
