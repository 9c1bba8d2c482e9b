package pixel

import "image/color"

// MonoModel converts any color to a 1-bit [Mono] color.
var MonoModel color.Model = color.ModelFunc(monoModel)

// Pixel colors.
var (
	Off = Mono{false} // dark
	On  = Mono{true}  // lit
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	return Mono{On: isOn(c)}
}

// isOn reports if the luminance of c is at least half of the full scale.
func isOn(c color.Color) bool {
	r, g, b, _ := c.RGBA()

	// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same
	// as those given by the JFIF specification and used by func RGBToYCbCr in
	// ycbcr.go.
	//
	// Note that 19595 + 38470 + 7471 equals 65536.
	//
	// The 31 is 16 + 15. The 16 is the same as used in RGBToYCbCr. The 15 is
	// because the return value is 1 bit color, not 16 bit color.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return y != 0
}
