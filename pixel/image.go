package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/sh1106/draw"
)

// ErrImageSize is returned when a source image does not cover the framebuffer.
var ErrImageSize = errors.New("pixel: source image is smaller than the framebuffer")

// Image is a framebuffer that can be drawn on, cleared and filled.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pages.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image.
//
// The image is divided in pages (horizontal bands) of 8 pixels high. Every byte holds a column of
// 8 vertical pixels within a page, with the least significant bit being the topmost pixel. This is
// the GDDRAM layout of the SH1106 and SSD1xxx OLED controllers.
type MonoVerticalLSBImage struct {
	Buffer
}

// NewMonoVerticalLSBImage returns a blank image of w by h pixels.
func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	pages := ((h + 7) & ^7) / 8 // round up to whole bytes
	return &MonoVerticalLSBImage{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, pages*w),
			Stride: w,
		},
	}
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

// Pages is the number of pages.
func (p *MonoVerticalLSBImage) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// Page returns the bytes that make up page n, nil if n is out of range.
func (p *MonoVerticalLSBImage) Page(n int) []byte {
	if n < 0 || n >= p.Pages() {
		return nil
	}
	return p.Pix[n*p.Stride : (n+1)*p.Stride]
}

// PixOffset returns the index of the byte holding pixel (x, y).
func (p *MonoVerticalLSBImage) PixOffset(x, y int) int {
	return y/8*p.Stride + x
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.BitAt(x, y)}
}

// BitAt reports if the pixel at (x, y) is on. Pixels outside of the image are off.
func (p *MonoVerticalLSBImage) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	return p.Pix[p.PixOffset(x, y)]&(1<<uint(y&7)) != 0
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, monoModel(c).(Mono).On)
}

// SetBit turns the pixel at (x, y) on or off. Coordinates outside of the image are ignored.
func (p *MonoVerticalLSBImage) SetBit(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos = p.PixOffset(x, y)
		bit = byte(1) << uint(y&7)
	)
	if on {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Load copies the top-left region of src with the size of the image into the image.
//
// Sources larger than the image are cropped; smaller sources are rejected with ErrImageSize and
// leave the image untouched.
func (p *MonoVerticalLSBImage) Load(src Bitmap) error {
	var (
		r    = src.Bounds()
		size = p.Rect.Size()
	)
	if r.Dx() < size.X || r.Dy() < size.Y {
		return fmt.Errorf("%w: need %s, got %s", ErrImageSize, size, r.Size())
	}

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			p.SetBit(p.Rect.Min.X+x, p.Rect.Min.Y+y, src.BitAt(r.Min.X+x, r.Min.Y+y))
		}
	}
	return nil
}

// Interface checks.
var (
	_ Image           = (*MonoVerticalLSBImage)(nil)
	_ Bitmap          = (*MonoVerticalLSBImage)(nil)
	_ draw.PagedImage = (*MonoVerticalLSBImage)(nil)
)
