package sh1106

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/sh1106/pixel"
)

const (
	sh1106DefaultWidth  = 128
	sh1106DefaultHeight = 64

	// The SH1106 has 132 columns of display RAM, panels wire the 128 visible columns starting at
	// column 2.
	sh1106ColumnOffset = 2

	resetPulse = time.Millisecond
)

// Dev is an open handle to an SH1106 display.
type Dev struct {
	c      Conn
	buf    *pixel.MonoVerticalLSBImage
	config Config
	state  State
}

// New initializes the SH1106 display connected to c.
//
// The controller is reset (if c has a reset pin) and configured before New returns. If any of
// that fails, the error is returned and the display is in an unknown state; the caller still owns
// c and should close it.
func New(c Conn, config *Config) (*Dev, error) {
	d := &Dev{c: c}
	if config != nil {
		d.config = *config
	}

	if d.config.Width == 0 {
		d.config.Width = sh1106DefaultWidth
	}
	if d.config.Height == 0 {
		d.config.Height = sh1106DefaultHeight
	}
	if d.config.Width != sh1106DefaultWidth || d.config.Height != sh1106DefaultHeight {
		return nil, fmt.Errorf("%w %dx%d", ErrSize, d.config.Width, d.config.Height)
	}
	if d.config.ChargePump == 0 {
		d.config.ChargePump = ChargePumpOn
	}
	d.buf = pixel.NewMonoVerticalLSBImage(d.config.Width, d.config.Height)

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("SH1106 OLED %dx%d on %s", d.config.Width, d.config.Height, d.c)
}

func (d *Dev) init() (err error) {
	d.state = Initializing

	if err = d.reset(); err != nil {
		return fmt.Errorf("sh1106: reset failed: %w", err)
	}

	for _, entry := range initSequenceWith(d.config.ChargePump) {
		switch entry.Control {
		case ControlData:
			err = d.c.Data(entry.Value)
		default:
			err = d.c.Command(entry.Value)
		}
		if err != nil {
			return fmt.Errorf("sh1106: init failed: %w", err)
		}
	}

	d.state = Ready
	return
}

func (d *Dev) reset() error {
	if err := d.c.Reset(gpio.Low); err != nil {
		if errors.Is(err, ErrResetPin) {
			return nil
		}
		return err
	}
	time.Sleep(resetPulse)
	if err := d.c.Reset(gpio.High); err != nil {
		return err
	}
	time.Sleep(resetPulse)
	return nil
}

// State of the driver.
func (d *Dev) State() State {
	return d.state
}

func (d *Dev) ready() error {
	if d.state != Ready {
		return ErrClosed
	}
	return nil
}

// commands sends every byte as a separate command.
func (d *Dev) commands(commands ...byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command); err != nil {
			return
		}
	}
	return
}

// Show sends the framebuffer to the display, one page at a time.
//
// Errors from the connection are returned immediately, leaving the display partially updated
// until the next successful Show.
func (d *Dev) Show() (err error) {
	if err = d.ready(); err != nil {
		return
	}

	for page := 0; page < d.buf.Pages(); page++ {
		if err = d.commands(
			setPageAddr+byte(page),
			setLowColumn|(sh1106ColumnOffset&0x0F),
			setHighColumn|((sh1106ColumnOffset>>4)&0x0F),
		); err != nil {
			return fmt.Errorf("sh1106: page %d address: %w", page, err)
		}
		if err = d.c.Data(d.buf.Page(page)...); err != nil {
			return fmt.Errorf("sh1106: page %d data: %w", page, err)
		}
	}
	return
}

// Close releases the connection. The display keeps showing its current content.
func (d *Dev) Close() error {
	if d.state == Closed {
		return ErrClosed
	}
	d.state = Closed
	return d.c.Close()
}

// Power turns the display panel on or off. Display RAM is retained while off.
func (d *Dev) Power(on bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if on {
		return d.c.Command(setDisplayOn)
	}
	return d.c.Command(setDisplayOff)
}

// SetContrast adjusts the contrast level.
func (d *Dev) SetContrast(level uint8) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.c.Command(setContrast, level)
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if blackOnWhite {
		return d.c.Command(setInvertDisplay)
	}
	return d.c.Command(setNormalDisplay)
}

// Framebuffer is the in-memory display content.
func (d *Dev) Framebuffer() *pixel.MonoVerticalLSBImage {
	return d.buf
}

// Clear the framebuffer. The display is not updated until Show.
func (d *Dev) Clear() {
	d.buf.Clear()
}

// Fill the framebuffer with a single color.
func (d *Dev) Fill(c color.Color) {
	d.buf.Fill(c)
}

// SetPixel turns the pixel at (x, y) on or off. Pixels outside of the display are ignored.
func (d *Dev) SetPixel(x, y int, on bool) {
	if debug && !(image.Point{X: x, Y: y}).In(d.buf.Rect) {
		log.Printf("sh1106: ignoring pixel (%d,%d) outside of %s", x, y, d.buf.Rect)
	}
	d.buf.SetBit(x, y, on)
}

// Pixel reports if the pixel at (x, y) is on.
func (d *Dev) Pixel(x, y int) bool {
	return d.buf.BitAt(x, y)
}

func (d *Dev) At(x, y int) color.Color {
	return d.buf.At(x, y)
}

func (d *Dev) Set(x, y int, c color.Color) {
	d.buf.Set(x, y, c)
}

func (d *Dev) Bounds() image.Rectangle {
	return d.buf.Bounds()
}

func (d *Dev) ColorModel() color.Model {
	return d.buf.ColorModel()
}

// LoadImage replaces the framebuffer with the top-left 128x64 pixels of img.
//
// Images that are not 1-bit are dithered, or converted by threshold if Config.Threshold is set.
// Images smaller than the display are rejected with pixel.ErrImageSize.
func (d *Dev) LoadImage(img image.Image) error {
	if b, ok := img.(pixel.Bitmap); ok {
		return d.LoadBitmap(b)
	}
	if d.config.Threshold {
		return d.LoadBitmap(pixel.Threshold(img))
	}
	return d.LoadBitmap(pixel.Dither(img))
}

// LoadBitmap replaces the framebuffer with the top-left 128x64 pixels of b.
func (d *Dev) LoadBitmap(b pixel.Bitmap) error {
	return d.buf.Load(b)
}
