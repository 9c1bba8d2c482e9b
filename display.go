// Package sh1106 drives 128x64 monochrome OLED displays with a Sino Wealth SH1106 controller.
//
// The driver keeps a page-organised framebuffer in memory; drawing only changes the framebuffer and
// Show sends it to the controller. The controller is configured once, when the driver is created.
//
// A Dev is not safe for concurrent use, and owns its Conn for its entire lifetime.
package sh1106

import (
	"errors"
	"image"
	"image/color"
	"os"

	"github.com/BeatGlow/sh1106/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("SH1106_DEBUG") != ""
}

// Errors
var (
	ErrClosed = errors.New("sh1106: display is closed")
	ErrSize   = errors.New("sh1106: unsupported display size")
)

// Display is a monochrome pixel display.
type Display interface {
	// Close the display driver.
	Close() error

	// Clear the display buffer.
	Clear()

	// At returns the color of the pixel at (x, y).
	At(x, y int) color.Color

	// Set the pixel color at (x, y).
	Set(x, y int, c color.Color)

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// LoadImage replaces the display buffer with the top-left part of an image.
	LoadImage(image.Image) error

	// Power turns the display on or off.
	Power(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error

	// Show sends the display buffer to the display.
	Show() error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, 0 for the default of 128.
	Width int

	// Height of the display in pixels, 0 for the default of 64.
	Height int

	// ChargePump is the DC-DC converter setting, 0 for ChargePumpOn.
	ChargePump ChargePump

	// Threshold converts images passed to LoadImage by luminance threshold instead of
	// Floyd-Steinberg dithering.
	Threshold bool
}

// State of the driver.
type State uint8

// Driver states.
const (
	Uninitialized State = iota
	Initializing
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return "invalid"
	}
}

// Interface checks.
var (
	_ Display     = (*Dev)(nil)
	_ pixel.Image = (*Dev)(nil)
)
