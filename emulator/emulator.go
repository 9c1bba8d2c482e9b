package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/sh1106/pixel"
)

// ErrClosed is returned for writes to a closed Panel.
var ErrClosed = errors.New("emulator: panel is closed")

const (
	// Columns of display RAM.
	Columns = 132
	// Pages of display RAM, 8 rows each.
	Pages = 8

	// Width and Height of the visible area.
	Width  = 128
	Height = Pages * 8

	// ColumnOffset is the first display RAM column wired to the panel.
	ColumnOffset = 2
)

const (
	cmdContrast       = 0x81
	cmdSegmentRemap   = 0xA0
	cmdNormalDisplay  = 0xA6
	cmdInvertDisplay  = 0xA7
	cmdMultiplexRatio = 0xA8
	cmdDCDC           = 0xAD
	cmdDisplayOff     = 0xAE
	cmdDisplayOn      = 0xAF
	cmdComScanInc     = 0xC0
	cmdComScanDec     = 0xC8
	cmdDisplayOffset  = 0xD3
	cmdClockDiv       = 0xD5
	cmdPrecharge      = 0xD9
	cmdComPins        = 0xDA
	cmdVComDetect     = 0xDB
)

// Commands that take a second byte as argument.
var doubleByte = map[byte]bool{
	cmdContrast:       true,
	cmdMultiplexRatio: true,
	cmdDCDC:           true,
	cmdDisplayOffset:  true,
	cmdClockDiv:       true,
	cmdPrecharge:      true,
	cmdComPins:        true,
	cmdVComDetect:     true,
}

// Opts represents the options available for the emulator.
type Opts struct {
	// W is where Render writes to, defaults to the (colorable) standard output.
	W io.Writer

	// Palette used to render pixels.
	Palette *ansi256.Palette

	// Trace logs every decoded command.
	Trace bool
}

// Panel is an emulated SH1106 controller.
type Panel struct {
	w       io.Writer
	palette *ansi256.Palette
	trace   bool
	buf     bytes.Buffer

	ram      [Pages][Columns]byte
	page     int
	column   int
	pending  byte
	closed   bool
	commands int

	// Registers.
	on            bool
	inverted      bool
	contrast      byte
	multiplex     byte
	displayOffset byte
	startLine     byte
	chargePump    byte
	segmentRemap  bool
	comScanDec    bool
}

// New returns a Panel in its power-on reset state.
func New(opts *Opts) *Panel {
	if opts == nil {
		opts = new(Opts)
	}
	p := &Panel{
		w:       opts.W,
		palette: opts.Palette,
		trace:   opts.Trace,
	}
	if p.w == nil {
		p.w = colorable.NewColorableStdout()
	}
	if p.palette == nil {
		p.palette = ansi256.Default
	}
	p.powerOnReset()
	return p
}

func (p *Panel) powerOnReset() {
	p.page = 0
	p.column = 0
	p.pending = 0
	p.on = false
	p.inverted = false
	p.contrast = 0x80
	p.multiplex = 0x3F
	p.displayOffset = 0
	p.startLine = 0
	p.chargePump = 0x8B
	p.segmentRemap = false
	p.comScanDec = false
}

func (p *Panel) String() string {
	return "SH1106 emulator"
}

// Close the panel, further writes fail.
func (p *Panel) Close() error {
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	return nil
}

// Reset emulates the RES pin: pulling it low resets all registers. Display RAM is retained.
func (p *Panel) Reset(level gpio.Level) error {
	if p.closed {
		return ErrClosed
	}
	if level == gpio.Low {
		p.powerOnReset()
	}
	return nil
}

// Command processes a command byte stream.
func (p *Panel) Command(cmnd byte, args ...byte) error {
	if p.closed {
		return ErrClosed
	}
	p.command(cmnd)
	for _, arg := range args {
		p.command(arg)
	}
	return nil
}

func (p *Panel) command(b byte) {
	p.commands++
	if p.trace {
		log.Printf("emulator: command %#02x (page %d, column %d)", b, p.page, p.column)
	}

	if p.pending != 0 {
		switch p.pending {
		case cmdContrast:
			p.contrast = b
		case cmdMultiplexRatio:
			p.multiplex = b & 0x3F
		case cmdDCDC:
			p.chargePump = b
		case cmdDisplayOffset:
			p.displayOffset = b & 0x3F
		}
		p.pending = 0
		return
	}

	switch {
	case b <= 0x0F:
		p.column = p.column&0xF0 | int(b&0x0F)
	case b <= 0x1F:
		p.column = p.column&0x0F | int(b&0x0F)<<4
	case b >= 0x40 && b <= 0x7F:
		p.startLine = b & 0x3F
	case b >= 0xB0 && b <= 0xB7:
		p.page = int(b & 0x07)
	case b == cmdSegmentRemap, b == cmdSegmentRemap|1:
		p.segmentRemap = b&1 == 1
	case b == cmdNormalDisplay, b == cmdInvertDisplay:
		p.inverted = b == cmdInvertDisplay
	case b == cmdDisplayOff, b == cmdDisplayOn:
		p.on = b == cmdDisplayOn
	case b == cmdComScanInc, b == cmdComScanDec:
		p.comScanDec = b == cmdComScanDec
	case doubleByte[b]:
		p.pending = b
	}
}

// Data writes to display RAM at the current page and column. The column is incremented after
// every byte; writes past the last column are dropped.
func (p *Panel) Data(data ...byte) error {
	if p.closed {
		return ErrClosed
	}
	for _, b := range data {
		if p.column < Columns {
			p.ram[p.page][p.column] = b
		}
		p.column++
	}
	return nil
}

// RAM returns a copy of a page of display RAM, all 132 columns.
func (p *Panel) RAM(page int) []byte {
	if page < 0 || page >= Pages {
		return nil
	}
	out := make([]byte, Columns)
	copy(out, p.ram[page][:])
	return out
}

// Image returns what the panel shows: the visible columns of display RAM, inverted if the
// display is inverted, blank if the display is off.
//
// Rows are rotated by the display start line and offset. The panel is wired for segment remap
// (0xA1) and reverse COM scan (0xC8); 0xA0 mirrors the image horizontally and 0xC0 vertically.
func (p *Panel) Image() *pixel.MonoVerticalLSBImage {
	img := pixel.NewMonoVerticalLSBImage(Width, Height)
	if !p.on {
		return img
	}
	for y := 0; y < Height; y++ {
		row := y
		if !p.comScanDec {
			row = Height - 1 - y
		}
		row = (row + int(p.startLine) + int(p.displayOffset)) % Height

		for x := 0; x < Width; x++ {
			column := ColumnOffset + x
			if !p.segmentRemap {
				column = Columns - 1 - column
			}
			on := p.ram[row/8][column]&(1<<uint(row&7)) != 0
			img.SetBit(x, y, on != p.inverted)
		}
	}
	return img
}

// On reports if the display is on.
func (p *Panel) On() bool { return p.on }

// Inverted reports if the display is inverted.
func (p *Panel) Inverted() bool { return p.inverted }

// Contrast is the current contrast level.
func (p *Panel) Contrast() byte { return p.contrast }

// ChargePump is the current DC-DC setting.
func (p *Panel) ChargePump() byte { return p.chargePump }

// Multiplex is the current multiplex ratio.
func (p *Panel) Multiplex() byte { return p.multiplex }

// Commands is the number of command bytes received.
func (p *Panel) Commands() int { return p.commands }

// Render draws the panel to the terminal, moving the cursor to the top-left first.
func (p *Panel) Render() error {
	var (
		img = p.Image()
		on  = p.palette.Block(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		off = p.palette.Block(color.NRGBA{A: 0xff})
	)

	// buf is reused between calls.
	p.buf.Reset()
	_, _ = p.buf.WriteString("\033[H\033[0m")
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if img.BitAt(x, y) {
				_, _ = p.buf.WriteString(on)
			} else {
				_, _ = p.buf.WriteString(off)
			}
		}
		_, _ = p.buf.WriteString("\033[0m\n")
	}
	if _, err := p.buf.WriteTo(p.w); err != nil {
		return fmt.Errorf("emulator: render failed: %w", err)
	}
	return nil
}
