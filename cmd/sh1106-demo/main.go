package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/sh1106"
	"github.com/BeatGlow/sh1106/draw"
	"github.com/BeatGlow/sh1106/emulator"
	"github.com/BeatGlow/sh1106/pixel"
)

func main() {
	i2cBusFlag := flag.String("i2c-bus", sh1106.DefaultI2CConfig.Bus, "I²C bus name or number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(sh1106.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag := flag.Int("spi-bus", sh1106.DefaultSPIConfig.Bus, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", sh1106.DefaultSPIConfig.Device, "SPI device")
	resetPinFlag := flag.String("reset", "", "Reset GPIO pin (optional)")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC), SPI only")
	fontFlag := flag.String("font", "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf", "TrueType font file")
	fontSizeFlag := flag.Float64("font-size", 15, "Font size in pixels")
	textFlag := flag.String("text", "Hello World", "Text to show")
	intervalFlag := flag.Duration("interval", 5*time.Second, "Redraw interval")
	thresholdFlag := flag.Bool("threshold", false, "Convert images with a threshold instead of dithering")
	chargePumpOffFlag := flag.Bool("charge-pump-off", false, "Disable the DC-DC converter (external supply)")
	flag.Parse()

	busType := "i2c"
	switch flag.NArg() {
	case 0:
	case 1:
		busType = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [i2c|spi|emulator]\n", os.Args[0])
		os.Exit(1)
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	config := &sh1106.Config{
		Threshold: *thresholdFlag,
	}
	if *chargePumpOffFlag {
		config.ChargePump = sh1106.ChargePumpOff
	}

	var emu *emulator.Panel
	open := func() (*sh1106.Dev, error) {
		var (
			conn sh1106.Conn
			err  error
		)
		switch busType {
		case "i2c":
			conn, err = sh1106.OpenI2C(&sh1106.I2CConfig{
				Bus:   *i2cBusFlag,
				Addr:  uint16(*i2cAddrFlag),
				Reset: pinByName(*resetPinFlag),
			})
		case "spi":
			conn, err = sh1106.OpenSPI(&sh1106.SPIConfig{
				Bus:    *spiBusFlag,
				Device: *spiDeviceFlag,
				Reset:  pinByName(*resetPinFlag),
				DC:     pinByName(*dcPinFlag),
			})
		case "emulator":
			emu = emulator.New(nil)
			conn = emu
		default:
			err = fmt.Errorf("unsupported bus type %q", busType)
		}
		if err != nil {
			return nil, err
		}

		dev, err := sh1106.New(conn, config)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return dev, nil
	}

	dev, err := open()
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s\n", dev)

	face, err := draw.LoadFont(*fontFlag, *fontSizeFlag)
	if err != nil {
		fmt.Printf("using default font: %v\n", err)
		face = draw.DefaultFace
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("hit control-c to stop...")
	err = run(ctx, dev, face, *textFlag, *intervalFlag, func() error {
		if emu != nil {
			return emu.Render()
		}
		return nil
	})
	_ = dev.Close()

	// Blank the display using a fresh driver, the interrupted one may be mid-transaction.
	if blankErr := blank(open); blankErr != nil {
		fmt.Fprintln(os.Stderr, "blank failed: "+blankErr.Error())
	} else if emu != nil {
		_ = emu.Render()
	}
	if err != nil {
		fatal(err)
	}
}

const progressSteps = 10

func run(ctx context.Context, dev *sh1106.Dev, face font.Face, text string, interval time.Duration, refreshed func() error) error {
	var (
		size   = dev.Bounds().Size()
		dc     = gg.NewContext(size.X, size.Y)
		ticker = time.NewTicker(interval)
	)
	defer ticker.Stop()

	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetFontFace(face)

	for frame := 0; ; frame++ {
		dc.SetColor(color.Black)
		dc.DrawRectangle(0, 18, float64(size.X), float64(size.Y-18))
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawStringAnchored(text, 1, 10, 0, 1)

		if err := dev.LoadImage(dc.Image()); err != nil {
			return err
		}
		fb := dev.Framebuffer()
		draw.Line(fb, image.Pt(0, 17), image.Pt(size.X-1, 17), pixel.On)

		// Progress bar, one step per frame.
		bar := image.Rect(3, 22, size.X-3, 30)
		draw.RoundedRectangle(fb, bar, 3, pixel.On)
		fill := bar.Inset(2)
		fill.Max.X = fill.Min.X + fill.Dx()*(frame%progressSteps+1)/progressSteps
		draw.RoundedBox(fb, fill, 2, pixel.On)

		draw.Text(fb, image.Pt(1, size.Y-draw.DefaultFace.Metrics().Height.Ceil()-1), draw.DefaultFace, pixel.On, fmt.Sprintf("frame %d", frame))
		draw.Rectangle(fb, fb.Bounds(), pixel.On)

		if err := dev.Show(); err != nil {
			return err
		}
		if err := refreshed(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func blank(open func() (*sh1106.Dev, error)) error {
	dev, err := open()
	if err != nil {
		return err
	}
	defer dev.Close()

	dev.Clear()
	return dev.Show()
}

func pinByName(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	if p := gpioreg.ByName(name); p != nil {
		return p
	}
	fatal(fmt.Errorf("invalid GPIO pin %q", name))
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
