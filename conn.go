package sh1106

import (
	"errors"
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/sh1106/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("sh1106: reset GPIO pin is not connected")
	ErrDCPin    = errors.New("sh1106: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level. It returns ErrResetPin if no reset pin is
	// connected.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends display RAM data bytes.
	Data(...byte) error
}

// Bus is an unframed connection, as provided by package conn.
type Bus interface {
	io.WriteCloser
	fmt.Stringer
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Bus is the I²C bus name or number as known to the periph registry, for example "2" or
	// "/dev/i2c-2". Empty opens the first available bus.
	Bus string

	// Addr is the 7-bit I²C address.
	Addr uint16

	// MaxTransfer is the maximum number of data bytes per transaction, excluding the control byte.
	MaxTransfer int

	// Reset pin, optional.
	Reset gpio.PinOut
}

// DefaultI2CConfig are the default configuration values.
var DefaultI2CConfig = I2CConfig{
	Addr:        0x3c,
	MaxTransfer: 32,
}

type i2cConn struct {
	bus         Bus
	reset       gpio.PinOut
	maxTransfer int
	buf         []byte
}

// OpenI2C opens the I²C bus.
func OpenI2C(config *I2CConfig) (Conn, error) {
	config = i2cDefaults(config)

	c, err := conn.OpenI2C(config.Bus, config.Addr)
	if err != nil {
		return nil, err
	}

	return newI2CConn(c, config), nil
}

// NewI2C uses an I²C bus that was opened by the caller. Config.Bus is ignored.
func NewI2C(bus i2c.Bus, config *I2CConfig) Conn {
	config = i2cDefaults(config)
	return newI2CConn(conn.NewI2C(bus, config.Addr), config)
}

func i2cDefaults(config *I2CConfig) *I2CConfig {
	c := DefaultI2CConfig
	if config != nil {
		c = *config
	}
	if c.Addr == 0 {
		c.Addr = DefaultI2CConfig.Addr
	}
	if c.MaxTransfer <= 0 {
		c.MaxTransfer = DefaultI2CConfig.MaxTransfer
	}
	return &c
}

func newI2CConn(bus Bus, config *I2CConfig) *i2cConn {
	return &i2cConn{
		bus:         bus,
		reset:       config.Reset,
		maxTransfer: config.MaxTransfer,
		buf:         make([]byte, 0, config.MaxTransfer+1),
	}
}

func (c *i2cConn) String() string {
	return c.bus.String()
}

func (c *i2cConn) Close() error {
	return c.bus.Close()
}

func (c *i2cConn) Reset(level gpio.Level) error {
	return resetOut(c.reset, level)
}

func (c *i2cConn) Command(cmnd byte, args ...byte) error {
	return c.write(ControlCommand, append([]byte{cmnd}, args...))
}

// Data sends data in transactions of at most maxTransfer bytes, each with its own control byte.
func (c *i2cConn) Data(data ...byte) (err error) {
	for len(data) > 0 {
		n := len(data)
		if n > c.maxTransfer {
			n = c.maxTransfer
		}
		if err = c.write(ControlData, data[:n]); err != nil {
			return
		}
		data = data[n:]
	}
	return
}

func (c *i2cConn) write(control Control, p []byte) (err error) {
	c.buf = append(append(c.buf[:0], byte(control)), p...)
	if debug {
		log.Printf("sh1106: %s write %s % x", c.bus, control, p)
	}
	_, err = c.bus.Write(c.buf)
	return
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Bus number, use -1 to use the first available bus.
	Bus int

	// Device (chip select) number on the bus.
	Device int

	// SpeedHz is the clock speed.
	SpeedHz uint32

	// BatchSize is the maximum number of bytes per transfer.
	BatchSize int

	// Reset pin, optional.
	Reset gpio.PinOut

	// DC is the data/command pin, required.
	DC gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	SpeedHz:   4_000_000,
	BatchSize: 4096,
}

type spiConn struct {
	bus       Bus
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcSet     bool
	batchSize int
}

// OpenSPI opens a 4-wire SPI bus.
func OpenSPI(config *SPIConfig) (Conn, error) {
	config, err := spiDefaults(config)
	if err != nil {
		return nil, err
	}

	c, err := conn.OpenSPI(config.Bus, config.Device, physic.Frequency(config.SpeedHz)*physic.Hertz)
	if err != nil {
		return nil, err
	}

	return newSPIConn(c, config), nil
}

// NewSPI uses a SPI port that was opened by the caller. Config.Bus and Config.Device are ignored.
func NewSPI(port spi.Port, config *SPIConfig) (Conn, error) {
	config, err := spiDefaults(config)
	if err != nil {
		return nil, err
	}

	c, err := conn.NewSPI(port, physic.Frequency(config.SpeedHz)*physic.Hertz)
	if err != nil {
		return nil, err
	}

	return newSPIConn(c, config), nil
}

func spiDefaults(config *SPIConfig) (*SPIConfig, error) {
	c := DefaultSPIConfig
	if config != nil {
		c = *config
	}
	if c.DC == nil || c.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if c.SpeedHz == 0 {
		c.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultSPIConfig.BatchSize
	}
	return &c, nil
}

func newSPIConn(bus Bus, config *SPIConfig) *spiConn {
	return &spiConn{
		bus:       bus,
		reset:     config.Reset,
		dc:        config.DC,
		batchSize: config.BatchSize,
	}
}

func (c *spiConn) String() string {
	return c.bus.String()
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return resetOut(c.reset, level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcSet || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
		c.dcSet = true
	}
	return nil
}

func (c *spiConn) Command(cmnd byte, args ...byte) (err error) {
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	return c.writeChunked(append([]byte{cmnd}, args...))
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	return c.writeChunked(data)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if debug {
		log.Printf("sh1106: %s write %d bytes in %d chunks", c.bus, len(data), (len(data)+c.batchSize-1)/c.batchSize)
	}
	for len(data) > 0 {
		n := len(data)
		if n > c.batchSize {
			n = c.batchSize
		}
		if _, err = c.bus.Write(data[:n]); err != nil {
			return
		}
		data = data[n:]
	}
	return
}

func resetOut(pin gpio.PinOut, level gpio.Level) error {
	if pin == nil || pin == gpio.INVALID {
		return ErrResetPin
	}
	return pin.Out(level)
}
