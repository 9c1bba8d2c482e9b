package conn

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is a device on an I²C bus. Every Write is a single bus transaction.
type I2C struct {
	bus    i2c.Bus
	closer io.Closer
	dev    *i2c.Dev
}

// OpenI2C opens the named I²C bus, an empty name opens the first available bus.
func OpenI2C(name string, addr uint16) (*I2C, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}

	c := NewI2C(bus, addr)
	c.closer = bus
	return c, nil
}

// NewI2C binds to addr on an already opened bus. Closing the returned I2C does not close the bus.
func NewI2C(bus i2c.Bus, addr uint16) *I2C {
	return &I2C{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s address %#02x", c.bus, c.dev.Addr)
}

// Addr is the 7-bit device address.
func (c *I2C) Addr() uint16 {
	return c.dev.Addr
}

// Close the bus, if it was opened by OpenI2C.
func (c *I2C) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *I2C) Read(p []byte) (int, error) {
	if err := c.dev.Tx(nil, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *I2C) Write(p []byte) (int, error) {
	if err := c.dev.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
