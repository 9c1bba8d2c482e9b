package conn

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPI is a device on a SPI port, in mode 0 with 8 bits per word.
type SPI struct {
	port   spi.Port
	closer io.Closer
	conn   spi.Conn
	speed  physic.Frequency
}

// OpenSPI opens the numbered SPI bus with the numbered device. The device often corresponds to the
// CS pin for that bus. Use -1 as bus to open the first available port.
func OpenSPI(bus, device int, speed physic.Frequency) (*SPI, error) {
	var name string
	if bus >= 0 {
		name = fmt.Sprintf("SPI%d.%d", bus, device)
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}

	c, err := NewSPI(port, speed)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	c.closer = port
	return c, nil
}

// NewSPI connects to an already opened port. Closing the returned SPI does not close the port.
func NewSPI(port spi.Port, speed physic.Frequency) (*SPI, error) {
	c, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("conn: SPI connect failed: %w", err)
	}
	return &SPI{
		port:  port,
		conn:  c,
		speed: speed,
	}, nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI port %s at %s", c.port, c.speed)
}

// Close the port, if it was opened by OpenSPI.
func (c *SPI) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *SPI) Write(p []byte) (int, error) {
	if err := c.conn.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
