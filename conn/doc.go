// Package conn gives raw, unframed access to the I²C and SPI buses a display is attached to.
//
// Buses are opened through the periph.io registries, so [periph.io/x/host/v3.Init] must be called
// before any of the Open functions.
package conn
