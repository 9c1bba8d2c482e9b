package sh1106

import "fmt"

const (
	setLowColumn          = 0x00
	setHighColumn         = 0x10
	setStartLine          = 0x40
	setContrast           = 0x81
	setSegmentRemap       = 0xA1
	setDisplayAllOnResume = 0xA4
	setNormalDisplay      = 0xA6
	setInvertDisplay      = 0xA7
	setMultiplexRatio     = 0xA8
	setDCDC               = 0xAD
	setDisplayOff         = 0xAE
	setDisplayOn          = 0xAF
	setPageAddr           = 0xB0
	setComScanDec         = 0xC8
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVComDetect         = 0xDB
)

// Control is the control byte that prefixes every I²C transaction.
type Control byte

// Control bytes.
const (
	ControlCommand Control = 0x00 // payload are controller commands
	ControlData    Control = 0x40 // payload is display RAM data
)

func (c Control) String() string {
	switch c {
	case ControlCommand:
		return "command"
	case ControlData:
		return "data"
	default:
		return fmt.Sprintf("control(%#02x)", byte(c))
	}
}

// ChargePump is the DC-DC converter setting.
//
// Most modules have the converter on board (ChargePumpOn), some are powered by an external
// supply and need ChargePumpOff.
type ChargePump byte

// Charge pump settings.
const (
	ChargePumpOn  ChargePump = 0x8B
	ChargePumpOff ChargePump = 0x8A
)

// Entry is a single byte of the initialization sequence.
type Entry struct {
	Control Control
	Value   byte
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %#02x", e.Control, e.Value)
}

func cmd(b byte) Entry {
	return Entry{Control: ControlCommand, Value: b}
}

// initSequence brings a 128x64 panel from reset to display on. Arguments of multi-byte commands
// directly follow their command; the order is significant.
var initSequence = [...]Entry{
	cmd(setDisplayOff),
	cmd(setDisplayClockDiv), cmd(0x80),
	cmd(setMultiplexRatio), cmd(0x3F), // 64 lines
	cmd(setDisplayOffset), cmd(0x00),
	cmd(setStartLine), // line 0
	cmd(setDCDC), cmd(byte(ChargePumpOn)),
	cmd(setSegmentRemap),
	cmd(setComScanDec),
	cmd(setComPins), cmd(0x12),
	cmd(setContrast), cmd(0x7F),
	cmd(setPrecharge), cmd(0x22),
	cmd(setVComDetect), cmd(0x40),
	cmd(setDisplayAllOnResume),
	cmd(setNormalDisplay),
	cmd(setDisplayOn),
}

// chargePumpIndex is the position of the DC-DC setting argument in initSequence.
const chargePumpIndex = 9

// InitSequence returns the power-on configuration that New sends to the controller.
func InitSequence() []Entry {
	return initSequenceWith(ChargePumpOn)
}

func initSequenceWith(pump ChargePump) []Entry {
	seq := make([]Entry, len(initSequence))
	copy(seq, initSequence[:])
	seq[chargePumpIndex].Value = byte(pump)
	return seq
}
