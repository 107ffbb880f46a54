package lcdpanel

import (
	"fmt"
	"strings"
	"time"
)

// ColorOrder is the order of the color elements in a pixel.
type ColorOrder uint8

const (
	RGB ColorOrder = iota
	BGR
)

func (o ColorOrder) String() string {
	switch o {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	default:
		return fmt.Sprintf("ColorOrder(%d)", uint8(o))
	}
}

// ParseColorOrder parses "RGB" or "BGR", case insensitive.
func ParseColorOrder(s string) (ColorOrder, error) {
	switch strings.ToUpper(s) {
	case "", "RGB":
		return RGB, nil
	case "BGR":
		return BGR, nil
	}
	return 0, fmt.Errorf("lcdpanel: color order %q: %w", s, ErrUnsupported)
}

// PixelFormat maps a color depth to the COLMOD value and the number of bytes
// a pixel occupies in the buffers handed to DrawBitmap.
type PixelFormat struct {
	BitsPerPixel  int
	COLMOD        byte
	BytesPerPixel int
}

var (
	RGB565 = PixelFormat{BitsPerPixel: 16, COLMOD: 0x55, BytesPerPixel: 2}
	// RGB666 keeps each component in the 6 high bits of a byte.
	RGB666 = PixelFormat{BitsPerPixel: 18, COLMOD: 0x66, BytesPerPixel: 3}
	RGB888 = PixelFormat{BitsPerPixel: 24, COLMOD: 0x77, BytesPerPixel: 3}
)

// PulseStep is one level of a reset pulse. Active drives the reset line to
// its asserted level.
type PulseStep struct {
	Active bool
	Hold   time.Duration
}

// Profile describes the controller specific parts of a panel.
type Profile struct {
	Name string
	// Init is the vendor default init table. A Dev plays its own copy, taken
	// by New; use DefaultInit to read it.
	Init Sequence
	// Formats lists the supported color depths.
	Formats []PixelFormat
	// ResetPulse is driven on the reset line when one is wired.
	ResetPulse []PulseStep
	// SoftResetDelay is waited after SWRESET when no reset line is wired.
	SoftResetDelay time.Duration
	// SleepOutDelay is waited after the SLPOUT that starts Init.
	SleepOutDelay time.Duration
	// Tracks lists the registers an init table may overwrite in the shadow.
	Tracks Tracks
	// ColumnWindowOnly skips RASET when streaming pixels and opens bursts
	// that do not start on the first row with RAMWRC.
	ColumnWindowOnly bool
}

// Format returns the PixelFormat for bpp.
func (p *Profile) Format(bpp int) (PixelFormat, error) {
	for _, f := range p.Formats {
		if f.BitsPerPixel == bpp {
			return f, nil
		}
	}
	return PixelFormat{}, fmt.Errorf("%s: %d bits per pixel: %w", p.Name, bpp, ErrUnsupported)
}

// DefaultInit returns a copy of the vendor default init table.
func (p *Profile) DefaultInit() Sequence {
	return p.Init.Clone()
}

// Profiles lists the built-in controller profiles by name.
func Profiles() map[string]*Profile {
	return map[string]*Profile{
		AXS15231B.Name: AXS15231B,
		ST77916.Name:   ST77916,
	}
}

// AXS15231B is the 320x480 QSPI controller found on ESP32-S3 boards.
var AXS15231B = &Profile{
	Name:    "axs15231b",
	Init:    axs15231bInit,
	Formats: []PixelFormat{RGB565, RGB666},
	ResetPulse: []PulseStep{
		{Active: false, Hold: 120 * time.Millisecond},
		{Active: true, Hold: 120 * time.Millisecond},
		{Active: false, Hold: 120 * time.Millisecond},
	},
	SoftResetDelay:   120 * time.Millisecond,
	SleepOutDelay:    100 * time.Millisecond,
	Tracks:           TrackMADCTL | TrackCOLMOD,
	ColumnWindowOnly: true,
}

// ST77916 is a 360x360 QSPI controller. Panel modules ship their own gamma
// and power tables; pass them through Opts.Init. The default only enables
// tearing output and turns the display on.
var ST77916 = &Profile{
	Name: "st77916",
	Init: Sequence{
		{Opcode: 0x35, Data: []byte{0x00}},
		{Opcode: CmdDISPON, Delay: 20 * time.Millisecond},
	},
	Formats: []PixelFormat{RGB565, RGB666},
	ResetPulse: []PulseStep{
		{Active: true, Hold: 100 * time.Millisecond},
		{Active: false, Hold: 100 * time.Millisecond},
	},
	SoftResetDelay: 120 * time.Millisecond,
	SleepOutDelay:  120 * time.Millisecond,
	Tracks:         TrackMADCTL | TrackCOLMOD,
}

var axs15231bInit = Sequence{
	{Opcode: 0xBB, Data: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x5A, 0xA5}},
	{Opcode: 0xA0, Data: []byte{0xC0, 0x10, 0x00, 0x02, 0x00, 0x00, 0x04, 0x3F, 0x20, 0x05, 0x3F, 0x3F, 0x00, 0x00, 0x00, 0x00, 0x00}},
	{Opcode: 0xA2, Data: []byte{
		0x30, 0x3C, 0x24, 0x14, 0xD0, 0x20, 0xFF, 0xE0, 0x40, 0x19, 0x80, 0x80, 0x80, 0x20, 0xF9, 0x10, 0x02,
		0xFF, 0xFF, 0xF0, 0x90, 0x01, 0x32, 0xA0, 0x91, 0xE0, 0x20, 0x7F, 0xFF, 0x00, 0x5A,
	}},
	{Opcode: 0xD0, Data: []byte{
		0xE0, 0x40, 0x51, 0x24, 0x08, 0x05, 0x10, 0x01, 0x20, 0x15, 0x42, 0xC2, 0x22, 0x22, 0xAA, 0x03, 0x10,
		0x12, 0x60, 0x14, 0x1E, 0x51, 0x15, 0x00, 0x8A, 0x20, 0x00, 0x03, 0x3A, 0x12,
	}},
	{Opcode: 0xA3, Data: []byte{
		0xA0, 0x06, 0xAA, 0x00, 0x08, 0x02, 0x0A, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04,
		0x04, 0x04, 0x04, 0x04, 0x00, 0x55, 0x55,
	}},
	{Opcode: 0xC1, Data: []byte{
		0x31, 0x04, 0x02, 0x02, 0x71, 0x05, 0x24, 0x55, 0x02, 0x00, 0x41, 0x00, 0x53, 0xFF, 0xFF,
		0xFF, 0x4F, 0x52, 0x00, 0x4F, 0x52, 0x00, 0x45, 0x3B, 0x0B, 0x02, 0x0D, 0x00, 0xFF, 0x40,
	}},
	{Opcode: 0xC3, Data: []byte{0x00, 0x00, 0x00, 0x50, 0x03, 0x00, 0x00, 0x00, 0x01, 0x80, 0x01}},
	{Opcode: 0xC4, Data: []byte{
		0x00, 0x24, 0x33, 0x80, 0x00, 0xEA, 0x64, 0x32, 0xC8, 0x64, 0xC8, 0x32, 0x90, 0x90, 0x11,
		0x06, 0xDC, 0xFA, 0x00, 0x00, 0x80, 0xFE, 0x10, 0x10, 0x00, 0x0A, 0x0A, 0x44, 0x50,
	}},
	// Touch panel.
	{Opcode: 0xC5, Data: []byte{
		0x18, 0x00, 0x00, 0x03, 0xFE, 0x3A, 0x4A, 0x20, 0x30, 0x10, 0x88, 0xDE, 0x0D, 0x08, 0x0F,
		0x0F, 0x01, 0x3A, 0x4A, 0x20, 0x10, 0x10, 0x00,
	}},
	{Opcode: 0xC6, Data: []byte{
		0x05, 0x0A, 0x05, 0x0A, 0x00, 0xE0, 0x2E, 0x0B, 0x12, 0x22, 0x12, 0x22,
		0x01, 0x03, 0x00, 0x3F, 0x6A, 0x18, 0xC8, 0x22,
	}},
	{Opcode: 0xC7, Data: []byte{
		0x50, 0x32, 0x28, 0x00, 0xA2, 0x80, 0x8F, 0x00, 0x80, 0xFF, 0x07,
		0x11, 0x9C, 0x67, 0xFF, 0x24, 0x0C, 0x0D, 0x0E, 0x0F,
	}},
	{Opcode: 0xC9, Data: []byte{0x33, 0x44, 0x44, 0x01}},
	{Opcode: 0xCF, Data: []byte{
		0x2C, 0x1E, 0x88, 0x58, 0x13, 0x18, 0x56, 0x18, 0x1E, 0x68, 0x88,
		0x00, 0x65, 0x09, 0x22, 0xC4, 0x0C, 0x77, 0x22, 0x44, 0xAA, 0x55, 0x08, 0x08, 0x12, 0xA0, 0x08,
	}},
	{Opcode: 0xD5, Data: []byte{
		0x40, 0x8E, 0x8D, 0x01, 0x35, 0x04, 0x92, 0x74, 0x04, 0x92, 0x74,
		0x04, 0x08, 0x6A, 0x04, 0x46, 0x03, 0x03, 0x03, 0x03, 0x82, 0x01, 0x03, 0x00, 0xE0, 0x51, 0xA1, 0x00, 0x00, 0x00,
	}},
	{Opcode: 0xD6, Data: []byte{
		0x10, 0x32, 0x54, 0x76, 0x98, 0xBA, 0xDC, 0xFE, 0x93, 0x00, 0x01, 0x83,
		0x07, 0x07, 0x00, 0x07, 0x07, 0x00, 0x03, 0x03, 0x03, 0x03, 0x03, 0x03, 0x00, 0x84, 0x00, 0x20, 0x01, 0x00,
	}},
	{Opcode: 0xD7, Data: []byte{
		0x03, 0x01, 0x0B, 0x09, 0x0F, 0x0D, 0x1E, 0x1F, 0x18, 0x1D, 0x1F, 0x19,
		0x40, 0x8E, 0x04, 0x00, 0x20, 0xA0, 0x1F,
	}},
	{Opcode: 0xD8, Data: []byte{0x02, 0x00, 0x0A, 0x08, 0x0E, 0x0C, 0x1E, 0x1F, 0x18, 0x1D, 0x1F, 0x19}},
	{Opcode: 0xD9, Data: []byte{0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}},
	{Opcode: 0xDD, Data: []byte{0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}},
	{Opcode: 0xDF, Data: []byte{0x44, 0x73, 0x4B, 0x69, 0x00, 0x0A, 0x02, 0x90}},
	// Gamma.
	{Opcode: 0xE0, Data: []byte{0x3B, 0x28, 0x10, 0x16, 0x0C, 0x06, 0x11, 0x28, 0x5C, 0x21, 0x0D, 0x35, 0x13, 0x2C, 0x33, 0x28, 0x0D}},
	{Opcode: 0xE1, Data: []byte{0x37, 0x28, 0x10, 0x16, 0x0B, 0x06, 0x11, 0x28, 0x5C, 0x21, 0x0D, 0x35, 0x14, 0x2C, 0x33, 0x28, 0x0F}},
	{Opcode: 0xE2, Data: []byte{0x3B, 0x07, 0x12, 0x18, 0x0E, 0x0D, 0x17, 0x35, 0x44, 0x32, 0x0C, 0x14, 0x14, 0x36, 0x3A, 0x2F, 0x0D}},
	{Opcode: 0xE3, Data: []byte{0x37, 0x07, 0x12, 0x18, 0x0E, 0x0D, 0x17, 0x35, 0x44, 0x32, 0x0C, 0x14, 0x14, 0x36, 0x32, 0x2F, 0x0F}},
	{Opcode: 0xE4, Data: []byte{0x3B, 0x07, 0x12, 0x18, 0x0E, 0x0D, 0x17, 0x39, 0x44, 0x2E, 0x0C, 0x14, 0x14, 0x36, 0x3A, 0x2F, 0x0D}},
	{Opcode: 0xE5, Data: []byte{0x37, 0x07, 0x12, 0x18, 0x0E, 0x0D, 0x17, 0x39, 0x44, 0x2E, 0x0C, 0x14, 0x14, 0x36, 0x3A, 0x2F, 0x0F}},
	{Opcode: 0xA4, Data: []byte{0x85, 0x85, 0x95, 0x82, 0xAF, 0xAA, 0xAA, 0x80, 0x10, 0x30, 0x40, 0x40, 0x20, 0xFF, 0x60, 0x30}},
	{Opcode: 0xA4, Data: []byte{0x85, 0x85, 0x95, 0x85}},
	{Opcode: 0xBB, Data: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	{Opcode: CmdSLPOUT, Data: []byte{0x00}, Delay: 120 * time.Millisecond},
	{Opcode: CmdDISPON, Data: []byte{0x00}, Delay: 100 * time.Millisecond},
	{Opcode: CmdRAMWR, Data: []byte{0x00, 0x00, 0x00, 0x00}},
}
