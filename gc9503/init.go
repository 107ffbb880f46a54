package gc9503

import (
	"time"

	"github.com/flavioheleno/lcdpanel"
)

// DefaultInit returns a copy of the init table used when Opts.Init is nil.
// Module vendors often ship their own; ask the panel supplier.
func DefaultInit() lcdpanel.Sequence {
	return defaultInit.Clone()
}

var defaultInit = lcdpanel.Sequence{
	{Opcode: 0xF0, Data: []byte{0x55, 0xAA, 0x52, 0x08, 0x00}},
	{Opcode: 0xF6, Data: []byte{0x5A, 0x87}},
	{Opcode: 0xC1, Data: []byte{0x3F}},
	{Opcode: 0xCD, Data: []byte{0x25}},
	{Opcode: 0xC9, Data: []byte{0x10}},
	{Opcode: 0xF8, Data: []byte{0x8A}},
	{Opcode: 0xAC, Data: []byte{0x45}},
	{Opcode: 0xA7, Data: []byte{0x47}},
	{Opcode: 0xA0, Data: []byte{0x88}},
	{Opcode: 0x86, Data: []byte{0x99, 0xA3, 0xA3, 0x51}},
	{Opcode: 0xFA, Data: []byte{0x08, 0x08, 0x00, 0x04}},
	{Opcode: 0xA3, Data: []byte{0x6E}},
	{Opcode: 0xFD, Data: []byte{0x28, 0x3C, 0x00}},
	{Opcode: 0x9A, Data: []byte{0x4B}},
	{Opcode: 0x9B, Data: []byte{0x4B}},
	{Opcode: 0x82, Data: []byte{0x20, 0x20}},
	{Opcode: 0xB1, Data: []byte{0x10}},
	{Opcode: 0x7A, Data: []byte{0x0F, 0x13}},
	{Opcode: 0x7B, Data: []byte{0x0F, 0x13}},
	{Opcode: 0x6D, Data: []byte{
		0x1E, 0x1E, 0x04, 0x02, 0x0D, 0x1E, 0x12, 0x11, 0x14, 0x13, 0x05, 0x06, 0x1D, 0x1E, 0x1E, 0x1E,
		0x1E, 0x1E, 0x1E, 0x1D, 0x06, 0x05, 0x0B, 0x0C, 0x09, 0x0A, 0x1E, 0x0D, 0x01, 0x03, 0x1E, 0x1E,
	}},
	{Opcode: 0x64, Data: []byte{0x38, 0x08, 0x03, 0xC0, 0x03, 0x03, 0x38, 0x06, 0x03, 0xC2, 0x03, 0x03, 0x20, 0x6D, 0x20, 0x6D}},
	{Opcode: 0x65, Data: []byte{0x38, 0x04, 0x03, 0xC4, 0x03, 0x03, 0x38, 0x02, 0x03, 0xC6, 0x03, 0x03, 0x20, 0x6D, 0x20, 0x6D}},
	{Opcode: 0x66, Data: []byte{0x83, 0xCF, 0x03, 0xC8, 0x03, 0x03, 0x83, 0xD3, 0x03, 0xD2, 0x03, 0x03, 0x20, 0x6D, 0x20, 0x6D}},
	{Opcode: 0x60, Data: []byte{0x38, 0x0C, 0x20, 0x6D, 0x38, 0x0B, 0x20, 0x6D}},
	{Opcode: 0x61, Data: []byte{0x38, 0x0A, 0x20, 0x6D, 0x38, 0x09, 0x20, 0x6D}},
	{Opcode: 0x62, Data: []byte{0x38, 0x25, 0x20, 0x6D, 0x63, 0xC9, 0x20, 0x6D}},
	{Opcode: 0x69, Data: []byte{0x14, 0x22, 0x14, 0x22, 0x14, 0x22, 0x08}},
	{Opcode: 0x6B, Data: []byte{0x07}},
	{Opcode: 0xD1, Data: []byte{
		0x00, 0x00, 0x00, 0x70, 0x00, 0x8F, 0x00, 0xAB, 0x00, 0xBF, 0x00, 0xDF, 0x00, 0xFA, 0x01, 0x2A,
		0x01, 0x52, 0x01, 0x90, 0x01, 0xC1, 0x02, 0x0E, 0x02, 0x4F, 0x02, 0x51, 0x02, 0x8D, 0x02, 0xD3,
		0x02, 0xFF, 0x03, 0x3C, 0x03, 0x64, 0x03, 0xA1, 0x03, 0xF1, 0x03, 0xFF, 0x03, 0xFF, 0x03, 0xFF,
		0x03, 0xFF, 0x03, 0xFF,
	}},
	{Opcode: 0xD2, Data: []byte{
		0x00, 0x00, 0x00, 0x70, 0x00, 0x8F, 0x00, 0xAB, 0x00, 0xBF, 0x00, 0xDF, 0x00, 0xFA, 0x01, 0x2A,
		0x01, 0x52, 0x01, 0x90, 0x01, 0xC1, 0x02, 0x0E, 0x02, 0x4F, 0x02, 0x51, 0x02, 0x8D, 0x02, 0xD3,
		0x02, 0xFF, 0x03, 0x3C, 0x03, 0x64, 0x03, 0xA1, 0x03, 0xF1, 0x03, 0xFF, 0x03, 0xFF, 0x03, 0xFF,
		0x03, 0xFF, 0x03, 0xFF,
	}},
	{Opcode: 0xD3, Data: []byte{
		0x00, 0x00, 0x00, 0x70, 0x00, 0x8F, 0x00, 0xAB, 0x00, 0xBF, 0x00, 0xDF, 0x00, 0xFA, 0x01, 0x2A,
		0x01, 0x52, 0x01, 0x90, 0x01, 0xC1, 0x02, 0x0E, 0x02, 0x4F, 0x02, 0x51, 0x02, 0x8D, 0x02, 0xD3,
		0x02, 0xFF, 0x03, 0x3C, 0x03, 0x64, 0x03, 0xA1, 0x03, 0xF1, 0x03, 0xFF, 0x03, 0xFF, 0x03, 0xFF,
		0x03, 0xFF, 0x03, 0xFF,
	}},
	{Opcode: 0xD4, Data: []byte{
		0x00, 0x00, 0x00, 0x70, 0x00, 0x8F, 0x00, 0xAB, 0x00, 0xBF, 0x00, 0xDF, 0x00, 0xFA, 0x01, 0x2A,
		0x01, 0x52, 0x01, 0x90, 0x01, 0xC1, 0x02, 0x0E, 0x02, 0x4F, 0x02, 0x51, 0x02, 0x8D, 0x02, 0xD3,
		0x02, 0xFF, 0x03, 0x3C, 0x03, 0x64, 0x03, 0xA1, 0x03, 0xF1, 0x03, 0xFF, 0x03, 0xFF, 0x03, 0xFF,
		0x03, 0xFF, 0x03, 0xFF,
	}},
	{Opcode: 0xD5, Data: []byte{
		0x00, 0x00, 0x00, 0x70, 0x00, 0x8F, 0x00, 0xAB, 0x00, 0xBF, 0x00, 0xDF, 0x00, 0xFA, 0x01, 0x2A,
		0x01, 0x52, 0x01, 0x90, 0x01, 0xC1, 0x02, 0x0E, 0x02, 0x4F, 0x02, 0x51, 0x02, 0x8D, 0x02, 0xD3,
		0x02, 0xFF, 0x03, 0x3C, 0x03, 0x64, 0x03, 0xA1, 0x03, 0xF1, 0x03, 0xFF, 0x03, 0xFF, 0x03, 0xFF,
		0x03, 0xFF, 0x03, 0xFF,
	}},
	{Opcode: 0xD6, Data: []byte{
		0x00, 0x00, 0x00, 0x70, 0x00, 0x8F, 0x00, 0xAB, 0x00, 0xBF, 0x00, 0xDF, 0x00, 0xFA, 0x01, 0x2A,
		0x01, 0x52, 0x01, 0x90, 0x01, 0xC1, 0x02, 0x0E, 0x02, 0x4F, 0x02, 0x51, 0x02, 0x8D, 0x02, 0xD3,
		0x02, 0xFF, 0x03, 0x3C, 0x03, 0x64, 0x03, 0xA1, 0x03, 0xF1, 0x03, 0xFF, 0x03, 0xFF, 0x03, 0xFF,
		0x03, 0xFF, 0x03, 0xFF,
	}},
	{Opcode: lcdpanel.CmdSLPOUT, Delay: 120 * time.Millisecond},
	{Opcode: lcdpanel.CmdDISPON},
}
