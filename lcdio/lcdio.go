// Package lcdio encodes LCD controller commands and pixel data into bus
// transactions.
//
// A panel controller is addressed through one of three electrical interface
// modes. The same logical write (an opcode, optional parameters or pixels)
// is framed differently on each:
//
//   - FourWire: the opcode is clocked with the D/C line low, the payload with
//     D/C high.
//   - ThreeWire: there is no D/C line; every byte is sent as a 9-bit word
//     whose leading bit carries the D/C level.
//   - QuadIO: the opcode travels in the address phase of a QSPI transaction
//     whose command phase selects a parameter write (0x02) or a pixel write
//     (0x32). Pixel payloads are clocked on four data lines.
//
// Pixel bursts larger than one transfer are split by the caller; the chunks
// after the first are sent as Continuation frames, which carry no command,
// address or dummy phase because the controller is still inside the write
// burst opened by the first chunk.
package lcdio

import (
	"errors"
	"fmt"
)

// Mode is the electrical interface mode of the panel.
type Mode uint8

const (
	FourWire Mode = iota
	ThreeWire
	QuadIO
)

func (m Mode) String() string {
	switch m {
	case FourWire:
		return "four-wire"
	case ThreeWire:
		return "three-wire"
	case QuadIO:
		return "quad-io"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode returns the Mode named by s, as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{FourWire, ThreeWire, QuadIO} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("lcdio: unknown interface mode %q: %w", s, ErrUnsupported)
}

// DefaultMaxTransferBytes bounds a single transaction payload when a
// Descriptor does not set one.
const DefaultMaxTransferBytes = 32 * 1024

// QSPI command phase values.
const (
	opWriteCmd   = 0x02
	opWriteColor = 0x32
)

// Descriptor fixes how transactions are framed. It is set at construction
// and never mutated.
type Descriptor struct {
	Mode      Mode
	CmdBits   int // width of the command phase
	AddrBits  int // width of the address phase (QuadIO only)
	DummyBits int // dummy cycles after the address phase
	// MaxTransferBytes is the largest payload a single transaction may carry
	// (bus/DMA bound).
	MaxTransferBytes int
}

// DefaultDescriptor returns the usual framing for m.
func DefaultDescriptor(m Mode) Descriptor {
	d := Descriptor{Mode: m, CmdBits: 8, MaxTransferBytes: DefaultMaxTransferBytes}
	switch m {
	case ThreeWire:
		d.CmdBits = 9
	case QuadIO:
		d.AddrBits = 24
	}
	return d
}

// Validate reports whether the descriptor can be encoded.
func (d Descriptor) Validate() error {
	if d.DummyBits < 0 || d.MaxTransferBytes <= 0 {
		return fmt.Errorf("lcdio: invalid dummy bits %d or max transfer %d: %w", d.DummyBits, d.MaxTransferBytes, ErrUnsupported)
	}
	switch d.Mode {
	case FourWire:
		if (d.CmdBits != 8 && d.CmdBits != 16) || d.AddrBits != 0 {
			return fmt.Errorf("lcdio: four-wire needs 8 or 16 command bits and no address phase: %w", ErrUnsupported)
		}
	case ThreeWire:
		if d.CmdBits != 9 || d.AddrBits != 0 || d.DummyBits != 0 {
			return fmt.Errorf("lcdio: three-wire needs 9-bit words without address or dummy phase: %w", ErrUnsupported)
		}
	case QuadIO:
		if d.CmdBits != 8 || d.AddrBits != 24 {
			return fmt.Errorf("lcdio: quad-io needs 8 command bits and 24 address bits: %w", ErrUnsupported)
		}
	default:
		return fmt.Errorf("lcdio: %s: %w", d.Mode, ErrUnsupported)
	}
	return nil
}

// Kind tells whether a payload holds register parameters or pixels.
type Kind uint8

const (
	ParamWrite Kind = iota
	ColorWrite
)

func (k Kind) String() string {
	if k == ColorWrite {
		return "color"
	}
	return "param"
}

// Frame selects the framing of one transaction: a Command frame carries the
// full command/address phases, a Continuation frame carries payload only.
type Frame interface {
	isFrame()
}

// Command opens a transaction for Opcode.
type Command struct {
	Opcode byte
}

// Continuation extends a pixel burst opened by a previous Command frame.
type Continuation struct{}

func (Command) isFrame()      {}
func (Continuation) isFrame() {}

func (c Command) String() string    { return fmt.Sprintf("%02Xh", c.Opcode) }
func (Continuation) String() string { return "continuation" }

// Transaction is one bus transfer as understood by the platform bus
// primitive. Zero widths mean the phase is omitted.
type Transaction struct {
	Cmd       uint32
	CmdBits   int
	Addr      uint32
	AddrBits  int
	DummyBits int
	Data      []byte
	// DataBits is the number of valid bits in Data, counted from the most
	// significant bit of Data[0]. Zero means len(Data)*8.
	DataBits int
	// Lines is the number of data lines used for the data phase (1 or 4).
	Lines int
}

// Bus transmits a single transaction and blocks until it completes.
type Bus interface {
	Transmit(t *Transaction) error
}

var (
	// ErrBusFailure wraps every error reported by a Bus.
	ErrBusFailure = errors.New("lcdio: bus failure")
	// ErrUnsupported is returned for framing the transport cannot encode.
	ErrUnsupported = errors.New("lcdio: unsupported configuration")
	// ErrInvalidFrame is returned when a Continuation is used for anything
	// but pixel data.
	ErrInvalidFrame = errors.New("lcdio: invalid frame")
)

// IO encodes panel writes onto a Bus.
type IO struct {
	bus  Bus
	desc Descriptor
}

// New returns an IO writing to bus with the framing of desc.
func New(bus Bus, desc Descriptor) (*IO, error) {
	if bus == nil {
		return nil, errors.New("lcdio: nil bus")
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &IO{bus: bus, desc: desc}, nil
}

// Descriptor returns the framing in use.
func (p *IO) Descriptor() Descriptor {
	return p.desc
}

// TxParam sends opcode followed by its parameters.
func (p *IO) TxParam(opcode byte, params ...byte) error {
	return p.Send(Command{Opcode: opcode}, ParamWrite, params)
}

// TxColor sends a chunk of pixel data.
func (p *IO) TxColor(f Frame, pixels []byte) error {
	return p.Send(f, ColorWrite, pixels)
}

// Send encodes one write and transmits it as exactly one bus transaction.
func (p *IO) Send(f Frame, k Kind, payload []byte) error {
	t, err := p.encode(f, k, payload)
	if err != nil {
		return err
	}
	if err := p.bus.Transmit(t); err != nil {
		return fmt.Errorf("lcdio: %s %s write: %w: %w", f, k, ErrBusFailure, err)
	}
	return nil
}

func (p *IO) encode(f Frame, k Kind, payload []byte) (*Transaction, error) {
	var cmd Command
	switch v := f.(type) {
	case Command:
		cmd = v
	case Continuation:
		if k != ColorWrite {
			return nil, fmt.Errorf("lcdio: continuation of a %s write: %w", k, ErrInvalidFrame)
		}
		return p.continuation(payload), nil
	default:
		return nil, fmt.Errorf("lcdio: %T: %w", f, ErrInvalidFrame)
	}

	switch p.desc.Mode {
	case QuadIO:
		t := &Transaction{
			Cmd:       opWriteCmd,
			CmdBits:   p.desc.CmdBits,
			Addr:      uint32(cmd.Opcode) << 8,
			AddrBits:  p.desc.AddrBits,
			DummyBits: p.desc.DummyBits,
			Data:      payload,
			Lines:     1,
		}
		if k == ColorWrite {
			t.Cmd = opWriteColor
			t.Lines = 4
		}
		return t, nil
	case ThreeWire:
		w := bitWriter{}
		w.word(false, cmd.Opcode)
		for _, b := range payload {
			w.word(true, b)
		}
		return &Transaction{Data: w.buf, DataBits: w.n, Lines: 1}, nil
	default:
		return &Transaction{
			Cmd:       uint32(cmd.Opcode),
			CmdBits:   p.desc.CmdBits,
			DummyBits: p.desc.DummyBits,
			Data:      payload,
			Lines:     1,
		}, nil
	}
}

func (p *IO) continuation(payload []byte) *Transaction {
	switch p.desc.Mode {
	case QuadIO:
		return &Transaction{Data: payload, Lines: 4}
	case ThreeWire:
		w := bitWriter{}
		for _, b := range payload {
			w.word(true, b)
		}
		return &Transaction{Data: w.buf, DataBits: w.n, Lines: 1}
	default:
		return &Transaction{Data: payload, Lines: 1}
	}
}

// bitWriter packs 9-bit three-wire words MSB first.
type bitWriter struct {
	buf []byte
	n   int
}

func (w *bitWriter) word(dc bool, b byte) {
	v := uint16(b)
	if dc {
		v |= 0x100
	}
	for i := 8; i >= 0; i-- {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[len(w.buf)-1] |= 0x80 >> uint(w.n%8)
		}
		w.n++
	}
}
