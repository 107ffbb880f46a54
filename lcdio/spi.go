package lcdio

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultFrequency is the SPI clock used by Open when none is given.
const DefaultFrequency = 40 * physic.MegaHertz

// SPIBus transmits transactions over a periph.io connection.
//
// With a D/C pin the command phase is clocked with D/C low and the data phase
// with D/C high (four-wire). Without one every phase is serialized into a
// single Tx. periph.io connections are single-line, so the Lines hint of a
// quad transaction is not honored here; platforms with a real QSPI
// peripheral implement Bus themselves.
type SPIBus struct {
	c  conn.Conn
	dc gpio.PinOut
}

// NewSPIBus returns a Bus writing to c. dc may be nil.
func NewSPIBus(c conn.Conn, dc gpio.PinOut) *SPIBus {
	return &SPIBus{c: c, dc: dc}
}

// Open connects to p in SPI mode 0 and returns an IO framing writes per desc.
//
// desc.Mode FourWire requires dc; ThreeWire and QuadIO ignore it.
func Open(p spi.Port, dc gpio.PinOut, desc Descriptor, f physic.Frequency) (*IO, error) {
	if dc == gpio.INVALID {
		return nil, fmt.Errorf("lcdio: use nil for dc when unused, do not use gpio.INVALID")
	}
	if desc.Mode == FourWire && dc == nil {
		return nil, fmt.Errorf("lcdio: four-wire mode needs a D/C pin: %w", ErrUnsupported)
	}
	if desc.Mode != FourWire {
		dc = nil
	}
	if f == 0 {
		f = DefaultFrequency
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return New(NewSPIBus(c, dc), desc)
}

func (b *SPIBus) String() string {
	return fmt.Sprintf("lcdio.SPIBus{%s}", b.c)
}

// Transmit implements Bus.
func (b *SPIBus) Transmit(t *Transaction) error {
	if t.CmdBits%8 != 0 || t.AddrBits%8 != 0 || t.DummyBits%8 != 0 {
		return fmt.Errorf("lcdio: %d/%d/%d bit phases are not byte aligned: %w", t.CmdBits, t.AddrBits, t.DummyBits, ErrUnsupported)
	}
	header := make([]byte, 0, (t.CmdBits+t.AddrBits+t.DummyBits)/8)
	header = appendBE(header, t.Cmd, t.CmdBits/8)
	header = appendBE(header, t.Addr, t.AddrBits/8)
	header = append(header, make([]byte, t.DummyBits/8)...)

	if b.dc != nil {
		if len(header) > 0 {
			if err := b.dc.Out(gpio.Low); err != nil {
				return err
			}
			if err := b.c.Tx(header, nil); err != nil {
				return err
			}
		}
		if len(t.Data) == 0 {
			return nil
		}
		if err := b.dc.Out(gpio.High); err != nil {
			return err
		}
		return b.c.Tx(t.Data, nil)
	}

	w := append(header, t.Data...)
	if len(w) == 0 {
		return nil
	}
	return b.c.Tx(w, nil)
}

func appendBE(b []byte, v uint32, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}
