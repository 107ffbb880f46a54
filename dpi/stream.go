package dpi

import (
	"fmt"

	"github.com/flavioheleno/lcdpanel"
	"github.com/flavioheleno/lcdpanel/lcdio"
)

// StreamLink is a Link that rewrites the whole frame of a command-mode
// controller on every Refresh. It lets a frame buffer engine, and the vendor
// layers built on it, run over a plain SPI or QSPI bus.
type StreamLink struct {
	io  *lcdio.IO
	bpp int
	w   int
	h   int
}

// NewStreamLink returns a Link writing through io.
func NewStreamLink(io *lcdio.IO, bytesPerPixel int) *StreamLink {
	return &StreamLink{io: io, bpp: bytesPerPixel}
}

func (s *StreamLink) String() string {
	return fmt.Sprintf("dpi.StreamLink{%s}", s.io.Descriptor().Mode)
}

// Configure records the active area. Porches have no meaning on a command
// bus and are ignored.
func (s *StreamLink) Configure(t Timing) error {
	if lcdpanel.ChunkPixels(s.io.Descriptor(), s.bpp) < 1 {
		return fmt.Errorf("dpi: stream link with %d bytes per pixel: %w", s.bpp, lcdpanel.ErrUnsupported)
	}
	s.w, s.h = t.HActive, t.VActive
	return nil
}

// Refresh opens a full-screen window and streams fb into it.
func (s *StreamLink) Refresh(fb []byte) error {
	x1, y1 := s.w-1, s.h-1
	if err := s.io.TxParam(lcdpanel.CmdCASET, 0, 0, byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := s.io.TxParam(lcdpanel.CmdRASET, 0, 0, byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	return lcdpanel.Stream(s.io, lcdpanel.CmdRAMWR, fb, s.bpp)
}

// Close implements Link.
func (s *StreamLink) Close() error {
	return nil
}
