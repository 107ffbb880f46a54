package lcdpanel

import (
	"fmt"

	"github.com/flavioheleno/lcdpanel/lcdio"
)

// Allocator hands out scratch pixel buffers suitable for the bus DMA engine.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// HeapAllocator allocates scratch buffers on the Go heap.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("lcdpanel: scratch buffer of %d bytes: %w", n, ErrInvalidArgument)
	}
	return make([]byte, n), nil
}

// Free implements Allocator.
func (HeapAllocator) Free([]byte) {}

// ChunkPixels returns how many pixels fit in one transfer of desc.
func ChunkPixels(desc lcdio.Descriptor, bytesPerPixel int) int {
	if bytesPerPixel <= 0 {
		return 0
	}
	return desc.MaxTransferBytes / bytesPerPixel
}

// push writes a w*h block of pixels at (x, y). Coordinates already include
// the gap offsets.
func (d *Dev) push(x, y, w, h int, pixels []byte) error {
	x1, y1 := x+w-1, y+h-1
	if err := d.io.TxParam(CmdCASET, byte(x>>8), byte(x), byte(x1>>8), byte(x1)); err != nil {
		return fmt.Errorf("%s: column address: %w", d.profile.Name, err)
	}
	opcode := byte(CmdRAMWR)
	if d.profile.ColumnWindowOnly {
		if y != 0 {
			opcode = CmdRAMWRC
		}
	} else if err := d.io.TxParam(CmdRASET, byte(y>>8), byte(y), byte(y1>>8), byte(y1)); err != nil {
		return fmt.Errorf("%s: row address: %w", d.profile.Name, err)
	}
	return Stream(d.io, opcode, pixels[:w*h*d.format.BytesPerPixel], d.format.BytesPerPixel)
}

// Stream sends pixels as one write burst for opcode, split in chunks no
// larger than the descriptor's transfer size. The first chunk carries the
// full command framing; every other chunk is a continuation of the burst.
func Stream(p *lcdio.IO, opcode byte, pixels []byte, bytesPerPixel int) error {
	capacity := ChunkPixels(p.Descriptor(), bytesPerPixel)
	if capacity < 1 {
		return fmt.Errorf("lcdpanel: transfer of %d bytes cannot hold a %d byte pixel: %w", p.Descriptor().MaxTransferBytes, bytesPerPixel, ErrUnsupported)
	}
	remaining := len(pixels) / bytesPerPixel
	var frame lcdio.Frame = lcdio.Command{Opcode: opcode}
	for remaining > 0 {
		n := min(remaining, capacity)
		if err := p.TxColor(frame, pixels[:n*bytesPerPixel]); err != nil {
			return err
		}
		pixels = pixels[n*bytesPerPixel:]
		remaining -= n
		frame = lcdio.Continuation{}
	}
	return nil
}

// FillRect paints [x0,x1)x[y0,y1) of p with a solid color through a scratch
// buffer from alloc. The color is written big-endian in the panel's pixel
// width. The buffer is released before FillRect returns, on every path.
func FillRect(p Panel, alloc Allocator, x0, y0, x1, y1 int, color uint32) error {
	if err := checkRect(x0, y0, x1, y1); err != nil {
		return err
	}
	bpp := p.BytesPerPixel()
	if bpp < 1 || bpp > 4 {
		return fmt.Errorf("lcdpanel: fill with %d bytes per pixel: %w", bpp, ErrUnsupported)
	}
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	buf, err := alloc.Alloc((x1 - x0) * (y1 - y0) * bpp)
	if err != nil {
		return fmt.Errorf("lcdpanel: fill buffer: %w: %w", ErrBusFailure, err)
	}
	defer alloc.Free(buf)

	var px [4]byte
	for i := 0; i < bpp; i++ {
		px[i] = byte(color >> (8 * uint(bpp-1-i)))
	}
	for off := 0; off < len(buf); off += bpp {
		copy(buf[off:off+bpp], px[:bpp])
	}
	return p.DrawBitmap(x0, y0, x1, y1, buf)
}

func checkRect(x0, y0, x1, y1 int) error {
	if x0 < 0 || y0 < 0 || x0 >= x1 || y0 >= y1 {
		return fmt.Errorf("lcdpanel: rectangle (%d,%d)-(%d,%d): %w", x0, y0, x1, y1, ErrInvalidArgument)
	}
	return nil
}
