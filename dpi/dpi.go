// Package dpi drives panels that scan a frame buffer continuously over a
// parallel RGB (DPI) or MIPI-DSI video link.
//
// Such panels have no pixel memory addressed by commands. The host keeps the
// whole frame in a buffer and the Link pushes it to the glass. Controller
// registers, when there are any, are handled by a vendor layer such as the
// gc9503 package wrapped around a Dev.
package dpi

import (
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/flavioheleno/lcdpanel"
)

// Timing is the video timing of a link. Porches and pulses are counted in
// pixel clocks (horizontal) and lines (vertical).
type Timing struct {
	PixelClock physic.Frequency

	HActive     int
	HSyncPulse  int
	HBackPorch  int
	HFrontPorch int

	VActive     int
	VSyncPulse  int
	VBackPorch  int
	VFrontPorch int
}

// Validate checks that the timing describes a displayable frame.
func (t Timing) Validate() error {
	if t.PixelClock <= 0 {
		return fmt.Errorf("dpi: pixel clock %s: %w", t.PixelClock, lcdpanel.ErrInvalidArgument)
	}
	if t.HActive <= 0 || t.VActive <= 0 {
		return fmt.Errorf("dpi: active area %dx%d: %w", t.HActive, t.VActive, lcdpanel.ErrInvalidArgument)
	}
	for _, v := range []int{t.HSyncPulse, t.HBackPorch, t.HFrontPorch, t.VSyncPulse, t.VBackPorch, t.VFrontPorch} {
		if v < 0 {
			return fmt.Errorf("dpi: negative porch or pulse width: %w", lcdpanel.ErrInvalidArgument)
		}
	}
	return nil
}

// RefreshRate returns the frame rate implied by the timing.
func (t Timing) RefreshRate() physic.Frequency {
	h := t.HActive + t.HSyncPulse + t.HBackPorch + t.HFrontPorch
	v := t.VActive + t.VSyncPulse + t.VBackPorch + t.VFrontPorch
	if h <= 0 || v <= 0 {
		return 0
	}
	return t.PixelClock / physic.Frequency(h*v)
}

// Link moves a frame buffer to the panel.
type Link interface {
	// Configure locks the timing. It is called once, before any Refresh.
	Configure(t Timing) error
	// Refresh sends the frame buffer. fb must not be retained.
	Refresh(fb []byte) error
	// Close stops the link.
	Close() error
}

// Opts is the configuration of a Dev.
type Opts struct {
	// Timing of the link. HActive and VActive give the panel size.
	Timing Timing
	// Link is required.
	Link Link

	BitsPerPixel int // 16, 18 or 24 (default: 16)

	// Allocator provides the frame buffer (default: lcdpanel.HeapAllocator).
	Allocator lcdpanel.Allocator
	Logger    *zerolog.Logger
}

// Dev is a frame buffer engine.
type Dev struct {
	link   Link
	timing Timing
	rect   image.Rectangle
	bpp    int

	alloc lcdpanel.Allocator
	fb    []byte
	gapX  int
	gapY  int

	log   zerolog.Logger
	state lcdpanel.State
}

// New returns an engine in the Uninitialized state. Nothing is sent to the
// link until Init.
func New(opts *Opts) (*Dev, error) {
	if opts == nil || opts.Link == nil {
		return nil, errors.New("dpi: a link is required")
	}
	var bpp int
	switch opts.BitsPerPixel {
	case 0, 16:
		bpp = 2
	case 18, 24:
		bpp = 3
	default:
		return nil, fmt.Errorf("dpi: %d bits per pixel: %w", opts.BitsPerPixel, lcdpanel.ErrUnsupported)
	}
	if err := opts.Timing.Validate(); err != nil {
		return nil, err
	}
	d := &Dev{
		link:   opts.Link,
		timing: opts.Timing,
		rect:   image.Rect(0, 0, opts.Timing.HActive, opts.Timing.VActive),
		bpp:    bpp,
		alloc:  opts.Allocator,
	}
	if d.alloc == nil {
		d.alloc = lcdpanel.HeapAllocator{}
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	d.log = logger.With().Str("component", "dpi").Logger()
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("dpi.Dev{%dx%d@%s}", d.rect.Dx(), d.rect.Dy(), d.timing.RefreshRate())
}

func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

func (d *Dev) BytesPerPixel() int {
	return d.bpp
}

// State returns the lifecycle state.
func (d *Dev) State() lcdpanel.State {
	return d.state
}

// FrameBuffer returns the frame buffer, nil before Init.
func (d *Dev) FrameBuffer() []byte {
	return d.fb
}

// Reset has nothing to do on a video link.
func (d *Dev) Reset() error {
	if err := d.state.Check("dpi", "reset", lcdpanel.Uninitialized, lcdpanel.Reset, lcdpanel.Ready); err != nil {
		return err
	}
	d.state = lcdpanel.Reset
	return nil
}

// Init configures the link and allocates the frame buffer.
func (d *Dev) Init() error {
	if err := d.state.Check("dpi", "init", lcdpanel.Uninitialized, lcdpanel.Reset); err != nil {
		return err
	}
	d.state = lcdpanel.Initializing
	if err := d.link.Configure(d.timing); err != nil {
		d.state = lcdpanel.Uninitialized
		return fmt.Errorf("dpi: configure link: %w: %w", lcdpanel.ErrBusFailure, err)
	}
	// A frame buffer left by an earlier Init is kept.
	if d.fb == nil {
		fb, err := d.alloc.Alloc(d.rect.Dx() * d.rect.Dy() * d.bpp)
		if err != nil {
			d.state = lcdpanel.Uninitialized
			return fmt.Errorf("dpi: frame buffer: %w", err)
		}
		d.fb = fb
	}
	d.state = lcdpanel.Ready
	d.log.Debug().Stringer("refresh", d.timing.RefreshRate()).Msg("link configured")
	return nil
}

// DrawBitmap copies pixels into the frame buffer and refreshes the link.
func (d *Dev) DrawBitmap(x0, y0, x1, y1 int, pixels []byte) error {
	if err := d.state.Check("dpi", "draw", lcdpanel.Ready); err != nil {
		return err
	}
	if x0 < 0 || y0 < 0 || x0 >= x1 || y0 >= y1 {
		return fmt.Errorf("dpi: rectangle (%d,%d)-(%d,%d): %w", x0, y0, x1, y1, lcdpanel.ErrInvalidArgument)
	}
	r := image.Rect(x0, y0, x1, y1).Add(image.Pt(d.gapX, d.gapY))
	if !r.In(d.rect) {
		return fmt.Errorf("dpi: rectangle %v outside %v: %w", r, d.rect, lcdpanel.ErrInvalidArgument)
	}
	row := r.Dx() * d.bpp
	if len(pixels) < row*r.Dy() {
		return fmt.Errorf("dpi: %d bytes for %v: %w", len(pixels), r, lcdpanel.ErrInvalidArgument)
	}
	stride := d.rect.Dx() * d.bpp
	for y := 0; y < r.Dy(); y++ {
		off := (r.Min.Y+y)*stride + r.Min.X*d.bpp
		copy(d.fb[off:off+row], pixels[y*row:(y+1)*row])
	}
	if err := d.link.Refresh(d.fb); err != nil {
		return fmt.Errorf("dpi: refresh: %w: %w", lcdpanel.ErrBusFailure, err)
	}
	return nil
}

// Fill paints a rectangle of the frame buffer with a solid color.
func (d *Dev) Fill(x0, y0, x1, y1 int, color uint32) error {
	if err := d.state.Check("dpi", "fill", lcdpanel.Ready); err != nil {
		return err
	}
	return lcdpanel.FillRect(d, d.alloc, x0, y0, x1, y1, color)
}

// Mirror is not available without controller registers.
func (d *Dev) Mirror(x, y bool) error {
	return fmt.Errorf("dpi: mirror: %w", lcdpanel.ErrUnsupported)
}

// SwapXY is not available without controller registers.
func (d *Dev) SwapXY(swap bool) error {
	return fmt.Errorf("dpi: swap xy: %w", lcdpanel.ErrUnsupported)
}

// Invert is not available without controller registers.
func (d *Dev) Invert(invert bool) error {
	return fmt.Errorf("dpi: invert: %w", lcdpanel.ErrUnsupported)
}

// DispOnOff is not available without controller registers.
func (d *Dev) DispOnOff(on bool) error {
	return fmt.Errorf("dpi: display on/off: %w", lcdpanel.ErrUnsupported)
}

func (d *Dev) SetGap(x, y int) {
	d.gapX, d.gapY = x, y
}

// Close stops the link and releases the frame buffer.
func (d *Dev) Close() error {
	if d.state == lcdpanel.Closed {
		return fmt.Errorf("dpi: close: %w", lcdpanel.ErrInvalidState)
	}
	d.state = lcdpanel.Closed
	if d.fb != nil {
		d.alloc.Free(d.fb)
		d.fb = nil
	}
	d.log.Debug().Msg("del panel")
	return d.link.Close()
}

var _ lcdpanel.Panel = (*Dev)(nil)
