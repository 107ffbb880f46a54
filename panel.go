package lcdpanel

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/lcdpanel/lcdio"
)

var (
	// ErrInvalidArgument is returned for malformed rectangles, short pixel
	// buffers and bad geometry. The bus is not touched.
	ErrInvalidArgument = errors.New("lcdpanel: invalid argument")
	// ErrInvalidState is returned when an operation is called outside the
	// states it is valid in. The bus is not touched.
	ErrInvalidState = errors.New("lcdpanel: invalid state")
	// ErrUnsupported is returned for color depths, color orders, framings
	// or operations the panel cannot provide.
	ErrUnsupported = lcdio.ErrUnsupported
	// ErrBusFailure wraps transport failures.
	ErrBusFailure = lcdio.ErrBusFailure
)

// State is the lifecycle state of a panel.
type State uint8

const (
	Uninitialized State = iota
	Reset
	Initializing
	Ready
	Disabled
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Reset:
		return "reset"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Disabled:
		return "disabled"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Check returns ErrInvalidState unless s is one of allowed.
func (s State) Check(name, op string, allowed ...State) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %s while %s: %w", name, op, s, ErrInvalidState)
}

// Panel is the operation set shared by every panel driver.
type Panel interface {
	// Reset brings the controller to its power-on state.
	Reset() error
	// Init configures the controller after Reset.
	Init() error
	// DrawBitmap writes [x0,x1)x[y0,y1) from pixels, row major.
	DrawBitmap(x0, y0, x1, y1 int, pixels []byte) error
	// Fill paints [x0,x1)x[y0,y1) with a solid color.
	Fill(x0, y0, x1, y1 int, color uint32) error
	Mirror(x, y bool) error
	SwapXY(swap bool) error
	Invert(invert bool) error
	// SetGap offsets every later drawing operation.
	SetGap(x, y int)
	DispOnOff(on bool) error
	Bounds() image.Rectangle
	BytesPerPixel() int
	// Close releases the panel. It must be called exactly once.
	Close() error
}

// Opts is the configuration of a Dev.
type Opts struct {
	// Display dimensions in pixels
	W int
	H int

	// Profile selects the controller (default: AXS15231B).
	Profile *Profile
	// Init replaces the profile's default init table.
	Init Sequence

	ColorOrder   ColorOrder
	BitsPerPixel int // default: 16

	// Optional hardware reset pin
	RST             gpio.PinOut
	ResetActiveHigh bool

	// Allocator provides Fill scratch buffers (default: HeapAllocator).
	Allocator Allocator
	// Sleep blocks for command delays and reset holds (default: time.Sleep).
	Sleep func(time.Duration)
	// Logger receives diagnostics (default: the global zerolog logger).
	Logger *zerolog.Logger
}

// Dev is a panel driven through discrete pixel-streaming commands.
type Dev struct {
	io      *lcdio.IO
	profile *Profile
	init    Sequence
	custom  bool
	format  PixelFormat
	rect    image.Rectangle

	rst             gpio.PinOut
	resetActiveHigh bool

	alloc Allocator
	sleep func(time.Duration)
	log   zerolog.Logger

	shadow Shadow
	state  State
}

// NewSPI connects to p with the framing of desc and returns a Dev.
//
// dc is only used in four-wire mode.
func NewSPI(p spi.Port, dc gpio.PinOut, desc lcdio.Descriptor, f physic.Frequency, opts *Opts) (*Dev, error) {
	io, err := lcdio.Open(p, dc, desc, f)
	if err != nil {
		return nil, err
	}
	return New(io, opts)
}

// New returns a Dev in the Uninitialized state. Call Reset then Init before
// drawing.
//
// When a reset pin is given it is driven to its inactive level here and
// released again if construction fails.
func New(io *lcdio.IO, opts *Opts) (d *Dev, err error) {
	if io == nil {
		return nil, fmt.Errorf("lcdpanel: nil IO: %w", ErrInvalidArgument)
	}
	if opts == nil {
		opts = &Opts{}
	}
	profile := opts.Profile
	if profile == nil {
		profile = AXS15231B
	}
	if opts.RST != nil {
		if err := opts.RST.Out(gpio.Level(!opts.ResetActiveHigh)); err != nil {
			return nil, fmt.Errorf("%s: failed to configure RST: %w", profile.Name, err)
		}
		defer func() {
			if err != nil {
				_ = opts.RST.Halt()
			}
		}()
	}

	if opts.W <= 0 || opts.H <= 0 || opts.W > 0x10000 || opts.H > 0x10000 {
		return nil, fmt.Errorf("%s: geometry %dx%d: %w", profile.Name, opts.W, opts.H, ErrInvalidArgument)
	}
	bpp := opts.BitsPerPixel
	if bpp == 0 {
		bpp = 16
	}
	format, err := profile.Format(bpp)
	if err != nil {
		return nil, err
	}
	var madctl byte
	switch opts.ColorOrder {
	case RGB:
	case BGR:
		madctl |= MADCTLBGR
	default:
		return nil, fmt.Errorf("%s: color order %s: %w", profile.Name, opts.ColorOrder, ErrUnsupported)
	}
	if ChunkPixels(io.Descriptor(), format.BytesPerPixel) < 1 {
		return nil, fmt.Errorf("%s: max transfer of %d bytes: %w", profile.Name, io.Descriptor().MaxTransferBytes, ErrUnsupported)
	}

	d = &Dev{
		io:              io,
		profile:         profile,
		init:            opts.Init.Clone(),
		custom:          opts.Init != nil,
		format:          format,
		rect:            image.Rect(0, 0, opts.W, opts.H),
		rst:             opts.RST,
		resetActiveHigh: opts.ResetActiveHigh,
		alloc:           opts.Allocator,
		sleep:           opts.Sleep,
		shadow:          Shadow{MADCTL: madctl, COLMOD: format.COLMOD},
	}
	if d.init == nil {
		d.init = profile.DefaultInit()
	}
	if d.alloc == nil {
		d.alloc = HeapAllocator{}
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	d.log = logger.With().Str("component", profile.Name).Logger()
	d.log.Debug().Str("dev", d.String()).Msg("new panel")
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s.Dev{%dx%d, %s}", d.profile.Name, d.rect.Dx(), d.rect.Dy(), d.io.Descriptor().Mode)
}

// Bounds returns the panel geometry.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// BytesPerPixel returns the size of a pixel in DrawBitmap buffers.
func (d *Dev) BytesPerPixel() int {
	return d.format.BytesPerPixel
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// Shadow returns a copy of the register shadow.
func (d *Dev) Shadow() Shadow {
	return d.shadow
}

// Reset pulses the reset line, or sends a software reset when none is
// wired.
func (d *Dev) Reset() error {
	if err := d.state.Check(d.profile.Name, "reset", Uninitialized, Reset, Ready, Disabled); err != nil {
		return err
	}
	if d.rst != nil {
		for _, step := range d.profile.ResetPulse {
			level := gpio.Level(step.Active == d.resetActiveHigh)
			if err := d.rst.Out(level); err != nil {
				return fmt.Errorf("%s: failed to drive RST %s: %w", d.profile.Name, level, err)
			}
			d.sleep(step.Hold)
		}
	} else {
		if err := d.io.TxParam(CmdSWRESET); err != nil {
			return fmt.Errorf("%s: software reset: %w", d.profile.Name, err)
		}
		d.sleep(d.profile.SoftResetDelay)
	}
	d.state = Reset
	return nil
}

// Init exits sleep, writes the shadowed MADCTL and COLMOD values and plays
// the init table. A failed Init leaves the panel Uninitialized.
func (d *Dev) Init() error {
	if err := d.state.Check(d.profile.Name, "init", Reset); err != nil {
		return err
	}
	d.state = Initializing
	if err := d.initialize(); err != nil {
		d.state = Uninitialized
		return err
	}
	d.state = Ready
	return nil
}

func (d *Dev) initialize() error {
	if err := d.io.TxParam(CmdSLPOUT); err != nil {
		return fmt.Errorf("%s: sleep out: %w", d.profile.Name, err)
	}
	d.sleep(d.profile.SleepOutDelay)
	if err := d.io.TxParam(CmdMADCTL, d.shadow.MADCTL); err != nil {
		return fmt.Errorf("%s: madctl: %w", d.profile.Name, err)
	}
	if err := d.io.TxParam(CmdCOLMOD, d.shadow.COLMOD); err != nil {
		return fmt.Errorf("%s: colmod: %w", d.profile.Name, err)
	}
	in := Interpreter{IO: d.io, Shadow: &d.shadow, Tracks: d.profile.Tracks, Custom: d.custom, Sleep: d.sleep, Log: d.log}
	return in.Play(d.init)
}

// DrawBitmap writes pixels to [x0,x1)x[y0,y1), shifted by the gap.
func (d *Dev) DrawBitmap(x0, y0, x1, y1 int, pixels []byte) error {
	if err := d.state.Check(d.profile.Name, "draw", Ready); err != nil {
		return err
	}
	if err := checkRect(x0, y0, x1, y1); err != nil {
		return err
	}
	w, h := x1-x0, y1-y0
	if need := w * h * d.format.BytesPerPixel; len(pixels) < need {
		return fmt.Errorf("%s: %d bytes for a %dx%d bitmap, need %d: %w", d.profile.Name, len(pixels), w, h, need, ErrInvalidArgument)
	}
	x, y := x0+d.shadow.GapX, y0+d.shadow.GapY
	if x < 0 || y < 0 || x+w-1 > 0xFFFF || y+h-1 > 0xFFFF {
		return fmt.Errorf("%s: bitmap at (%d,%d) with gap: %w", d.profile.Name, x, y, ErrInvalidArgument)
	}
	return d.push(x, y, w, h, pixels)
}

// Fill paints [x0,x1)x[y0,y1) with color, big-endian in the pixel width.
func (d *Dev) Fill(x0, y0, x1, y1 int, color uint32) error {
	if err := d.state.Check(d.profile.Name, "fill", Ready); err != nil {
		return err
	}
	return FillRect(d, d.alloc, x0, y0, x1, y1, color)
}

// Mirror sets the mirror bits of MADCTL.
func (d *Dev) Mirror(x, y bool) error {
	if err := d.state.Check(d.profile.Name, "mirror", Ready, Disabled); err != nil {
		return err
	}
	return d.writeMADCTL(d.shadow.Mirrored(x, y))
}

// SwapXY sets the row/column exchange bit of MADCTL.
func (d *Dev) SwapXY(swap bool) error {
	if err := d.state.Check(d.profile.Name, "swap", Ready, Disabled); err != nil {
		return err
	}
	return d.writeMADCTL(d.shadow.Swapped(swap))
}

func (d *Dev) writeMADCTL(v byte) error {
	if err := d.io.TxParam(CmdMADCTL, v); err != nil {
		return fmt.Errorf("%s: madctl: %w", d.profile.Name, err)
	}
	d.shadow.MADCTL = v
	return nil
}

// Invert turns color inversion on or off.
func (d *Dev) Invert(invert bool) error {
	if err := d.state.Check(d.profile.Name, "invert", Ready, Disabled); err != nil {
		return err
	}
	cmd := byte(CmdINVOFF)
	if invert {
		cmd = CmdINVON
	}
	if err := d.io.TxParam(cmd); err != nil {
		return fmt.Errorf("%s: invert: %w", d.profile.Name, err)
	}
	d.shadow.Inverted = invert
	return nil
}

// SetGap offsets later drawing operations. Nothing is sent.
func (d *Dev) SetGap(x, y int) {
	d.shadow.GapX, d.shadow.GapY = x, y
}

// DispOnOff turns the display output on or off.
func (d *Dev) DispOnOff(on bool) error {
	if err := d.state.Check(d.profile.Name, "display on/off", Ready, Disabled); err != nil {
		return err
	}
	cmd, next := byte(CmdDISPOFF), Disabled
	if on {
		cmd, next = CmdDISPON, Ready
	}
	if err := d.io.TxParam(cmd); err != nil {
		return fmt.Errorf("%s: display on/off: %w", d.profile.Name, err)
	}
	d.state = next
	return nil
}

// Close releases the reset pin. The Dev cannot be used afterwards.
func (d *Dev) Close() error {
	if d.state == Closed {
		return fmt.Errorf("%s: close: %w", d.profile.Name, ErrInvalidState)
	}
	d.state = Closed
	d.log.Debug().Msg("del panel")
	if d.rst != nil {
		return d.rst.Halt()
	}
	return nil
}

var _ Panel = (*Dev)(nil)
