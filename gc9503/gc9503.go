// Package gc9503 adds the GC9503 controller registers on top of a frame
// buffer engine.
//
// The GC9503 receives pixels over an RGB or MIPI-DSI video link handled by
// the engine (see the dpi package), and its registers over a separate
// command channel. Dev wraps the engine: Init, Close, Reset, Mirror, Invert
// and DispOnOff go to the controller, everything else goes to the engine
// untouched.
package gc9503

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/lcdpanel"
	"github.com/flavioheleno/lcdpanel/lcdio"
)

// Opts is the configuration of the vendor layer.
type Opts struct {
	// Init replaces the default vendor table.
	Init lcdpanel.Sequence

	ColorOrder lcdpanel.ColorOrder
	// BitsPerPixel is 16, 18 or 24 (default: derived from the engine).
	BitsPerPixel int

	RST             gpio.PinOut
	ResetActiveHigh bool

	Sleep  func(time.Duration)
	Logger *zerolog.Logger
}

// Dev is a GC9503 panel.
type Dev struct {
	io     *lcdio.IO
	engine lcdpanel.Panel

	// Engine operations replaced by this layer, called from ours.
	engineInit  func() error
	engineClose func() error

	init            lcdpanel.Sequence
	rst             gpio.PinOut
	resetActiveHigh bool

	sleep func(time.Duration)
	log   zerolog.Logger

	shadow lcdpanel.Shadow
	state  lcdpanel.State
}

// New wraps engine. io carries the register writes; engine must not have
// been initialized yet.
//
// The controller ID is not read back: the command channel is write only.
func New(io *lcdio.IO, engine lcdpanel.Panel, opts *Opts) (d *Dev, err error) {
	if io == nil || engine == nil {
		return nil, errors.New("gc9503: io and engine are required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	if opts.RST != nil {
		if err := opts.RST.Out(gpio.Level(!opts.ResetActiveHigh)); err != nil {
			return nil, fmt.Errorf("gc9503: failed to configure RST: %w", err)
		}
		defer func() {
			if err != nil {
				_ = opts.RST.Halt()
			}
		}()
	}

	var madctl byte
	switch opts.ColorOrder {
	case lcdpanel.RGB:
	case lcdpanel.BGR:
		madctl |= lcdpanel.MADCTLBGR
	default:
		return nil, fmt.Errorf("gc9503: color order %s: %w", opts.ColorOrder, lcdpanel.ErrUnsupported)
	}

	bpp := opts.BitsPerPixel
	if bpp == 0 {
		bpp = 16
		if engine.BytesPerPixel() == 3 {
			bpp = 24
		}
	}
	colmod, ok := colmods[bpp]
	if !ok {
		return nil, fmt.Errorf("gc9503: %d bits per pixel: %w", bpp, lcdpanel.ErrUnsupported)
	}

	d = &Dev{
		io:              io,
		engine:          engine,
		engineInit:      engine.Init,
		engineClose:     engine.Close,
		init:            opts.Init.Clone(),
		rst:             opts.RST,
		resetActiveHigh: opts.ResetActiveHigh,
		sleep:           opts.Sleep,
		shadow:          lcdpanel.Shadow{MADCTL: madctl, COLMOD: colmod},
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	d.log = logger.With().Str("component", "gc9503").Logger()
	d.log.Debug().Str("engine", fmt.Sprint(engine)).Msg("new gc9503 panel")
	return d, nil
}

var colmods = map[int]byte{
	16: 0x55, // RGB565
	18: 0x66, // RGB666
	24: 0x77, // RGB888
}

func (d *Dev) String() string {
	return fmt.Sprintf("gc9503.Dev{%v}", d.engine)
}

// State returns the lifecycle state of the vendor layer.
func (d *Dev) State() lcdpanel.State {
	return d.state
}

// Shadow returns a copy of the register shadow.
func (d *Dev) Shadow() lcdpanel.Shadow {
	return d.shadow
}

// Reset pulses the reset line, or sends a software reset when none is
// wired, then resets the engine so that Init can run again.
func (d *Dev) Reset() error {
	if err := d.state.Check("gc9503", "reset", lcdpanel.Uninitialized, lcdpanel.Reset, lcdpanel.Ready, lcdpanel.Disabled); err != nil {
		return err
	}
	if d.rst != nil {
		for _, step := range resetPulse {
			level := gpio.Level(step.Active == d.resetActiveHigh)
			if err := d.rst.Out(level); err != nil {
				return fmt.Errorf("gc9503: failed to drive RST %s: %w", level, err)
			}
			d.sleep(step.Hold)
		}
	} else {
		if err := d.io.TxParam(lcdpanel.CmdSWRESET); err != nil {
			return fmt.Errorf("gc9503: software reset: %w", err)
		}
		d.sleep(120 * time.Millisecond)
	}
	if err := d.engine.Reset(); err != nil {
		return fmt.Errorf("gc9503: reset engine: %w", err)
	}
	d.state = lcdpanel.Reset
	return nil
}

var resetPulse = []lcdpanel.PulseStep{
	{Active: false, Hold: 5 * time.Millisecond},
	{Active: true, Hold: 10 * time.Millisecond},
	{Active: false, Hold: 120 * time.Millisecond},
}

// Init writes MADCTL and the vendor table, then initializes the engine.
func (d *Dev) Init() error {
	if err := d.state.Check("gc9503", "init", lcdpanel.Reset); err != nil {
		return err
	}
	d.state = lcdpanel.Initializing
	if err := d.initialize(); err != nil {
		d.state = lcdpanel.Uninitialized
		return err
	}
	d.state = lcdpanel.Ready
	return nil
}

func (d *Dev) initialize() error {
	if err := d.io.TxParam(lcdpanel.CmdMADCTL, d.shadow.MADCTL); err != nil {
		return fmt.Errorf("gc9503: madctl: %w", err)
	}
	seq := d.init
	if seq == nil {
		seq = DefaultInit()
	}
	in := lcdpanel.Interpreter{IO: d.io, Shadow: &d.shadow, Tracks: lcdpanel.TrackMADCTL, Custom: d.init != nil, Sleep: d.sleep, Log: d.log}
	if err := in.Play(seq); err != nil {
		return err
	}
	if err := d.engineInit(); err != nil {
		return fmt.Errorf("gc9503: init engine: %w", err)
	}
	return nil
}

// DrawBitmap is handled by the engine.
func (d *Dev) DrawBitmap(x0, y0, x1, y1 int, pixels []byte) error {
	if err := d.state.Check("gc9503", "draw", lcdpanel.Ready); err != nil {
		return err
	}
	return d.engine.DrawBitmap(x0, y0, x1, y1, pixels)
}

// Fill is handled by the engine.
func (d *Dev) Fill(x0, y0, x1, y1 int, color uint32) error {
	if err := d.state.Check("gc9503", "fill", lcdpanel.Ready); err != nil {
		return err
	}
	return d.engine.Fill(x0, y0, x1, y1, color)
}

// Mirror flips the row order. Column mirroring is not available on this
// controller; asking for it only logs a warning.
func (d *Dev) Mirror(x, y bool) error {
	if err := d.state.Check("gc9503", "mirror", lcdpanel.Ready, lcdpanel.Disabled); err != nil {
		return err
	}
	if x {
		d.log.Warn().Msg("mirror x is not supported")
	}
	v := d.shadow.MADCTL &^ lcdpanel.MADCTLMY
	if y {
		v |= lcdpanel.MADCTLMY
	}
	if err := d.io.TxParam(lcdpanel.CmdMADCTL, v); err != nil {
		return fmt.Errorf("gc9503: madctl: %w", err)
	}
	d.shadow.MADCTL = v
	return nil
}

// SwapXY is handled by the engine.
func (d *Dev) SwapXY(swap bool) error {
	if err := d.state.Check("gc9503", "swap", lcdpanel.Ready, lcdpanel.Disabled); err != nil {
		return err
	}
	return d.engine.SwapXY(swap)
}

// Invert turns color inversion on or off.
func (d *Dev) Invert(invert bool) error {
	if err := d.state.Check("gc9503", "invert", lcdpanel.Ready, lcdpanel.Disabled); err != nil {
		return err
	}
	cmd := byte(lcdpanel.CmdINVOFF)
	if invert {
		cmd = lcdpanel.CmdINVON
	}
	if err := d.io.TxParam(cmd); err != nil {
		return fmt.Errorf("gc9503: invert: %w", err)
	}
	d.shadow.Inverted = invert
	return nil
}

// SetGap is handled by the engine.
func (d *Dev) SetGap(x, y int) {
	d.engine.SetGap(x, y)
}

// DispOnOff turns the display output on or off.
func (d *Dev) DispOnOff(on bool) error {
	if err := d.state.Check("gc9503", "display on/off", lcdpanel.Ready, lcdpanel.Disabled); err != nil {
		return err
	}
	cmd, next := byte(lcdpanel.CmdDISPOFF), lcdpanel.Disabled
	if on {
		cmd, next = lcdpanel.CmdDISPON, lcdpanel.Ready
	}
	if err := d.io.TxParam(cmd); err != nil {
		return fmt.Errorf("gc9503: display on/off: %w", err)
	}
	d.state = next
	return nil
}

func (d *Dev) Bounds() image.Rectangle {
	return d.engine.Bounds()
}

func (d *Dev) BytesPerPixel() int {
	return d.engine.BytesPerPixel()
}

// Close releases the reset pin, then closes the engine.
func (d *Dev) Close() error {
	if d.state == lcdpanel.Closed {
		return fmt.Errorf("gc9503: close: %w", lcdpanel.ErrInvalidState)
	}
	d.state = lcdpanel.Closed
	var errs []error
	if d.rst != nil {
		errs = append(errs, d.rst.Halt())
	}
	errs = append(errs, d.engineClose())
	d.log.Debug().Msg("del gc9503 panel")
	return errors.Join(errs...)
}

var _ lcdpanel.Panel = (*Dev)(nil)
