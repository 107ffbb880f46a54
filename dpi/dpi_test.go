package dpi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	"github.com/flavioheleno/lcdpanel"
	"github.com/flavioheleno/lcdpanel/lcdio"
	"github.com/flavioheleno/lcdpanel/lcdio/lcdiotest"
)

type fakeLink struct {
	calls      []string
	timing     Timing
	frames     [][]byte
	configErr  error
	refreshErr error
}

func (l *fakeLink) Configure(t Timing) error {
	l.calls = append(l.calls, "configure")
	l.timing = t
	return l.configErr
}

func (l *fakeLink) Refresh(fb []byte) error {
	l.calls = append(l.calls, "refresh")
	l.frames = append(l.frames, append([]byte(nil), fb...))
	return l.refreshErr
}

func (l *fakeLink) Close() error {
	l.calls = append(l.calls, "close")
	return nil
}

func testTiming(w, h int) Timing {
	return Timing{
		PixelClock:  16 * physic.MegaHertz,
		HActive:     w,
		HSyncPulse:  10,
		HBackPorch:  10,
		HFrontPorch: 20,
		VActive:     h,
		VSyncPulse:  2,
		VBackPorch:  8,
		VFrontPorch: 10,
	}
}

func TestTimingValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*Timing)
		wantErr bool
	}{
		{"valid", func(*Timing) {}, false},
		{"no clock", func(t *Timing) { t.PixelClock = 0 }, true},
		{"no width", func(t *Timing) { t.HActive = 0 }, true},
		{"negative porch", func(t *Timing) { t.VBackPorch = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := testTiming(480, 480)
			tt.mod(&tm)
			err := tm.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, lcdpanel.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRefreshRate(t *testing.T) {
	tm := Timing{PixelClock: 600 * physic.KiloHertz, HActive: 80, HFrontPorch: 20, VActive: 90, VBackPorch: 10}
	assert.Equal(t, 60*physic.Hertz, tm.RefreshRate())
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
	_, err = New(&Opts{Link: &fakeLink{}, Timing: testTiming(4, 4), BitsPerPixel: 12})
	assert.ErrorIs(t, err, lcdpanel.ErrUnsupported)
	_, err = New(&Opts{Link: &fakeLink{}, Timing: Timing{}})
	assert.ErrorIs(t, err, lcdpanel.ErrInvalidArgument)

	d, err := New(&Opts{Link: &fakeLink{}, Timing: testTiming(4, 3), BitsPerPixel: 24})
	require.NoError(t, err)
	assert.Equal(t, 3, d.BytesPerPixel())
	assert.Equal(t, 4, d.Bounds().Dx())
	assert.Equal(t, 3, d.Bounds().Dy())
	assert.Nil(t, d.FrameBuffer())
}

func TestLifecycle(t *testing.T) {
	link := &fakeLink{}
	d, err := New(&Opts{Link: link, Timing: testTiming(4, 3)})
	require.NoError(t, err)

	assert.ErrorIs(t, d.DrawBitmap(0, 0, 1, 1, []byte{0, 0}), lcdpanel.ErrInvalidState)
	require.NoError(t, d.Reset())
	require.NoError(t, d.Init())
	assert.Equal(t, lcdpanel.Ready, d.State())
	assert.Len(t, d.FrameBuffer(), 4*3*2)
	assert.Equal(t, 4, link.timing.HActive)

	assert.ErrorIs(t, d.Mirror(true, true), lcdpanel.ErrUnsupported)
	assert.ErrorIs(t, d.SwapXY(true), lcdpanel.ErrUnsupported)
	assert.ErrorIs(t, d.Invert(true), lcdpanel.ErrUnsupported)
	assert.ErrorIs(t, d.DispOnOff(false), lcdpanel.ErrUnsupported)

	require.NoError(t, d.Close())
	assert.Nil(t, d.FrameBuffer())
	assert.ErrorIs(t, d.Close(), lcdpanel.ErrInvalidState)
	assert.ErrorIs(t, d.Init(), lcdpanel.ErrInvalidState)
	assert.Equal(t, []string{"configure", "close"}, link.calls)
}

func TestInitFromUninitialized(t *testing.T) {
	d, err := New(&Opts{Link: &fakeLink{}, Timing: testTiming(2, 2)})
	require.NoError(t, err)
	require.NoError(t, d.Init())
	assert.ErrorIs(t, d.Init(), lcdpanel.ErrInvalidState)
}

func TestReinitKeepsFrameBuffer(t *testing.T) {
	link := &fakeLink{}
	d, err := New(&Opts{Link: link, Timing: testTiming(2, 2)})
	require.NoError(t, err)
	require.NoError(t, d.Init())
	fb := d.FrameBuffer()
	require.NoError(t, d.Fill(0, 0, 2, 2, 0x1234))

	require.NoError(t, d.Reset())
	require.NoError(t, d.Init())
	assert.Equal(t, lcdpanel.Ready, d.State())
	assert.Same(t, &fb[0], &d.FrameBuffer()[0])
	assert.Equal(t, []byte{0x12, 0x34}, d.FrameBuffer()[:2])
	assert.Equal(t, []string{"configure", "refresh", "configure"}, link.calls)
}

func TestInitFailure(t *testing.T) {
	link := &fakeLink{configErr: errors.New("dsi pll unlocked")}
	d, err := New(&Opts{Link: link, Timing: testTiming(2, 2)})
	require.NoError(t, err)
	assert.ErrorIs(t, d.Init(), lcdpanel.ErrBusFailure)
	assert.Equal(t, lcdpanel.Uninitialized, d.State())
	assert.Nil(t, d.FrameBuffer())
}

func TestDrawBitmapWithGap(t *testing.T) {
	link := &fakeLink{}
	d, err := New(&Opts{Link: link, Timing: testTiming(4, 3)})
	require.NoError(t, err)
	require.NoError(t, d.Init())

	d.SetGap(1, 1)
	require.NoError(t, d.DrawBitmap(0, 0, 2, 2, []byte{1, 1, 2, 2, 3, 3, 4, 4}))
	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 1, 1, 2, 2, 0, 0,
		0, 0, 3, 3, 4, 4, 0, 0,
	}
	assert.Equal(t, want, d.FrameBuffer())
	require.Len(t, link.frames, 1)
	assert.Equal(t, want, link.frames[0])

	assert.ErrorIs(t, d.DrawBitmap(2, 1, 4, 2, make([]byte, 4)), lcdpanel.ErrInvalidArgument)
	assert.ErrorIs(t, d.DrawBitmap(0, 0, 2, 2, make([]byte, 7)), lcdpanel.ErrInvalidArgument)
	assert.ErrorIs(t, d.DrawBitmap(1, 1, 1, 2, nil), lcdpanel.ErrInvalidArgument)
	assert.Len(t, link.frames, 1)
}

func TestFill(t *testing.T) {
	link := &fakeLink{}
	d, err := New(&Opts{Link: link, Timing: testTiming(2, 2)})
	require.NoError(t, err)
	require.NoError(t, d.Init())

	require.NoError(t, d.Fill(0, 1, 2, 2, 0xF81F))
	assert.Equal(t, []byte{0, 0, 0, 0, 0xF8, 0x1F, 0xF8, 0x1F}, d.FrameBuffer())

	link.refreshErr = errors.New("fifo underrun")
	assert.ErrorIs(t, d.Fill(0, 0, 1, 1, 0), lcdpanel.ErrBusFailure)
}

func TestStreamLink(t *testing.T) {
	rec := &lcdiotest.Record{}
	desc := lcdio.DefaultDescriptor(lcdio.FourWire)
	desc.MaxTransferBytes = 4
	p, err := lcdio.New(rec, desc)
	require.NoError(t, err)

	d, err := New(&Opts{Link: NewStreamLink(p, 2), Timing: testTiming(2, 2)})
	require.NoError(t, err)
	require.NoError(t, d.Init())
	assert.Zero(t, rec.Len())

	require.NoError(t, d.DrawBitmap(1, 1, 2, 2, []byte{0xAB, 0xCD}))
	require.Len(t, rec.Ops, 4)
	assert.Equal(t, []byte{lcdpanel.CmdCASET, lcdpanel.CmdRASET, lcdpanel.CmdRAMWR}, rec.Opcodes())
	assert.Equal(t, []byte{0, 0, 0, 1}, rec.Ops[0].Data)
	assert.Equal(t, []byte{0, 0, 0, 0}, rec.Ops[2].Data)
	assert.Equal(t, []byte{0, 0, 0xAB, 0xCD}, rec.Ops[3].Data)
	assert.Zero(t, rec.Ops[3].CmdBits)
}
