package lcdpanel_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavioheleno/lcdpanel"
	"github.com/flavioheleno/lcdpanel/rgb565"
)

func TestDrawer(t *testing.T) {
	b := newBench(t, fourWire(0), lcdpanel.Opts{W: 8, H: 4, Profile: lcdpanel.ST77916})
	b.ready(t)
	d, err := lcdpanel.NewDrawer(b.dev)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), d.Bounds())
	assert.Equal(t, rgb565.Model, d.ColorModel())

	// Full frame fast path.
	frame := rgb565.New(d.Bounds())
	frame.SetRGB565(7, 3, 0xFFFF)
	require.NoError(t, d.Draw(d.Bounds(), frame, image.Point{}))
	ops := b.rec.Ops
	require.Len(t, ops, 3)
	assert.Equal(t, []byte{0, 0, 0, 7}, ops[0].Data)
	assert.Equal(t, []byte{0, 0, 0, 3}, ops[1].Data)
	assert.Equal(t, frame.Pix, ops[2].Data)

	// Only the changed area is sent.
	b.rec.Reset()
	blue := image.NewUniform(color.RGBA{B: 0xFF, A: 0xFF})
	require.NoError(t, d.Draw(image.Rect(2, 1, 4, 3), blue, image.Point{}))
	ops = b.rec.Ops
	require.Len(t, ops, 3)
	assert.Equal(t, []byte{0, 2, 0, 3}, ops[0].Data)
	assert.Equal(t, []byte{0, 1, 0, 2}, ops[1].Data)
	assert.Equal(t, []byte{0x00, 0x1F, 0x00, 0x1F, 0x00, 0x1F, 0x00, 0x1F}, ops[2].Data)

	// Nothing changed, nothing sent.
	b.rec.Reset()
	require.NoError(t, d.Draw(image.Rect(2, 1, 4, 3), blue, image.Point{}))
	require.NoError(t, d.Draw(image.Rect(20, 20, 30, 30), blue, image.Point{}))
	assert.Zero(t, b.rec.Len())

	require.NoError(t, d.Halt())
	assert.Equal(t, []byte{lcdpanel.CmdDISPOFF}, b.rec.Opcodes())
	assert.Equal(t, lcdpanel.Disabled, b.dev.State())
	assert.Error(t, d.Draw(d.Bounds(), frame, image.Point{}))
}

func TestNewDrawerNeeds16Bit(t *testing.T) {
	b := newBench(t, fourWire(0), lcdpanel.Opts{W: 8, H: 4, Profile: lcdpanel.ST77916, BitsPerPixel: 18})
	_, err := lcdpanel.NewDrawer(b.dev)
	assert.ErrorIs(t, err, lcdpanel.ErrUnsupported)
}
