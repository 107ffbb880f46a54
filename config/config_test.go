package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	"github.com/flavioheleno/lcdpanel"
	"github.com/flavioheleno/lcdpanel/lcdio"
)

const sample = `
bus:
  mode: quad-io
  dev: SPI0.0
  speed_hz: 40000000
panel:
  controller: axs15231b
  width: 320
  height: 480
  color_order: bgr
  rst: GPIO17
  init:
    - {op: 0x36, data: [0x60]}
    - {op: 0x11, delay_ms: 120}
    - {op: 0x29}
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "SPI0.0", p.Bus.Dev)
	assert.Equal(t, 40*physic.MegaHertz, p.Frequency())
	assert.Equal(t, "GPIO17", p.Panel.RST)

	seq, err := p.Sequence()
	require.NoError(t, err)
	assert.Equal(t, lcdpanel.Sequence{
		{Opcode: 0x36, Data: []byte{0x60}},
		{Opcode: 0x11, Delay: 120 * time.Millisecond},
		{Opcode: 0x29},
	}, seq)

	desc, err := p.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, lcdio.DefaultDescriptor(lcdio.QuadIO), desc)

	opts, err := p.Opts()
	require.NoError(t, err)
	assert.Equal(t, 320, opts.W)
	assert.Equal(t, 480, opts.H)
	assert.Equal(t, lcdpanel.BGR, opts.ColorOrder)
	assert.Same(t, lcdpanel.AXS15231B, opts.Profile)
	assert.Len(t, opts.Init, 3)
}

func TestSaveLoad(t *testing.T) {
	want := &Profile{
		Bus: Bus{Mode: "four-wire", DC: "GPIO25", MaxTransferBytes: 4096},
		Panel: Panel{
			Controller:   "st77916",
			Width:        360,
			Height:       360,
			BitsPerPixel: 18,
			GapX:         2,
			MirrorY:      true,
		},
	}
	want.FromSequence(lcdpanel.Sequence{
		{Opcode: 0xF0, Data: []byte{0x28}},
		{Opcode: 0x11, Delay: 120 * time.Millisecond},
	})

	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	desc, err := got.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, lcdio.FourWire, desc.Mode)
	assert.Equal(t, 4096, desc.MaxTransferBytes)
}

func TestDefaultSequence(t *testing.T) {
	p := &Profile{}
	seq, err := p.Sequence()
	require.NoError(t, err)
	assert.Nil(t, seq)
}

func TestInvalidProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		call    func(*Profile) error
		wantErr error
	}{
		{
			"opcode out of range",
			Profile{Panel: Panel{Init: []Command{{Op: 0x100}}}},
			func(p *Profile) error { _, err := p.Sequence(); return err },
			lcdpanel.ErrInvalidArgument,
		},
		{
			"data out of range",
			Profile{Panel: Panel{Init: []Command{{Op: 0x36, Data: []int{-1}}}}},
			func(p *Profile) error { _, err := p.Sequence(); return err },
			lcdpanel.ErrInvalidArgument,
		},
		{
			"unknown mode",
			Profile{Bus: Bus{Mode: "octal"}},
			func(p *Profile) error { _, err := p.Descriptor(); return err },
			lcdio.ErrUnsupported,
		},
		{
			"three-wire with dummy bits",
			Profile{Bus: Bus{Mode: "three-wire", DummyBits: 8}},
			func(p *Profile) error { _, err := p.Descriptor(); return err },
			lcdio.ErrUnsupported,
		},
		{
			"unknown controller",
			Profile{Panel: Panel{Controller: "ili9341"}},
			func(p *Profile) error { _, err := p.Opts(); return err },
			lcdpanel.ErrUnsupported,
		},
		{
			"bad color order",
			Profile{Panel: Panel{Controller: "st77916", ColorOrder: "grb"}},
			func(p *Profile) error { _, err := p.Opts(); return err },
			lcdpanel.ErrUnsupported,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(&tt.profile), tt.wantErr)
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse([]byte("bus: [unterminated"))
	assert.Error(t, err)
}
