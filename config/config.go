// Package config loads panel profiles from YAML files.
//
// A profile names the controller, its geometry and wiring, and optionally
// replaces the controller's init table:
//
//	bus:
//	  mode: quad-io
//	  dev: SPI0.0
//	  speed_hz: 40000000
//	panel:
//	  controller: axs15231b
//	  width: 320
//	  height: 480
//	  rst: GPIO17
//	  init:
//	    - {op: 0x11, delay_ms: 120}
//	    - {op: 0x29}
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/flavioheleno/lcdpanel"
	"github.com/flavioheleno/lcdpanel/lcdio"
)

type Command struct {
	Op      int   `yaml:"op"`
	Data    []int `yaml:"data,omitempty,flow"`
	DelayMs int   `yaml:"delay_ms,omitempty"`
}

type Bus struct {
	Mode             string `yaml:"mode"`               // four-wire | three-wire | quad-io
	Dev              string `yaml:"dev"`                // spireg name, empty for the first port
	SpeedHz          int64  `yaml:"speed_hz,omitempty"` // default 40MHz
	DC               string `yaml:"dc,omitempty"`       // four-wire only
	CmdBits          int    `yaml:"cmd_bits,omitempty"`
	DummyBits        int    `yaml:"dummy_bits,omitempty"`
	MaxTransferBytes int    `yaml:"max_transfer_bytes,omitempty"`
}

type Panel struct {
	Controller      string `yaml:"controller"` // axs15231b | st77916 | gc9503
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	ColorOrder      string `yaml:"color_order,omitempty"`
	BitsPerPixel    int    `yaml:"bits_per_pixel,omitempty"`
	RST             string `yaml:"rst,omitempty"`
	ResetActiveHigh bool   `yaml:"reset_active_high,omitempty"`

	GapX    int  `yaml:"gap_x,omitempty"`
	GapY    int  `yaml:"gap_y,omitempty"`
	MirrorX bool `yaml:"mirror_x,omitempty"`
	MirrorY bool `yaml:"mirror_y,omitempty"`
	SwapXY  bool `yaml:"swap_xy,omitempty"`
	Invert  bool `yaml:"invert,omitempty"`

	Init []Command `yaml:"init,omitempty"`
}

type Profile struct {
	Bus   Bus   `yaml:"bus"`
	Panel Panel `yaml:"panel"`
}

func Load(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a profile from YAML.
func Parse(b []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &p, nil
}

func Save(path string, p *Profile) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Sequence converts the init table. It returns nil when the profile keeps
// the controller default.
func (p *Profile) Sequence() (lcdpanel.Sequence, error) {
	if len(p.Panel.Init) == 0 {
		return nil, nil
	}
	seq := make(lcdpanel.Sequence, 0, len(p.Panel.Init))
	for i, c := range p.Panel.Init {
		if c.Op < 0 || c.Op > 0xFF || c.DelayMs < 0 {
			return nil, fmt.Errorf("config: init[%d]: opcode %#x, delay %dms: %w", i, c.Op, c.DelayMs, lcdpanel.ErrInvalidArgument)
		}
		cmd := lcdpanel.Command{Opcode: byte(c.Op), Delay: time.Duration(c.DelayMs) * time.Millisecond}
		for _, v := range c.Data {
			if v < 0 || v > 0xFF {
				return nil, fmt.Errorf("config: init[%d]: data byte %#x: %w", i, v, lcdpanel.ErrInvalidArgument)
			}
			cmd.Data = append(cmd.Data, byte(v))
		}
		seq = append(seq, cmd)
	}
	return seq, nil
}

// FromSequence stores seq as the profile init table.
func (p *Profile) FromSequence(seq lcdpanel.Sequence) {
	p.Panel.Init = nil
	for _, c := range seq {
		cmd := Command{Op: int(c.Opcode), DelayMs: int(c.Delay / time.Millisecond)}
		for _, b := range c.Data {
			cmd.Data = append(cmd.Data, int(b))
		}
		p.Panel.Init = append(p.Panel.Init, cmd)
	}
}

// Descriptor returns the validated transport descriptor.
func (p *Profile) Descriptor() (lcdio.Descriptor, error) {
	m, err := lcdio.ParseMode(p.Bus.Mode)
	if err != nil {
		return lcdio.Descriptor{}, err
	}
	d := lcdio.DefaultDescriptor(m)
	if p.Bus.CmdBits != 0 {
		d.CmdBits = p.Bus.CmdBits
	}
	d.DummyBits = p.Bus.DummyBits
	if p.Bus.MaxTransferBytes != 0 {
		d.MaxTransferBytes = p.Bus.MaxTransferBytes
	}
	if err := d.Validate(); err != nil {
		return lcdio.Descriptor{}, err
	}
	return d, nil
}

// Frequency returns the bus clock, 0 meaning the transport default.
func (p *Profile) Frequency() physic.Frequency {
	return physic.Frequency(p.Bus.SpeedHz) * physic.Hertz
}

// Controller returns the built-in profile of a command-mode controller.
func (p *Profile) Controller() (*lcdpanel.Profile, error) {
	c, ok := lcdpanel.Profiles()[p.Panel.Controller]
	if !ok {
		return nil, fmt.Errorf("config: controller %q: %w", p.Panel.Controller, lcdpanel.ErrUnsupported)
	}
	return c, nil
}

// Opts returns the panel options described by the profile. Pins are left
// for the caller to resolve.
func (p *Profile) Opts() (*lcdpanel.Opts, error) {
	c, err := p.Controller()
	if err != nil {
		return nil, err
	}
	order, err := lcdpanel.ParseColorOrder(p.Panel.ColorOrder)
	if err != nil {
		return nil, err
	}
	seq, err := p.Sequence()
	if err != nil {
		return nil, err
	}
	return &lcdpanel.Opts{
		W:               p.Panel.Width,
		H:               p.Panel.Height,
		Profile:         c,
		Init:            seq,
		ColorOrder:      order,
		BitsPerPixel:    p.Panel.BitsPerPixel,
		ResetActiveHigh: p.Panel.ResetActiveHigh,
	}, nil
}
