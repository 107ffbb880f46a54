package lcdpanel

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/flavioheleno/lcdpanel/lcdio"
)

// MIPI DCS opcodes shared by the supported controllers.
const (
	CmdSWRESET = 0x01 // Software reset
	CmdSLPOUT  = 0x11 // Exit sleep
	CmdINVOFF  = 0x20 // Display inversion off
	CmdINVON   = 0x21 // Display inversion on
	CmdDISPOFF = 0x28 // Display off
	CmdDISPON  = 0x29 // Display on
	CmdCASET   = 0x2A // Column address set
	CmdRASET   = 0x2B // Row address set
	CmdRAMWR   = 0x2C // Memory write
	CmdMADCTL  = 0x36 // Memory data access control
	CmdRAMWRC  = 0x3C // Memory write continue
	CmdCOLMOD  = 0x3A // Interface pixel format
)

// Command is a single vendor register write.
type Command struct {
	Opcode byte
	Data   []byte
	// Delay is how long the bus stays idle after the write.
	Delay time.Duration
}

func (c Command) String() string {
	return fmt.Sprintf("%02Xh[% X]+%s", c.Opcode, c.Data, c.Delay)
}

// Sequence is an ordered init table.
type Sequence []Command

// Clone returns a deep copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	for i, c := range s {
		out[i] = Command{Opcode: c.Opcode, Data: append([]byte(nil), c.Data...), Delay: c.Delay}
	}
	return out
}

// Tracks selects which shadowed registers an init table may overwrite.
type Tracks uint8

const (
	TrackMADCTL Tracks = 1 << iota
	TrackCOLMOD
)

// Interpreter plays init tables through an IO and keeps the register shadow
// in sync with what was written.
type Interpreter struct {
	IO     *lcdio.IO
	Shadow *Shadow
	Tracks Tracks
	// Custom marks a table supplied by the caller. Only those log a warning
	// when they overwrite a tracked register.
	Custom bool
	Sleep  func(time.Duration)
	Log    zerolog.Logger
}

// Play sends every command of seq in order. For each command the shadow is
// updated first when the opcode aliases a tracked register, then the command
// is transmitted, then the bus is left idle for its delay. A transport error
// aborts the remaining commands.
func (in *Interpreter) Play(seq Sequence) error {
	sleep := in.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for i, c := range seq {
		if len(c.Data) > 0 && in.overwrites(c) && in.Custom {
			in.Log.Warn().
				Str("command", fmt.Sprintf("%02Xh", c.Opcode)).
				Msg("command has been used and will be overwritten by external initialization sequence")
		}
		if err := in.IO.TxParam(c.Opcode, c.Data...); err != nil {
			return fmt.Errorf("lcdpanel: init command %d (%02Xh): %w", i, c.Opcode, err)
		}
		sleep(c.Delay)
	}
	in.Log.Debug().Int("commands", len(seq)).Msg("send init commands success")
	return nil
}

// overwrites records c in the shadow and reports whether it aliased a
// tracked register.
func (in *Interpreter) overwrites(c Command) bool {
	switch {
	case c.Opcode == CmdMADCTL && in.Tracks&TrackMADCTL != 0:
		in.Shadow.MADCTL = c.Data[0]
	case c.Opcode == CmdCOLMOD && in.Tracks&TrackCOLMOD != 0:
		in.Shadow.COLMOD = c.Data[0]
	default:
		return false
	}
	return true
}
