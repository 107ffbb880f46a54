package lcdpanel

import "fmt"

// MADCTL bits.
const (
	MADCTLMY  = 0x80 // Row address order (mirror Y)
	MADCTLMX  = 0x40 // Column address order (mirror X)
	MADCTLMV  = 0x20 // Row/column exchange (swap XY)
	MADCTLBGR = 0x08 // BGR color filter order
)

// Shadow is the last value known to be written to the controller's
// addressing and color-format registers, plus the gap offsets applied to
// every drawing operation.
type Shadow struct {
	MADCTL   byte
	COLMOD   byte
	Inverted bool
	GapX     int
	GapY     int
}

func (s Shadow) String() string {
	return fmt.Sprintf("madctl=%02Xh colmod=%02Xh inverted=%t gap=(%d,%d)", s.MADCTL, s.COLMOD, s.Inverted, s.GapX, s.GapY)
}

// Mirrored returns the MADCTL value with only the mirror bits changed.
func (s Shadow) Mirrored(x, y bool) byte {
	return set(set(s.MADCTL, MADCTLMX, x), MADCTLMY, y)
}

// Swapped returns the MADCTL value with only the exchange bit changed.
func (s Shadow) Swapped(swap bool) byte {
	return set(s.MADCTL, MADCTLMV, swap)
}

func set(v, bit byte, on bool) byte {
	if on {
		return v | bit
	}
	return v &^ bit
}
