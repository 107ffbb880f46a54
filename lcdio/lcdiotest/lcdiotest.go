// Package lcdiotest is meant to be used to test drivers built on lcdio.
package lcdiotest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/flavioheleno/lcdpanel/lcdio"
)

// ErrInjected is returned by Record when FailAt is reached and Err is nil.
var ErrInjected = errors.New("lcdiotest: injected failure")

// Record implements lcdio.Bus and records every transaction.
type Record struct {
	sync.Mutex
	Ops []lcdio.Transaction
	// FailAt, when positive, is the 1-based index of the first transaction
	// that fails. Every later transaction fails too.
	FailAt int
	// Err is returned on failure; ErrInjected when nil.
	Err error
	// OnTransmit, when set, is called for each successful transaction.
	OnTransmit func(t lcdio.Transaction)
}

// Transmit implements lcdio.Bus.
func (r *Record) Transmit(t *lcdio.Transaction) error {
	r.Lock()
	if r.FailAt > 0 && len(r.Ops)+1 >= r.FailAt {
		r.Unlock()
		if r.Err != nil {
			return r.Err
		}
		return ErrInjected
	}
	c := *t
	c.Data = append([]byte(nil), t.Data...)
	r.Ops = append(r.Ops, c)
	hook := r.OnTransmit
	r.Unlock()
	if hook != nil {
		hook(c)
	}
	return nil
}

// Len returns the number of recorded transactions.
func (r *Record) Len() int {
	r.Lock()
	defer r.Unlock()
	return len(r.Ops)
}

// Reset drops the recorded transactions.
func (r *Record) Reset() {
	r.Lock()
	defer r.Unlock()
	r.Ops = nil
}

// Opcode returns the panel opcode a recorded transaction was framed for, and
// false for continuation chunks.
//
// It understands the four-wire and quad-io framings. Three-wire transactions
// carry the opcode inside the 9-bit stream and are decoded from the first
// word.
func Opcode(t lcdio.Transaction) (byte, bool) {
	switch {
	case t.AddrBits == 24:
		return byte(t.Addr >> 8), true
	case t.CmdBits > 0:
		return byte(t.Cmd), true
	case t.DataBits > 0 && len(t.Data) >= 2 && t.Data[0]&0x80 == 0:
		return t.Data[0]<<1 | t.Data[1]>>7, true
	}
	return 0, false
}

// Opcodes returns the opcodes of every recorded transaction that opened a
// frame.
func (r *Record) Opcodes() []byte {
	r.Lock()
	defer r.Unlock()
	var out []byte
	for _, t := range r.Ops {
		if op, ok := Opcode(t); ok {
			out = append(out, op)
		}
	}
	return out
}

// String describes a transaction in a compact form for test failures.
func String(t lcdio.Transaction) string {
	if op, ok := Opcode(t); ok {
		return fmt.Sprintf("%02Xh[%d bytes]", op, len(t.Data))
	}
	return fmt.Sprintf("cont[%d bytes]", len(t.Data))
}
