// Package freerun provides a free-running counter device, the simulated
// counterpart of a general-purpose hardware timer. The count advances on
// board clock ticks, divided by a prescaler, and rolls back to zero after
// reaching the reload register.
//
// The update flag can be configured away to model simulators that never
// assert it on wrap; cycle detection then has to fall back to sampling the
// count itself.
package freerun

import "github.com/sarchlab/periphsim/hw"

// Register offsets from the base of the device's register file.
const (
	CROffset  hw.Addr = 0x00
	PSCOffset hw.Addr = 0x04
	ARROffset hw.Addr = 0x08
	CNTOffset hw.Addr = 0x0c
	SROffset  hw.Addr = 0x10

	regFileSize = 0x14
)

// Bits of the control and status registers.
const (
	CREnable uint32 = 1 << 0
	SRUpdate uint32 = 1 << 0
)

// A Comp is the hardware side of the counter. The board ticks it; it touches
// its registers only through the hardware-side view of its register file.
type Comp struct {
	name        string
	file        *hw.RegisterFile
	reliableUIF bool

	cr  hw.Reg32
	psc hw.Reg32
	arr hw.Reg32
	cnt hw.Reg32
	sr  hw.Reg32

	divider uint32
}

// Name returns the name of the device.
func (c *Comp) Name() string {
	return c.name
}

// File returns the device's register file.
func (c *Comp) File() *hw.RegisterFile {
	return c.file
}

// Tick advances the counter by one board clock cycle.
func (c *Comp) Tick() {
	if c.cr.LoadBits(CREnable) == 0 {
		return
	}

	if c.divider < c.psc.Load() {
		c.divider++
		return
	}
	c.divider = 0

	count := c.cnt.Load() + 1
	if count > c.arr.Load() {
		count = 0
		if c.reliableUIF {
			c.sr.SetBits(SRUpdate)
		}
	}

	c.cnt.Store(count)
}
