// Package xfer provides a block-transfer device in the mold of a DMA
// channel: software loads a transfer count, enables the channel, and the
// device counts the remaining-items register down to zero, setting a
// completion flag when it gets there.
//
// Simulators disagree on whether the completion flag is trustworthy, so the
// driver's completion test accepts either signal: the flag set, or the
// remaining count at zero. That one policy replaces the per-test variations
// the firmware accumulated.
package xfer

import "github.com/sarchlab/periphsim/hw"

// Register offsets from the base of the device's register file.
const (
	CROffset   hw.Addr = 0x00
	NDTROffset hw.Addr = 0x04
	ISROffset  hw.Addr = 0x08

	regFileSize = 0x0c
)

// Bits of the control and interrupt status registers.
const (
	CREnable uint32 = 1 << 0

	ISRComplete uint32 = 1 << 1
)

// A Comp is the hardware side of the transfer channel.
type Comp struct {
	name         string
	file         *hw.RegisterFile
	itemsPerTick uint32
	reliableFlag bool

	cr   hw.Reg32
	ndtr hw.Reg32
	isr  hw.Reg32
}

// Name returns the name of the device.
func (c *Comp) Name() string {
	return c.name
}

// File returns the device's register file.
func (c *Comp) File() *hw.RegisterFile {
	return c.file
}

// Tick moves up to itemsPerTick items and updates the completion flag when
// the transfer drains.
func (c *Comp) Tick() {
	if c.cr.LoadBits(CREnable) == 0 {
		return
	}

	remaining := c.ndtr.Load()
	if remaining == 0 {
		return
	}

	if remaining > c.itemsPerTick {
		remaining -= c.itemsPerTick
	} else {
		remaining = 0
	}

	c.ndtr.Store(remaining)

	if remaining == 0 && c.reliableFlag {
		c.isr.SetBits(ISRComplete)
	}
}
