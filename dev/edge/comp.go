// Package edge provides an external-interrupt source: a two-level input line
// (a button, in the firmware tests this models) that pends an interrupt on
// configured edges and latches a pending bit until the handler clears it.
package edge

import (
	"sync/atomic"

	"github.com/sarchlab/periphsim/hw"
	"github.com/sarchlab/periphsim/irq"
)

// Register offsets from the base of the device's register file.
const (
	CFGOffset hw.Addr = 0x00
	PROffset  hw.Addr = 0x04

	regFileSize = 0x08
)

// Bits of the configuration and pending registers.
const (
	CFGRisingEnable  uint32 = 1 << 0
	CFGFallingEnable uint32 = 1 << 1

	PRPending uint32 = 1 << 0
)

// A Comp is the hardware side of the edge source.
type Comp struct {
	name       string
	file       *hw.RegisterFile
	controller *irq.Controller
	line       *irq.Line

	cfg hw.Reg32
	pr  hw.Reg32

	level atomic.Bool
}

// Name returns the name of the device.
func (c *Comp) Name() string {
	return c.name
}

// File returns the device's register file.
func (c *Comp) File() *hw.RegisterFile {
	return c.file
}

// Tick does nothing; the device is purely event driven.
func (c *Comp) Tick() {}

// Press drives the input high. A rising edge pends the line if rising
// triggers are enabled.
func (c *Comp) Press() {
	if c.level.Swap(true) {
		return
	}

	c.edge(CFGRisingEnable)
}

// Release drives the input low. A falling edge pends the line if falling
// triggers are enabled.
func (c *Comp) Release() {
	if !c.level.Swap(false) {
		return
	}

	c.edge(CFGFallingEnable)
}

func (c *Comp) edge(triggerBit uint32) {
	if c.cfg.LoadBits(triggerBit) == 0 {
		return
	}

	c.pr.SetBits(PRPending)
	c.controller.Pend(c.line)
}
