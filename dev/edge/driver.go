package edge

import "github.com/sarchlab/periphsim/hw"

// A Driver is the program-side handle of the edge source. Because the
// interrupt handler needs it to clear the pending bit, the harness shares it
// with the handler through an irq.Cell and touches it only under the line's
// critical section.
type Driver struct {
	cfg hw.Reg32
	pr  hw.Reg32
}

// EnableRising enables rising-edge triggering.
func (d *Driver) EnableRising() {
	d.cfg.SetBits(CFGRisingEnable)
}

// EnableFalling enables falling-edge triggering.
func (d *Driver) EnableFalling() {
	d.cfg.SetBits(CFGFallingEnable)
}

// Pending reads the latched pending bit.
func (d *Driver) Pending() bool {
	return d.pr.LoadBits(PRPending) != 0
}

// ClearPending clears the latched pending bit. Handlers must do this before
// their critical section ends, or the event the bit represents is lost.
func (d *Driver) ClearPending() {
	d.pr.ClearBits(PRPending)
}
