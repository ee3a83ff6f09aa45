package freerun

import "github.com/sarchlab/periphsim/hw"

// A Driver is the program-side handle of the counter, built on the one
// writable view of the device's register file. It is the handle a harness
// stores in a shared cell when an interrupt participates.
type Driver struct {
	cr  hw.Reg32
	psc hw.Reg32
	arr hw.Reg32
	cnt hw.Reg32
	sr  hw.Reg32
}

// Configure sets the prescaler and the reload ceiling and clears the count
// and the update flag. The counter must be stopped while reconfigured.
func (d *Driver) Configure(prescaler, reload uint32) {
	d.psc.Store(prescaler)
	d.arr.Store(reload)
	d.cnt.Store(0)
	d.sr.ClearBits(SRUpdate)
}

// Start enables counting.
func (d *Driver) Start() {
	d.cr.SetBits(CREnable)
}

// Stop disables counting.
func (d *Driver) Stop() {
	d.cr.ClearBits(CREnable)
}

// Count reads the current count.
func (d *Driver) Count() uint32 {
	return d.cnt.Load()
}

// Reload reads the configured reload ceiling.
func (d *Driver) Reload() uint32 {
	return d.arr.Load()
}

// UpdateFlagSet reads the update flag. The flag is only trustworthy on
// devices built with a reliable update flag; callers that cannot assume one
// should sample Count through a wraparound sampler instead.
func (d *Driver) UpdateFlagSet() bool {
	return d.sr.LoadBits(SRUpdate) != 0
}

// ClearUpdateFlag clears the update flag.
func (d *Driver) ClearUpdateFlag() {
	d.sr.ClearBits(SRUpdate)
}
