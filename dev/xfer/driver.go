package xfer

import "github.com/sarchlab/periphsim/hw"

// A Driver is the program-side handle of the transfer channel.
type Driver struct {
	cr   hw.Reg32
	ndtr hw.Reg32
	isr  hw.Reg32
}

// Setup loads the number of items to transfer and clears the completion
// flag. The channel must be disabled while reloaded.
func (d *Driver) Setup(count uint32) {
	d.ndtr.Store(count)
	d.isr.ClearBits(ISRComplete)
}

// Enable starts the transfer.
func (d *Driver) Enable() {
	d.cr.SetBits(CREnable)
}

// Disable stops the channel.
func (d *Driver) Disable() {
	d.cr.ClearBits(CREnable)
}

// Remaining reads the count of items not yet transferred.
func (d *Driver) Remaining() uint32 {
	return d.ndtr.Load()
}

// CompleteFlagSet reads the completion flag.
func (d *Driver) CompleteFlagSet() bool {
	return d.isr.LoadBits(ISRComplete) != 0
}

// Complete tells if the transfer finished: the completion flag is set or the
// remaining count reached zero. Accepting either signal keeps the test
// meaningful on simulators that never assert the flag.
func (d *Driver) Complete() bool {
	return d.CompleteFlagSet() || d.Remaining() == 0
}
