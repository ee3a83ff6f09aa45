package irq

import "sync/atomic"

// An EdgeCounter counts events observed in interrupt context. Increments are
// atomic, so a main-context Load never sees a partially applied update and no
// increment is ever lost. The count is 32 bits wide and wraps at 2^32, the
// same width the firmware counters carried.
type EdgeCounter struct {
	count atomic.Uint32
}

// Increment adds one observed event. Meant to be called from a handler.
func (c *EdgeCounter) Increment() {
	c.count.Add(1)
}

// Load returns the current count.
func (c *EdgeCounter) Load() uint32 {
	return c.count.Load()
}
