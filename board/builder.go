package board

import (
	"time"

	"github.com/sarchlab/periphsim/hw"
	"github.com/sarchlab/periphsim/irq"
)

// A Builder creates boards.
type Builder struct {
	name         string
	tickInterval time.Duration
	manualClock  bool
}

// MakeBuilder returns a builder with a free-running clock.
func MakeBuilder() Builder {
	return Builder{
		name: "Board",
	}
}

// WithName sets the name of the board.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithTickInterval sets the host-time pause between clock ticks. Zero, the
// default, ticks as fast as the host allows.
func (b Builder) WithTickInterval(d time.Duration) Builder {
	b.tickInterval = d
	return b
}

// WithManualClock disables the clock goroutine. The clock then only advances
// through Step, which makes device timing fully deterministic in tests.
func (b Builder) WithManualClock() Builder {
	b.manualClock = true
	return b
}

// Build creates the board.
func (b Builder) Build() *Board {
	return &Board{
		name:         b.name,
		space:        hw.NewSpace(),
		controller:   irq.NewController(),
		tickInterval: b.tickInterval,
		manualClock:  b.manualClock,
		stop:         make(chan struct{}),
	}
}
