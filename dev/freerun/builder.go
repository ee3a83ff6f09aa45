package freerun

import (
	"log"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/hw"
)

// A Builder creates a free-running counter device on a board.
type Builder struct {
	name        string
	base        hw.Addr
	board       *board.Board
	reliableUIF bool
}

// MakeBuilder returns a builder with a reliable update flag.
func MakeBuilder() Builder {
	return Builder{
		reliableUIF: true,
	}
}

// WithName sets the name of the device.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithBase sets the base address of the device's register file.
func (b Builder) WithBase(base hw.Addr) Builder {
	b.base = base
	return b
}

// WithBoard sets the board the device attaches to.
func (b Builder) WithBoard(brd *board.Board) Builder {
	b.board = brd
	return b
}

// WithUnreliableUpdateFlag makes the device never assert its update flag on
// wrap, modeling the simulator behavior that motivates sampling the count.
func (b Builder) WithUnreliableUpdateFlag() Builder {
	b.reliableUIF = false
	return b
}

// Build creates the device, maps it into the board's address space, and
// returns the hardware component together with its program-side driver.
func (b Builder) Build() (*Comp, *Driver) {
	if b.board == nil {
		log.Panic("a free-running counter requires a board")
	}

	file := hw.NewRegisterFile(b.name, b.base, regFileSize)

	hwSide := file.HardwareSide()
	c := &Comp{
		name:        b.name,
		file:        file,
		reliableUIF: b.reliableUIF,
		cr:          hwSide.Reg32(CROffset),
		psc:         hwSide.Reg32(PSCOffset),
		arr:         hwSide.Reg32(ARROffset),
		cnt:         hwSide.Reg32(CNTOffset),
		sr:          hwSide.Reg32(SROffset),
	}

	progSide := file.Claim()
	d := &Driver{
		cr:  progSide.Reg32(CROffset),
		psc: progSide.Reg32(PSCOffset),
		arr: progSide.Reg32(ARROffset),
		cnt: progSide.Reg32(CNTOffset),
		sr:  progSide.Reg32(SROffset),
	}

	b.board.AttachDevice(c)
	b.board.MapView(progSide)

	return c, d
}
