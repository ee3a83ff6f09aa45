package edge

import (
	"log"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/hw"
	"github.com/sarchlab/periphsim/irq"
)

// A Builder creates an edge source on a board, wired to an interrupt line.
// The line is created by the harness so the harness owns the handler; the
// device only pends it.
type Builder struct {
	name  string
	base  hw.Addr
	board *board.Board
	line  *irq.Line
}

// MakeBuilder returns a builder.
func MakeBuilder() Builder {
	return Builder{}
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

// WithLine sets the interrupt line the device pends on configured edges.
func (b Builder) WithLine(line *irq.Line) Builder {
	b.line = line
	return b
}

// Build creates the device, maps it into the board's address space, and
// returns the hardware component together with its program-side driver.
func (b Builder) Build() (*Comp, *Driver) {
	if b.board == nil {
		log.Panic("an edge source requires a board")
	}

	if b.line == nil {
		log.Panic("an edge source requires an interrupt line")
	}

	file := hw.NewRegisterFile(b.name, b.base, regFileSize)

	hwSide := file.HardwareSide()
	c := &Comp{
		name:       b.name,
		file:       file,
		controller: b.board.Controller(),
		line:       b.line,
		cfg:        hwSide.Reg32(CFGOffset),
		pr:         hwSide.Reg32(PROffset),
	}

	progSide := file.Claim()
	d := &Driver{
		cfg: progSide.Reg32(CFGOffset),
		pr:  progSide.Reg32(PROffset),
	}

	b.board.AttachDevice(c)
	b.board.MapView(progSide)

	return c, d
}
