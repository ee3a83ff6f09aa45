package xfer

import (
	"log"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/hw"
)

// A Builder creates a transfer channel on a board.
type Builder struct {
	name         string
	base         hw.Addr
	board        *board.Board
	itemsPerTick uint32
	reliableFlag bool
}

// MakeBuilder returns a builder moving one item per tick with a reliable
// completion flag.
func MakeBuilder() Builder {
	return Builder{
		itemsPerTick: 1,
		reliableFlag: true,
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

// WithItemsPerTick sets how many items move per clock tick.
func (b Builder) WithItemsPerTick(n uint32) Builder {
	if n == 0 {
		log.Panic("a transfer channel must move at least one item per tick")
	}

	b.itemsPerTick = n
	return b
}

// WithUnreliableCompleteFlag makes the device never assert its completion
// flag; completion is then only visible through the remaining count.
func (b Builder) WithUnreliableCompleteFlag() Builder {
	b.reliableFlag = false
	return b
}

// Build creates the device, maps it into the board's address space, and
// returns the hardware component together with its program-side driver.
func (b Builder) Build() (*Comp, *Driver) {
	if b.board == nil {
		log.Panic("a transfer channel requires a board")
	}

	file := hw.NewRegisterFile(b.name, b.base, regFileSize)

	hwSide := file.HardwareSide()
	c := &Comp{
		name:         b.name,
		file:         file,
		itemsPerTick: b.itemsPerTick,
		reliableFlag: b.reliableFlag,
		cr:           hwSide.Reg32(CROffset),
		ndtr:         hwSide.Reg32(NDTROffset),
		isr:          hwSide.Reg32(ISROffset),
	}

	progSide := file.Claim()
	d := &Driver{
		cr:   progSide.Reg32(CROffset),
		ndtr: progSide.Reg32(NDTROffset),
		isr:  progSide.Reg32(ISROffset),
	}

	b.board.AttachDevice(c)
	b.board.MapView(progSide)

	return c, d
}
