package hw

import "log"

// A Space routes bus accesses to the register files mapped into it. It is the
// bus-master view of the whole simulated address space: reads may target any
// mapped file, writes go through the program-side view each file registered
// with.
type Space struct {
	views []*OwnedRegs
}

// NewSpace creates an empty address space.
func NewSpace() *Space {
	return &Space{}
}

// Map adds the program-side view of a register file to the space. Overlapping
// ranges panic.
func (s *Space) Map(view *OwnedRegs) {
	newFile := view.File()
	for _, v := range s.views {
		f := v.File()
		if newFile.Base() < f.Base()+Addr(f.Size()) &&
			f.Base() < newFile.Base()+Addr(newFile.Size()) {
			log.Panicf("register file %s overlaps %s", newFile.Name(), f.Name())
		}
	}

	s.views = append(s.views, view)
}

func (s *Space) viewAt(addr Addr) *OwnedRegs {
	for _, v := range s.views {
		if v.File().Contains(addr) {
			return v
		}
	}

	log.Panicf("no register file mapped at address %#x", addr)

	return nil
}

// Read8 reads the byte at the given address.
func (s *Space) Read8(addr Addr) uint8 { return s.viewAt(addr).Read8(addr) }

// Read16 reads the half-word at the given address.
func (s *Space) Read16(addr Addr) uint16 { return s.viewAt(addr).Read16(addr) }

// Read32 reads the word at the given address.
func (s *Space) Read32(addr Addr) uint32 { return s.viewAt(addr).Read32(addr) }

// Write8 writes the byte at the given address.
func (s *Space) Write8(addr Addr, v uint8) { s.viewAt(addr).Write8(addr, v) }

// Write16 writes the half-word at the given address.
func (s *Space) Write16(addr Addr, v uint16) { s.viewAt(addr).Write16(addr, v) }

// Write32 writes the word at the given address.
func (s *Space) Write32(addr Addr, v uint32) { s.viewAt(addr).Write32(addr, v) }
