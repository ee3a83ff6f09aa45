package hw

import (
	"log"
	"sync/atomic"
)

// A RegisterFile is a bounds-checked block of memory-mapped registers starting
// at a fixed base address. Every access goes straight to the backing cells --
// there is no caching layer between a reader and the most recent write, which
// mirrors the volatile access discipline register code requires.
//
// Reads are allowed from any context. Writes must go through the view
// returned by Claim, so that exactly one owner can issue writes to the block.
type RegisterFile struct {
	name      string
	base      Addr
	words     []atomic.Uint32
	claimed   atomic.Bool
	hwClaimed atomic.Bool
}

// NewRegisterFile creates a register file of size bytes at the given base
// address. The size must be positive and a multiple of 4.
func NewRegisterFile(name string, base Addr, size int) *RegisterFile {
	if size <= 0 || size%4 != 0 {
		log.Panicf("register file %s: size %d is not a positive multiple of 4",
			name, size)
	}

	if base%4 != 0 {
		log.Panicf("register file %s: base %#x is not word aligned", name, base)
	}

	return &RegisterFile{
		name:  name,
		base:  base,
		words: make([]atomic.Uint32, size/4),
	}
}

// Name returns the name of the register file.
func (f *RegisterFile) Name() string {
	return f.name
}

// Base returns the base address of the register file.
func (f *RegisterFile) Base() Addr {
	return f.base
}

// Size returns the size of the register file in bytes.
func (f *RegisterFile) Size() int {
	return len(f.words) * 4
}

// Contains tells if the address falls inside the register file.
func (f *RegisterFile) Contains(addr Addr) bool {
	return addr >= f.base && addr < f.base+Addr(f.Size())
}

// Claim hands out the one writable view of the register file. Claiming a file
// twice panics.
func (f *RegisterFile) Claim() *OwnedRegs {
	if !f.claimed.CompareAndSwap(false, true) {
		log.Panicf("register file %s already claimed", f.name)
	}

	return &OwnedRegs{file: f}
}

// HardwareSide hands out the view the simulated device itself uses to update
// its registers. Hardware-side updates are not bus writes: a free-running
// counter advances without any bus master touching it. Like Claim, it can
// only be called once.
func (f *RegisterFile) HardwareSide() *OwnedRegs {
	if !f.hwClaimed.CompareAndSwap(false, true) {
		log.Panicf("hardware side of register file %s already claimed", f.name)
	}

	return &OwnedRegs{file: f}
}

// Read32 reads the word at the given address.
func (f *RegisterFile) Read32(addr Addr) uint32 {
	return f.words[f.wordIndex(addr, 4)].Load()
}

// Read16 reads the half-word at the given address.
func (f *RegisterFile) Read16(addr Addr) uint16 {
	word := f.words[f.wordIndex(addr, 2)].Load()
	shift := (addr % 4) * 8
	return uint16(word >> shift)
}

// Read8 reads the byte at the given address.
func (f *RegisterFile) Read8(addr Addr) uint8 {
	word := f.words[f.wordIndex(addr, 1)].Load()
	shift := (addr % 4) * 8
	return uint8(word >> shift)
}

func (f *RegisterFile) wordIndex(addr Addr, width Addr) int {
	if !f.Contains(addr) {
		log.Panicf("register file %s: address %#x out of range [%#x, %#x)",
			f.name, addr, f.base, f.base+Addr(f.Size()))
	}

	if addr%width != 0 {
		log.Panicf("register file %s: address %#x not aligned to %d bytes",
			f.name, addr, width)
	}

	return int(addr-f.base) / 4
}

func (f *RegisterFile) write32(addr Addr, v uint32) {
	f.words[f.wordIndex(addr, 4)].Store(v)
}

func (f *RegisterFile) writeLane(addr Addr, width Addr, mask, v uint32) {
	word := &f.words[f.wordIndex(addr, width)]
	shift := (addr % 4) * 8

	for {
		old := word.Load()
		merged := old&^(mask<<shift) | (v&mask)<<shift
		if word.CompareAndSwap(old, merged) {
			return
		}
	}
}

// An OwnedRegs is the single writable view of a RegisterFile. It implements
// Bus for the file's address range.
type OwnedRegs struct {
	file *RegisterFile
}

// File returns the underlying register file.
func (o *OwnedRegs) File() *RegisterFile {
	return o.file
}

// Read32 reads the word at the given address.
func (o *OwnedRegs) Read32(addr Addr) uint32 { return o.file.Read32(addr) }

// Read16 reads the half-word at the given address.
func (o *OwnedRegs) Read16(addr Addr) uint16 { return o.file.Read16(addr) }

// Read8 reads the byte at the given address.
func (o *OwnedRegs) Read8(addr Addr) uint8 { return o.file.Read8(addr) }

// Write32 writes the word at the given address.
func (o *OwnedRegs) Write32(addr Addr, v uint32) {
	o.file.write32(addr, v)
}

// Write16 writes the half-word at the given address.
func (o *OwnedRegs) Write16(addr Addr, v uint16) {
	o.file.writeLane(addr, 2, 0xffff, uint32(v))
}

// Write8 writes the byte at the given address.
func (o *OwnedRegs) Write8(addr Addr, v uint8) {
	o.file.writeLane(addr, 1, 0xff, uint32(v))
}
