// Package hw provides the register-level hardware abstractions that simulated
// peripherals expose and that test harnesses poll.
package hw

// Addr is a physical address in the simulated address space.
type Addr uint32

// A Bus allows reading and writing the simulated address space at byte,
// half-word, and word granularity. The bus defines access semantics only;
// timing and side effects belong to the device that owns the address.
type Bus interface {
	Read8(addr Addr) uint8
	Read16(addr Addr) uint16
	Read32(addr Addr) uint32

	Write8(addr Addr, v uint8)
	Write16(addr Addr, v uint16)
	Write32(addr Addr, v uint32)
}
