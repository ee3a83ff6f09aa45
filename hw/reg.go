package hw

// A Reg32 is a typed accessor for one 32-bit register in a claimed register
// file. It is the handle device implementations hold instead of raw
// addresses.
type Reg32 struct {
	owner *OwnedRegs
	addr  Addr
}

// Reg32 binds an accessor to the register at the given offset from the base
// of the file.
func (o *OwnedRegs) Reg32(offset Addr) Reg32 {
	return Reg32{owner: o, addr: o.file.base + offset}
}

// Load reads the register value.
func (r Reg32) Load() uint32 {
	return r.owner.Read32(r.addr)
}

// Store writes the register value.
func (r Reg32) Store(v uint32) {
	r.owner.Write32(r.addr, v)
}

// LoadBits reads the register and masks the result.
func (r Reg32) LoadBits(mask uint32) uint32 {
	return r.Load() & mask
}

// SetBits sets the masked bits, leaving the rest of the register unchanged.
func (r Reg32) SetBits(mask uint32) {
	r.Store(r.Load() | mask)
}

// ClearBits clears the masked bits, leaving the rest of the register
// unchanged.
func (r Reg32) ClearBits(mask uint32) {
	r.Store(r.Load() &^ mask)
}

// Addr returns the absolute address the accessor is bound to.
func (r Reg32) Addr() Addr {
	return r.addr
}

// A Reg16 is a typed accessor for one 16-bit register.
type Reg16 struct {
	owner *OwnedRegs
	addr  Addr
}

// Reg16 binds an accessor to the half-word register at the given offset.
func (o *OwnedRegs) Reg16(offset Addr) Reg16 {
	return Reg16{owner: o, addr: o.file.base + offset}
}

// Load reads the register value.
func (r Reg16) Load() uint16 {
	return r.owner.Read16(r.addr)
}

// Store writes the register value.
func (r Reg16) Store(v uint16) {
	r.owner.Write16(r.addr, v)
}

// Addr returns the absolute address the accessor is bound to.
func (r Reg16) Addr() Addr {
	return r.addr
}

// A Reg8 is a typed accessor for one byte-wide register.
type Reg8 struct {
	owner *OwnedRegs
	addr  Addr
}

// Reg8 binds an accessor to the byte register at the given offset.
func (o *OwnedRegs) Reg8(offset Addr) Reg8 {
	return Reg8{owner: o, addr: o.file.base + offset}
}

// Load reads the register value.
func (r Reg8) Load() uint8 {
	return r.owner.Read8(r.addr)
}

// Store writes the register value.
func (r Reg8) Store(v uint8) {
	r.owner.Write8(r.addr, v)
}

// Addr returns the absolute address the accessor is bound to.
func (r Reg8) Addr() Addr {
	return r.addr
}
