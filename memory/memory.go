// Package memory defines the basic interfaces for working
// with a 6502 family memory map along with the flat 64k
// implementation the cpu package owns.
package memory

import "fmt"

// Size is the full 6502 address space.
const Size = 0x10000

// Reader is the read only view of a memory map. Disassembly and
// image rendering only ever need this.
type Reader interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
}

type Bank interface {
	Reader
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

// LoadError represents an image that won't fit at the requested offset.
type LoadError struct {
	Offset uint16
	Len    int
}

// Error implements the interface for error types.
func (e LoadError) Error() string {
	return fmt.Sprintf("image of 0x%.4X bytes at offset 0x%.4X overruns the 64k address space", e.Len, e.Offset)
}

// Flat is a fully populated 64k RAM with no mirroring or ROM regions.
type Flat struct {
	addr [Size]uint8
}

// NewFlat returns a powered on Flat.
func NewFlat() *Flat {
	f := &Flat{}
	f.PowerOn()
	return f
}

// Read implements Reader.
func (f *Flat) Read(addr uint16) uint8 {
	return f.addr[addr]
}

// Write implements Bank.
func (f *Flat) Write(addr uint16, val uint8) {
	f.addr[addr] = val
}

// PowerOn zeros all of RAM so power on state is deterministic.
func (f *Flat) PowerOn() {
	f.addr = [Size]uint8{}
}

// ReadAddr returns the little endian 16 bit value stored at addr and addr+1.
// addr+1 wraps at the top of memory.
func (f *Flat) ReadAddr(addr uint16) uint16 {
	return (uint16(f.addr[addr+1]) << 8) + uint16(f.addr[addr])
}

// WriteAddr stores val little endian at addr and addr+1.
func (f *Flat) WriteAddr(addr uint16, val uint16) {
	f.addr[addr] = uint8(val & 0xFF)
	f.addr[addr+1] = uint8((val & 0xFF00) >> 8)
}

// LoadAt copies b into RAM starting at offset. If the image would run past 0xFFFF
// nothing is written and a LoadError is returned.
func (f *Flat) LoadAt(offset uint16, b []uint8) error {
	if int(offset)+len(b) > Size {
		return LoadError{Offset: offset, Len: len(b)}
	}
	copy(f.addr[offset:], b)
	return nil
}
