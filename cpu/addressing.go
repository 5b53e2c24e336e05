package cpu

import "fmt"

// Mode is an enumeration of the 6502 addressing modes.
type Mode int

const (
	MODE_IMPLIED     Mode = iota // No operand.
	MODE_ACCUMULATOR             // Operand is the A register.
	MODE_IMMEDIATE               // #i
	MODE_ZP                      // d
	MODE_ZPX                     // d,x - wraps within zero page.
	MODE_ZPY                     // d,y - wraps within zero page.
	MODE_RELATIVE                // *+r - branches only.
	MODE_ABSOLUTE                // a
	MODE_ABSOLUTEX               // a,x
	MODE_ABSOLUTEY               // a,y
	MODE_INDIRECT                // (a) - JMP only.
	MODE_INDIRECTX               // (d,x)
	MODE_INDIRECTY               // (d),y
	MODE_MAX                     // End of mode enumerations.
)

// Bytes returns the instruction length (opcode included) for the mode. This never depends on data.
func (m Mode) Bytes() uint16 {
	switch m {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
		return 1
	case MODE_ABSOLUTE, MODE_ABSOLUTEX, MODE_ABSOLUTEY, MODE_INDIRECT:
		return 3
	}
	return 2
}

func (m Mode) String() string {
	switch m {
	case MODE_IMPLIED:
		return "Implied"
	case MODE_ACCUMULATOR:
		return "Accumulator"
	case MODE_IMMEDIATE:
		return "Immediate"
	case MODE_ZP:
		return "ZeroPage"
	case MODE_ZPX:
		return "ZeroPageX"
	case MODE_ZPY:
		return "ZeroPageY"
	case MODE_RELATIVE:
		return "Relative"
	case MODE_ABSOLUTE:
		return "Absolute"
	case MODE_ABSOLUTEX:
		return "AbsoluteX"
	case MODE_ABSOLUTEY:
		return "AbsoluteY"
	case MODE_INDIRECT:
		return "Indirect"
	case MODE_INDIRECTX:
		return "IndexedIndirect"
	case MODE_INDIRECTY:
		return "IndirectIndexed"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Format renders the operand in standard assembler syntax. pc is the address of the
// opcode and lo/hi are the bytes following it (hi is ignored for 2 byte modes).
func (m Mode) Format(pc uint16, lo, hi uint8) string {
	a := (uint16(hi) << 8) + uint16(lo)
	switch m {
	case MODE_ACCUMULATOR:
		return "A"
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#$%.2X", lo)
	case MODE_ZP:
		return fmt.Sprintf("$%.2X", lo)
	case MODE_ZPX:
		return fmt.Sprintf("$%.2X,X", lo)
	case MODE_ZPY:
		return fmt.Sprintf("$%.2X,Y", lo)
	case MODE_RELATIVE:
		return fmt.Sprintf("$%.4X", relativeTarget(pc, lo))
	case MODE_ABSOLUTE:
		return fmt.Sprintf("$%.4X", a)
	case MODE_ABSOLUTEX:
		return fmt.Sprintf("$%.4X,X", a)
	case MODE_ABSOLUTEY:
		return fmt.Sprintf("$%.4X,Y", a)
	case MODE_INDIRECT:
		return fmt.Sprintf("($%.4X)", a)
	case MODE_INDIRECTX:
		return fmt.Sprintf("($%.2X,X)", lo)
	case MODE_INDIRECTY:
		return fmt.Sprintf("($%.2X),Y", lo)
	}
	return ""
}

// relativeTarget computes a branch destination. The offset is signed and relative
// to the address after the 2 byte branch.
func relativeTarget(pc uint16, off uint8) uint16 {
	return pc + 2 + uint16(int16(int8(off)))
}

// address computes the effective address for mode given the current PC (pointing at
// the opcode), registers and memory. It never changes processor state.
// For immediate mode this is the address of the operand byte itself and for relative
// mode it's the branch target. Implied and accumulator modes have no address and return 0.
func (p *Processor) address(mode Mode) uint16 {
	switch mode {
	case MODE_IMMEDIATE:
		return p.PC + 1
	case MODE_ZP:
		return uint16(p.ram.Read(p.PC + 1))
	case MODE_ZPX:
		// Add in 8 bits so it can't carry into page 1.
		return uint16(p.ram.Read(p.PC+1) + p.X)
	case MODE_ZPY:
		return uint16(p.ram.Read(p.PC+1) + p.Y)
	case MODE_RELATIVE:
		return relativeTarget(p.PC, p.ram.Read(p.PC+1))
	case MODE_ABSOLUTE:
		return p.ram.ReadAddr(p.PC + 1)
	case MODE_ABSOLUTEX:
		return p.ram.ReadAddr(p.PC+1) + uint16(p.X)
	case MODE_ABSOLUTEY:
		return p.ram.ReadAddr(p.PC+1) + uint16(p.Y)
	case MODE_INDIRECT:
		ptr := p.ram.ReadAddr(p.PC + 1)
		lo := p.ram.Read(ptr)
		// NMOS bug: the high byte never comes from the next page. ($10FF) reads $10FF and $1000.
		hi := p.ram.Read((ptr & 0xFF00) + uint16(uint8(ptr&0xFF)+1))
		return (uint16(hi) << 8) + uint16(lo)
	case MODE_INDIRECTX:
		return p.zpAddr(p.ram.Read(p.PC+1) + p.X)
	case MODE_INDIRECTY:
		return p.zpAddr(p.ram.Read(p.PC+1)) + uint16(p.Y)
	}
	return 0
}

// zpAddr reads a 16 bit pointer from zero page. The high byte wraps within zero page
// so a pointer at 0xFF takes its high byte from 0x00.
func (p *Processor) zpAddr(zp uint8) uint16 {
	return (uint16(p.ram.Read(uint16(zp+1))) << 8) + uint16(p.ram.Read(uint16(zp)))
}

// operand returns the value an instruction operates on for mode.
func (p *Processor) operand(mode Mode) uint8 {
	if mode == MODE_ACCUMULATOR {
		return p.A
	}
	return p.ram.Read(p.address(mode))
}

// writeBack stores val where operand read it from. Used by the RMW instructions.
func (p *Processor) writeBack(mode Mode, val uint8) {
	if mode == MODE_ACCUMULATOR {
		p.A = val
		return
	}
	p.ram.Write(p.address(mode), val)
}
