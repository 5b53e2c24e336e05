// Package cpu defines the 6502 architecture and provides
// the methods needed to run the CPU and interface with it
// for emulation.
//
// Execution is instruction at a time. Each call to Step runs exactly one
// instruction (or services one pending interrupt) to completion.
package cpu

import (
	"fmt"
	"io"

	"github.com/jmchacon/6502core/irq"
	"github.com/jmchacon/6502core/memory"
	"github.com/sirupsen/logrus"
)

// CPUType is an enumeration of the valid CPU types.
type CPUType int

const (
	CPU_UNIMPLMENTED CPUType = iota // Start of valid cpu enumerations.
	CPU_NMOS                        // Basic NMOS 6502.
	CPU_NMOS_RICOH                  // Ricoh version used in NES which is identical to NMOS except BCD mode is unimplmented.
	CPU_MAX                         // End of CPU enumerations.
)

func (c CPUType) String() string {
	switch c {
	case CPU_NMOS:
		return "NMOS"
	case CPU_NMOS_RICOH:
		return "NMOS_RICOH"
	}
	return fmt.Sprintf("CPUType(%d)", int(c))
}

// Interrupt is an enumeration of the interrupts Step can service.
type Interrupt int

const (
	INTERRUPT_NONE Interrupt = iota // Normal instruction executed.
	INTERRUPT_IRQ                   // Standard IRQ signal.
	INTERRUPT_NMI                   // NMI signal.
)

func (i Interrupt) String() string {
	switch i {
	case INTERRUPT_IRQ:
		return "IRQ"
	case INTERRUPT_NMI:
		return "NMI"
	}
	return "NONE"
}

const (
	NMI_VECTOR   = uint16(0xFFFA)
	RESET_VECTOR = uint16(0xFFFC)
	IRQ_VECTOR   = uint16(0xFFFE)

	// STACK_BASE is the start of page 1 where S indexes.
	STACK_BASE = uint16(0x0100)
	// STACK_RESET is the S value after Reset.
	STACK_RESET = uint8(0xFD)

	// DefaultLoadAddress is where Load places an image.
	DefaultLoadAddress = uint16(0x0600)
)

// ChipDef defines a 6502 to be created with Init.
type ChipDef struct {
	// Cpu must be between CPU_UNIMPLMENTED and CPU_MAX (exclusive).
	Cpu CPUType
	// Irq is optional. If set it's sampled at every instruction boundary and an
	// IRQ is run while it's raised and interrupts aren't disabled.
	Irq irq.Sender
	// Nmi is optional. If set it's sampled at every instruction boundary and an
	// NMI is run on each low to high transition.
	Nmi irq.Sender
	// Log is optional. Interrupts are logged at debug and halts at warning level.
	Log logrus.FieldLogger
}

type Processor struct {
	A       uint8   // Accumulator register
	X       uint8   // X register
	Y       uint8   // Y register
	S       uint8   // Stack pointer
	P       Status  // Processor status register
	PC      uint16  // Program counter
	CPUType CPUType // Must be between UNIMPLEMENTED and MAX from above.

	ram        *memory.Flat
	irqLine    irq.Sender
	nmiLine    irq.Sender
	prevNMI    bool // NMI line state at the previous boundary for edge detection.
	log        logrus.FieldLogger
	halted     bool  // If stopped due to an unimplemented opcode
	haltOpcode uint8 // Opcode that caused the halt
	haltPC     uint16
}

// A few custom error types to distinguish why the CPU stopped

// UnimplementedOpcode represents an opcode outside the documented NMOS set.
type UnimplementedOpcode struct {
	Opcode uint8
	PC     uint16
}

// Error implements the interface for error types.
func (e UnimplementedOpcode) Error() string {
	return fmt.Sprintf("0x%.2X at PC 0x%.4X is an unimplemented opcode", e.Opcode, e.PC)
}

// InvalidCPUState represents an invalid CPU state in the emulator.
type InvalidCPUState struct {
	Reason string
}

// Error implements the interface for error types.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// Init will create a new CPU of the type requested and return it in powered on state.
// The CPU owns a flat 64k of RAM which is zeroed at power on.
func Init(def *ChipDef) (*Processor, error) {
	if def == nil {
		return nil, InvalidCPUState{"nil ChipDef"}
	}
	if def.Cpu <= CPU_UNIMPLMENTED || def.Cpu >= CPU_MAX {
		return nil, InvalidCPUState{fmt.Sprintf("CPU type %d is invalid", def.Cpu)}
	}
	l := def.Log
	if l == nil {
		d := logrus.New()
		d.Out = io.Discard
		l = d
	}
	p := &Processor{
		CPUType: def.Cpu,
		ram:     memory.NewFlat(),
		irqLine: def.Irq,
		nmiLine: def.Nmi,
		log:     l.WithField("cpu", def.Cpu.String()),
	}
	p.PowerOn()
	return p, nil
}

// PowerOn clears RAM and then performs a Reset. Since RAM is zero the reset
// vector will point at 0x0000 until something is loaded and Reset is run again.
func (p *Processor) PowerOn() {
	p.ram.PowerOn()
	p.Reset()
}

// Reset puts the registers into their documented power up state. A/X/Y are zero, the stack
// is at 0xFD and P has interrupts disabled. The PC is loaded from the reset vector.
// RAM isn't touched.
func (p *Processor) Reset() {
	p.A = 0
	p.X = 0
	p.Y = 0
	p.S = STACK_RESET
	// S1 is always set.
	p.P = P_S1 | P_INTERRUPT
	p.PC = p.ram.ReadAddr(RESET_VECTOR)
	p.prevNMI = false
	p.halted = false
	p.haltOpcode = 0x00
	p.haltPC = 0x0000
}

// Halted returns true if the CPU has stopped on an unimplemented opcode.
// Only Reset or PowerOn clear this.
func (p *Processor) Halted() bool {
	return p.halted
}

// Load copies image into RAM at DefaultLoadAddress.
func (p *Processor) Load(image []uint8) error {
	return p.LoadAt(DefaultLoadAddress, image)
}

// LoadAt copies image into RAM at offset. Images which would run past 0xFFFF are
// rejected with a memory.LoadError and RAM is left unchanged.
func (p *Processor) LoadAt(offset uint16, image []uint8) error {
	return p.ram.LoadAt(offset, image)
}

// Read returns the byte in RAM at addr. This doesn't change any CPU state.
func (p *Processor) Read(addr uint16) uint8 {
	return p.ram.Read(addr)
}

// Write updates RAM at addr.
func (p *Processor) Write(addr uint16, val uint8) {
	p.ram.Write(addr, val)
}

// ReadAddr returns the little endian word at addr (i.e. a vector).
func (p *Processor) ReadAddr(addr uint16) uint16 {
	return p.ram.ReadAddr(addr)
}

// WriteAddr stores a little endian word at addr. Mostly used to setup vectors.
func (p *Processor) WriteAddr(addr uint16, val uint16) {
	p.ram.WriteAddr(addr, val)
}

func (p *Processor) String() string {
	return fmt.Sprintf("PC: %.4X A: %.2X X: %.2X Y: %.2X S: %.2X P: %s", p.PC, p.A, p.X, p.Y, p.S, p.P)
}

// Step runs one instruction to completion and returns what was executed.
// Interrupts are only sampled here, before the opcode fetch, so an instruction
// is never interrupted part way through. If one is pending it's serviced instead of
// an instruction and the Result says so.
//
// An unimplemented opcode returns UnimplementedOpcode and halts the CPU without
// changing any state. Every later Step returns the same error until a Reset.
func (p *Processor) Step() (*Result, error) {
	res := p.newResult()
	if p.halted {
		return res, UnimplementedOpcode{Opcode: p.haltOpcode, PC: p.haltPC}
	}

	if i := p.pendingInterrupt(); i != INTERRUPT_NONE {
		res.Interrupt = i
		vec := IRQ_VECTOR
		if i == INTERRUPT_NMI {
			vec = NMI_VECTOR
		}
		p.runInterrupt(vec, p.PC, false)
		p.log.WithFields(logrus.Fields{"pc": fmt.Sprintf("%.4X", res.PC), "vector": fmt.Sprintf("%.4X", vec)}).Debugf("%s serviced", i)
		return res, nil
	}

	in := &opcodes[res.Bytes[0]]
	res.Instruction = *in
	if in.exec == nil {
		p.halted = true
		p.haltOpcode = in.Opcode
		p.haltPC = p.PC
		err := UnimplementedOpcode{Opcode: in.Opcode, PC: p.PC}
		p.log.WithFields(logrus.Fields{"pc": fmt.Sprintf("%.4X", p.PC), "opcode": fmt.Sprintf("%.2X", in.Opcode)}).Warn("halting on unimplemented opcode")
		return res, err
	}
	// Control flow instructions set PC themselves and report it. Everything else
	// falls through to the next instruction.
	if jumped := in.exec(p, in.Mode); !jumped {
		p.PC += in.Bytes
	}
	return res, nil
}

// pendingInterrupt samples the IRQ/NMI lines. NMI is edge triggered so the
// previous state is always updated. NMI takes priority over IRQ.
func (p *Processor) pendingInterrupt() Interrupt {
	nmi := p.nmiLine != nil && p.nmiLine.Raised()
	edge := nmi && !p.prevNMI
	p.prevNMI = nmi
	if edge {
		return INTERRUPT_NMI
	}
	if p.irqLine != nil && p.irqLine.Raised() && !p.P.InterruptDisable() {
		return INTERRUPT_IRQ
	}
	return INTERRUPT_NONE
}

// runInterrupt does all the heavy lifting for any interrupt processing.
// i.e. pushing the return address and P onto the stack and loading PC from vec.
// brk controls whether B is set in the pushed copy of P.
func (p *Processor) runInterrupt(vec uint16, ret uint16, brk bool) {
	p.pushStack16(ret)
	push := p.P | P_S1
	push.SetBreak(brk)
	p.pushStack(uint8(push))
	p.P |= P_INTERRUPT
	p.PC = p.ram.ReadAddr(vec)
}

// pushStack pushes the given byte onto the stack and adjusts the stack pointer accordingly.
// S wraps within page 1.
func (p *Processor) pushStack(val uint8) {
	p.ram.Write(STACK_BASE+uint16(p.S), val)
	p.S--
}

// popStack pops the top byte off the stack and adjusts the stack pointer accordingly.
func (p *Processor) popStack() uint8 {
	p.S++
	return p.ram.Read(STACK_BASE + uint16(p.S))
}

// pushStack16 pushes the high byte and then the low byte (as JSR and interrupts do).
func (p *Processor) pushStack16(val uint16) {
	p.pushStack(uint8((val & 0xFF00) >> 8))
	p.pushStack(uint8(val & 0xFF))
}

// popStack16 is the inverse of pushStack16.
func (p *Processor) popStack16() uint16 {
	lo := p.popStack()
	hi := p.popStack()
	return (uint16(hi) << 8) + uint16(lo)
}

// zeroCheck sets the Z flag based on the register contents.
func (p *Processor) zeroCheck(reg uint8) {
	p.P.SetZero(reg == 0)
}

// negativeCheck sets the N flag based on the register contents.
func (p *Processor) negativeCheck(reg uint8) {
	p.P.SetNegative(reg&0x80 != 0)
}

// carryCheck sets the C flag if the result of an 8 bit ALU operation
// (passed as a 16 bit result) caused a carry out by generating a value >= 0x100.
// NOTE: normally this just means masking 0x100 but in some overflow cases for BCD
//       math the value can be 0x200 here so it's still a carry.
func (p *Processor) carryCheck(res uint16) {
	p.P.SetCarry(res >= 0x100)
}

// overflowCheck sets the V flag if the result of the ALU operation
// caused a two's complement sign change.
// Taken from http://www.righto.com/2012/12/the-6502-overflow-flag-explained.html
func (p *Processor) overflowCheck(reg uint8, arg uint8, res uint8) {
	// If the original sign of reg and arg match each other but the result differs
	// from both then the signed math overflowed.
	p.P.SetOverflow((reg^res)&(arg^res)&0x80 != 0)
}

// loadRegister takes the val and inserts it into the register passed in. It then does
// Z and N checks against the new value.
func (p *Processor) loadRegister(reg *uint8, val uint8) {
	*reg = val
	p.zeroCheck(*reg)
	p.negativeCheck(*reg)
}
