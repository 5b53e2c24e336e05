package cpu

import (
	"fmt"
	"strings"
)

// Result describes one Step. Registers are captured before execution so a
// sequence of Results reads like a classic trace log.
type Result struct {
	PC          uint16      // Address of the opcode (or where an interrupt was taken).
	Bytes       [3]uint8    // Opcode and up to 2 operand bytes. Only Instruction.Bytes of these are meaningful.
	Instruction Instruction // Zero value when an interrupt was serviced.
	Interrupt   Interrupt
	A           uint8
	X           uint8
	Y           uint8
	S           uint8
	P           Status
}

func (p *Processor) newResult() *Result {
	return &Result{
		PC:    p.PC,
		Bytes: [3]uint8{p.ram.Read(p.PC), p.ram.Read(p.PC + 1), p.ram.Read(p.PC + 2)},
		A:     p.A,
		X:     p.X,
		Y:     p.Y,
		S:     p.S,
		P:     p.P,
	}
}

// Mnemonic returns the executed instruction or the serviced interrupt name.
func (r *Result) Mnemonic() string {
	if r.Interrupt != INTERRUPT_NONE {
		return r.Interrupt.String()
	}
	return r.Instruction.Mnemonic
}

// Mode returns the addressing mode of the executed instruction.
func (r *Result) Mode() Mode {
	return r.Instruction.Mode
}

// String renders the trace line for this step, i.e.
//
//	0600  A9 42     LDA #$42         A:00 X:00 Y:00 P:24 SP:FD
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.4X  ", r.PC)
	var dis string
	if r.Interrupt != INTERRUPT_NONE {
		b.WriteString("        ")
		dis = r.Interrupt.String()
	} else {
		n := int(r.Instruction.Bytes)
		if n == 0 {
			n = 1
		}
		var raw []string
		for i := 0; i < n; i++ {
			raw = append(raw, fmt.Sprintf("%.2X", r.Bytes[i]))
		}
		fmt.Fprintf(&b, "%-8s", strings.Join(raw, " "))
		dis = r.Instruction.Disassemble(r.PC, r.Bytes[1], r.Bytes[2])
	}
	fmt.Fprintf(&b, "  %-16s A:%.2X X:%.2X Y:%.2X P:%.2X SP:%.2X", dis, r.A, r.X, r.Y, uint8(r.P), r.S)
	return b.String()
}
