// Package disassemble implements a disassembler for 6502 opcodes
// using the same opcode table the cpu package executes from.
package disassemble

import (
	"fmt"

	"github.com/jmchacon/6502core/cpu"
	"github.com/jmchacon/6502core/memory"
)

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the bytes forward the PC should move to get to
// the next instruction. This does not interpret the instructions so LDA, JMP, LDA in memory
// will disassemble as that sequence and not follow the JMP.
// Opcodes the cpu doesn't implement disassemble as ??? with a length of 1.
func Step(pc uint16, r memory.Reader) (string, int) {
	in := cpu.Lookup(r.Read(pc))
	pc1 := r.Read(pc + 1)
	pc2 := r.Read(pc + 2)

	out := fmt.Sprintf("%.4X %.2X ", pc, in.Opcode)
	switch in.Bytes {
	case 1:
		out += "      "
	case 2:
		out += fmt.Sprintf("%.2X    ", pc1)
	case 3:
		out += fmt.Sprintf("%.2X %.2X ", pc1, pc2)
	}
	out += " " + in.Disassemble(pc, pc1, pc2)
	return out, int(in.Bytes)
}

// Range disassembles from pc until at least n bytes have been consumed. The last
// instruction may extend past n and the PC wraps at the top of memory.
func Range(pc uint16, n int, r memory.Reader) []string {
	var out []string
	for cnt := 0; cnt < n; {
		dis, off := Step(pc, r)
		out = append(out, dis)
		pc += uint16(off)
		cnt += off
	}
	return out
}
