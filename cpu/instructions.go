package cpu

import "fmt"

// Category classifies what an instruction does with its operand and the PC.
type Category int

const (
	CATEGORY_UNIMPLEMENTED Category = iota // Opcode has no instruction. Step reports it.
	CATEGORY_READ                          // Reads an operand (or works on registers only).
	CATEGORY_WRITE                         // Stores to memory.
	CATEGORY_RMW                           // Read/modify/write of memory or A.
	CATEGORY_FLOW                          // JMP and branches.
	CATEGORY_SUBROUTINE                    // JSR/RTS.
	CATEGORY_INTERRUPT                     // BRK/RTI.
)

func (c Category) String() string {
	switch c {
	case CATEGORY_READ:
		return "Read"
	case CATEGORY_WRITE:
		return "Write"
	case CATEGORY_RMW:
		return "RMW"
	case CATEGORY_FLOW:
		return "Flow"
	case CATEGORY_SUBROUTINE:
		return "Subroutine"
	case CATEGORY_INTERRUPT:
		return "Interrupt"
	}
	return "Unimplemented"
}

// ControlFlow returns true for categories whose instructions may set the PC directly.
func (c Category) ControlFlow() bool {
	return c == CATEGORY_FLOW || c == CATEGORY_SUBROUTINE || c == CATEGORY_INTERRUPT
}

// handler runs an instruction. It returns true only if it set the PC itself in which
// case Step must not advance it.
type handler func(p *Processor, mode Mode) bool

// Instruction describes one opcode.
type Instruction struct {
	Opcode   uint8
	Mnemonic string
	Mode     Mode
	Bytes    uint16 // Total length including the opcode.
	Category Category
	exec     handler
}

// Implemented returns false for opcodes outside the documented set.
func (i Instruction) Implemented() bool {
	return i.exec != nil
}

// Disassemble renders the instruction with the operand bytes lo/hi as it would appear at pc.
func (i Instruction) Disassemble(pc uint16, lo, hi uint8) string {
	if !i.Implemented() {
		return fmt.Sprintf("??? ($%.2X)", i.Opcode)
	}
	if o := i.Mode.Format(pc, lo, hi); o != "" {
		return i.Mnemonic + " " + o
	}
	return i.Mnemonic
}

func (i Instruction) String() string {
	return fmt.Sprintf("%.2X %s %s +%dbytes [%s]", i.Opcode, i.Mnemonic, i.Mode, i.Bytes, i.Category)
}

// Lookup returns the table entry for op. Every value has one.
func Lookup(op uint8) Instruction {
	return opcodes[op]
}

// opcodes is indexed directly by opcode and filled in once by init.
var opcodes [256]Instruction

// Opcode matrix taken from:
// http://obelisk.me.uk/6502/reference.html
//
// Only the documented NMOS opcodes are here. The rest are left unimplemented and
// halt the CPU if executed.
var documented = []struct {
	op       uint8
	mnemonic string
	mode     Mode
	category Category
	exec     handler
}{
	{0x69, "ADC", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iADC},
	{0x65, "ADC", MODE_ZP, CATEGORY_READ, (*Processor).iADC},
	{0x75, "ADC", MODE_ZPX, CATEGORY_READ, (*Processor).iADC},
	{0x6D, "ADC", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iADC},
	{0x7D, "ADC", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iADC},
	{0x79, "ADC", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iADC},
	{0x61, "ADC", MODE_INDIRECTX, CATEGORY_READ, (*Processor).iADC},
	{0x71, "ADC", MODE_INDIRECTY, CATEGORY_READ, (*Processor).iADC},

	{0x29, "AND", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iAND},
	{0x25, "AND", MODE_ZP, CATEGORY_READ, (*Processor).iAND},
	{0x35, "AND", MODE_ZPX, CATEGORY_READ, (*Processor).iAND},
	{0x2D, "AND", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iAND},
	{0x3D, "AND", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iAND},
	{0x39, "AND", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iAND},
	{0x21, "AND", MODE_INDIRECTX, CATEGORY_READ, (*Processor).iAND},
	{0x31, "AND", MODE_INDIRECTY, CATEGORY_READ, (*Processor).iAND},

	{0x0A, "ASL", MODE_ACCUMULATOR, CATEGORY_RMW, (*Processor).iASL},
	{0x06, "ASL", MODE_ZP, CATEGORY_RMW, (*Processor).iASL},
	{0x16, "ASL", MODE_ZPX, CATEGORY_RMW, (*Processor).iASL},
	{0x0E, "ASL", MODE_ABSOLUTE, CATEGORY_RMW, (*Processor).iASL},
	{0x1E, "ASL", MODE_ABSOLUTEX, CATEGORY_RMW, (*Processor).iASL},

	{0x90, "BCC", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBCC},
	{0xB0, "BCS", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBCS},
	{0xF0, "BEQ", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBEQ},
	{0x30, "BMI", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBMI},
	{0xD0, "BNE", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBNE},
	{0x10, "BPL", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBPL},
	{0x50, "BVC", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBVC},
	{0x70, "BVS", MODE_RELATIVE, CATEGORY_FLOW, (*Processor).iBVS},

	{0x24, "BIT", MODE_ZP, CATEGORY_READ, (*Processor).iBIT},
	{0x2C, "BIT", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iBIT},

	{0x00, "BRK", MODE_IMPLIED, CATEGORY_INTERRUPT, (*Processor).iBRK},

	{0x18, "CLC", MODE_IMPLIED, CATEGORY_READ, (*Processor).iCLC},
	{0xD8, "CLD", MODE_IMPLIED, CATEGORY_READ, (*Processor).iCLD},
	{0x58, "CLI", MODE_IMPLIED, CATEGORY_READ, (*Processor).iCLI},
	{0xB8, "CLV", MODE_IMPLIED, CATEGORY_READ, (*Processor).iCLV},

	{0xC9, "CMP", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iCMP},
	{0xC5, "CMP", MODE_ZP, CATEGORY_READ, (*Processor).iCMP},
	{0xD5, "CMP", MODE_ZPX, CATEGORY_READ, (*Processor).iCMP},
	{0xCD, "CMP", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iCMP},
	{0xDD, "CMP", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iCMP},
	{0xD9, "CMP", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iCMP},
	{0xC1, "CMP", MODE_INDIRECTX, CATEGORY_READ, (*Processor).iCMP},
	{0xD1, "CMP", MODE_INDIRECTY, CATEGORY_READ, (*Processor).iCMP},

	{0xE0, "CPX", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iCPX},
	{0xE4, "CPX", MODE_ZP, CATEGORY_READ, (*Processor).iCPX},
	{0xEC, "CPX", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iCPX},

	{0xC0, "CPY", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iCPY},
	{0xC4, "CPY", MODE_ZP, CATEGORY_READ, (*Processor).iCPY},
	{0xCC, "CPY", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iCPY},

	{0xC6, "DEC", MODE_ZP, CATEGORY_RMW, (*Processor).iDEC},
	{0xD6, "DEC", MODE_ZPX, CATEGORY_RMW, (*Processor).iDEC},
	{0xCE, "DEC", MODE_ABSOLUTE, CATEGORY_RMW, (*Processor).iDEC},
	{0xDE, "DEC", MODE_ABSOLUTEX, CATEGORY_RMW, (*Processor).iDEC},
	{0xCA, "DEX", MODE_IMPLIED, CATEGORY_READ, (*Processor).iDEX},
	{0x88, "DEY", MODE_IMPLIED, CATEGORY_READ, (*Processor).iDEY},

	{0x49, "EOR", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iEOR},
	{0x45, "EOR", MODE_ZP, CATEGORY_READ, (*Processor).iEOR},
	{0x55, "EOR", MODE_ZPX, CATEGORY_READ, (*Processor).iEOR},
	{0x4D, "EOR", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iEOR},
	{0x5D, "EOR", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iEOR},
	{0x59, "EOR", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iEOR},
	{0x41, "EOR", MODE_INDIRECTX, CATEGORY_READ, (*Processor).iEOR},
	{0x51, "EOR", MODE_INDIRECTY, CATEGORY_READ, (*Processor).iEOR},

	{0xE6, "INC", MODE_ZP, CATEGORY_RMW, (*Processor).iINC},
	{0xF6, "INC", MODE_ZPX, CATEGORY_RMW, (*Processor).iINC},
	{0xEE, "INC", MODE_ABSOLUTE, CATEGORY_RMW, (*Processor).iINC},
	{0xFE, "INC", MODE_ABSOLUTEX, CATEGORY_RMW, (*Processor).iINC},
	{0xE8, "INX", MODE_IMPLIED, CATEGORY_READ, (*Processor).iINX},
	{0xC8, "INY", MODE_IMPLIED, CATEGORY_READ, (*Processor).iINY},

	{0x4C, "JMP", MODE_ABSOLUTE, CATEGORY_FLOW, (*Processor).iJMP},
	{0x6C, "JMP", MODE_INDIRECT, CATEGORY_FLOW, (*Processor).iJMP},
	{0x20, "JSR", MODE_ABSOLUTE, CATEGORY_SUBROUTINE, (*Processor).iJSR},

	{0xA9, "LDA", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iLDA},
	{0xA5, "LDA", MODE_ZP, CATEGORY_READ, (*Processor).iLDA},
	{0xB5, "LDA", MODE_ZPX, CATEGORY_READ, (*Processor).iLDA},
	{0xAD, "LDA", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iLDA},
	{0xBD, "LDA", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iLDA},
	{0xB9, "LDA", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iLDA},
	{0xA1, "LDA", MODE_INDIRECTX, CATEGORY_READ, (*Processor).iLDA},
	{0xB1, "LDA", MODE_INDIRECTY, CATEGORY_READ, (*Processor).iLDA},

	{0xA2, "LDX", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iLDX},
	{0xA6, "LDX", MODE_ZP, CATEGORY_READ, (*Processor).iLDX},
	{0xB6, "LDX", MODE_ZPY, CATEGORY_READ, (*Processor).iLDX},
	{0xAE, "LDX", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iLDX},
	{0xBE, "LDX", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iLDX},

	{0xA0, "LDY", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iLDY},
	{0xA4, "LDY", MODE_ZP, CATEGORY_READ, (*Processor).iLDY},
	{0xB4, "LDY", MODE_ZPX, CATEGORY_READ, (*Processor).iLDY},
	{0xAC, "LDY", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iLDY},
	{0xBC, "LDY", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iLDY},

	{0x4A, "LSR", MODE_ACCUMULATOR, CATEGORY_RMW, (*Processor).iLSR},
	{0x46, "LSR", MODE_ZP, CATEGORY_RMW, (*Processor).iLSR},
	{0x56, "LSR", MODE_ZPX, CATEGORY_RMW, (*Processor).iLSR},
	{0x4E, "LSR", MODE_ABSOLUTE, CATEGORY_RMW, (*Processor).iLSR},
	{0x5E, "LSR", MODE_ABSOLUTEX, CATEGORY_RMW, (*Processor).iLSR},

	{0xEA, "NOP", MODE_IMPLIED, CATEGORY_READ, (*Processor).iNOP},

	{0x09, "ORA", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iORA},
	{0x05, "ORA", MODE_ZP, CATEGORY_READ, (*Processor).iORA},
	{0x15, "ORA", MODE_ZPX, CATEGORY_READ, (*Processor).iORA},
	{0x0D, "ORA", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iORA},
	{0x1D, "ORA", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iORA},
	{0x19, "ORA", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iORA},
	{0x01, "ORA", MODE_INDIRECTX, CATEGORY_READ, (*Processor).iORA},
	{0x11, "ORA", MODE_INDIRECTY, CATEGORY_READ, (*Processor).iORA},

	{0x48, "PHA", MODE_IMPLIED, CATEGORY_WRITE, (*Processor).iPHA},
	{0x08, "PHP", MODE_IMPLIED, CATEGORY_WRITE, (*Processor).iPHP},
	{0x68, "PLA", MODE_IMPLIED, CATEGORY_READ, (*Processor).iPLA},
	{0x28, "PLP", MODE_IMPLIED, CATEGORY_READ, (*Processor).iPLP},

	{0x2A, "ROL", MODE_ACCUMULATOR, CATEGORY_RMW, (*Processor).iROL},
	{0x26, "ROL", MODE_ZP, CATEGORY_RMW, (*Processor).iROL},
	{0x36, "ROL", MODE_ZPX, CATEGORY_RMW, (*Processor).iROL},
	{0x2E, "ROL", MODE_ABSOLUTE, CATEGORY_RMW, (*Processor).iROL},
	{0x3E, "ROL", MODE_ABSOLUTEX, CATEGORY_RMW, (*Processor).iROL},

	{0x6A, "ROR", MODE_ACCUMULATOR, CATEGORY_RMW, (*Processor).iROR},
	{0x66, "ROR", MODE_ZP, CATEGORY_RMW, (*Processor).iROR},
	{0x76, "ROR", MODE_ZPX, CATEGORY_RMW, (*Processor).iROR},
	{0x6E, "ROR", MODE_ABSOLUTE, CATEGORY_RMW, (*Processor).iROR},
	{0x7E, "ROR", MODE_ABSOLUTEX, CATEGORY_RMW, (*Processor).iROR},

	{0x40, "RTI", MODE_IMPLIED, CATEGORY_INTERRUPT, (*Processor).iRTI},
	{0x60, "RTS", MODE_IMPLIED, CATEGORY_SUBROUTINE, (*Processor).iRTS},

	{0xE9, "SBC", MODE_IMMEDIATE, CATEGORY_READ, (*Processor).iSBC},
	{0xE5, "SBC", MODE_ZP, CATEGORY_READ, (*Processor).iSBC},
	{0xF5, "SBC", MODE_ZPX, CATEGORY_READ, (*Processor).iSBC},
	{0xED, "SBC", MODE_ABSOLUTE, CATEGORY_READ, (*Processor).iSBC},
	{0xFD, "SBC", MODE_ABSOLUTEX, CATEGORY_READ, (*Processor).iSBC},
	{0xF9, "SBC", MODE_ABSOLUTEY, CATEGORY_READ, (*Processor).iSBC},
	{0xE1, "SBC", MODE_INDIRECTX, CATEGORY_READ, (*Processor).iSBC},
	{0xF1, "SBC", MODE_INDIRECTY, CATEGORY_READ, (*Processor).iSBC},

	{0x38, "SEC", MODE_IMPLIED, CATEGORY_READ, (*Processor).iSEC},
	{0xF8, "SED", MODE_IMPLIED, CATEGORY_READ, (*Processor).iSED},
	{0x78, "SEI", MODE_IMPLIED, CATEGORY_READ, (*Processor).iSEI},

	{0x85, "STA", MODE_ZP, CATEGORY_WRITE, (*Processor).iSTA},
	{0x95, "STA", MODE_ZPX, CATEGORY_WRITE, (*Processor).iSTA},
	{0x8D, "STA", MODE_ABSOLUTE, CATEGORY_WRITE, (*Processor).iSTA},
	{0x9D, "STA", MODE_ABSOLUTEX, CATEGORY_WRITE, (*Processor).iSTA},
	{0x99, "STA", MODE_ABSOLUTEY, CATEGORY_WRITE, (*Processor).iSTA},
	{0x81, "STA", MODE_INDIRECTX, CATEGORY_WRITE, (*Processor).iSTA},
	{0x91, "STA", MODE_INDIRECTY, CATEGORY_WRITE, (*Processor).iSTA},

	{0x86, "STX", MODE_ZP, CATEGORY_WRITE, (*Processor).iSTX},
	{0x96, "STX", MODE_ZPY, CATEGORY_WRITE, (*Processor).iSTX},
	{0x8E, "STX", MODE_ABSOLUTE, CATEGORY_WRITE, (*Processor).iSTX},

	{0x84, "STY", MODE_ZP, CATEGORY_WRITE, (*Processor).iSTY},
	{0x94, "STY", MODE_ZPX, CATEGORY_WRITE, (*Processor).iSTY},
	{0x8C, "STY", MODE_ABSOLUTE, CATEGORY_WRITE, (*Processor).iSTY},

	{0xAA, "TAX", MODE_IMPLIED, CATEGORY_READ, (*Processor).iTAX},
	{0xA8, "TAY", MODE_IMPLIED, CATEGORY_READ, (*Processor).iTAY},
	{0xBA, "TSX", MODE_IMPLIED, CATEGORY_READ, (*Processor).iTSX},
	{0x8A, "TXA", MODE_IMPLIED, CATEGORY_READ, (*Processor).iTXA},
	{0x9A, "TXS", MODE_IMPLIED, CATEGORY_READ, (*Processor).iTXS},
	{0x98, "TYA", MODE_IMPLIED, CATEGORY_READ, (*Processor).iTYA},
}

func init() {
	for i := range opcodes {
		opcodes[i] = Instruction{
			Opcode:   uint8(i),
			Mnemonic: "???",
			Mode:     MODE_IMPLIED,
			Bytes:    MODE_IMPLIED.Bytes(),
			Category: CATEGORY_UNIMPLEMENTED,
		}
	}
	for _, d := range documented {
		if opcodes[d.op].exec != nil {
			panic(fmt.Sprintf("opcode 0x%.2X defined twice", d.op))
		}
		opcodes[d.op] = Instruction{
			Opcode:   d.op,
			Mnemonic: d.mnemonic,
			Mode:     d.mode,
			Bytes:    d.mode.Bytes(),
			Category: d.category,
			exec:     d.exec,
		}
	}
}
