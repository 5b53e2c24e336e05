package cpu

import (
	"testing"

	"github.com/go-test/deep"
)

func TestOpcodeTable(t *testing.T) {
	implemented := 0
	mnemonics := make(map[string]bool)
	for op := 0; op < 256; op++ {
		in := Lookup(uint8(op))
		if got, want := in.Opcode, uint8(op); got != want {
			t.Errorf("Entry 0x%.2X has opcode 0x%.2X", op, got)
		}
		if got, want := in.Bytes, in.Mode.Bytes(); got != want {
			t.Errorf("0x%.2X %s: length %d doesn't match mode %s (%d)", op, in.Mnemonic, got, in.Mode, want)
		}
		if !in.Implemented() {
			if got, want := in.Category, CATEGORY_UNIMPLEMENTED; got != want {
				t.Errorf("0x%.2X: unimplemented opcode has category %s", op, got)
			}
			continue
		}
		implemented++
		mnemonics[in.Mnemonic] = true
		if in.Category == CATEGORY_UNIMPLEMENTED {
			t.Errorf("0x%.2X %s: implemented opcode has no category", op, in.Mnemonic)
		}
		if in.Mode == MODE_RELATIVE && in.Category != CATEGORY_FLOW {
			t.Errorf("0x%.2X %s: relative mode outside of a branch", op, in.Mnemonic)
		}
	}
	if got, want := implemented, 151; got != want {
		t.Errorf("Wrong number of implemented opcodes. Got %d want %d", got, want)
	}
	if got, want := len(mnemonics), 56; got != want {
		t.Errorf("Wrong number of mnemonics. Got %d want %d", got, want)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		op   uint8
		want Instruction
	}{
		{0xA9, Instruction{Opcode: 0xA9, Mnemonic: "LDA", Mode: MODE_IMMEDIATE, Bytes: 2, Category: CATEGORY_READ}},
		{0x6C, Instruction{Opcode: 0x6C, Mnemonic: "JMP", Mode: MODE_INDIRECT, Bytes: 3, Category: CATEGORY_FLOW}},
		{0x96, Instruction{Opcode: 0x96, Mnemonic: "STX", Mode: MODE_ZPY, Bytes: 2, Category: CATEGORY_WRITE}},
		{0x6A, Instruction{Opcode: 0x6A, Mnemonic: "ROR", Mode: MODE_ACCUMULATOR, Bytes: 1, Category: CATEGORY_RMW}},
		{0x20, Instruction{Opcode: 0x20, Mnemonic: "JSR", Mode: MODE_ABSOLUTE, Bytes: 3, Category: CATEGORY_SUBROUTINE}},
		{0x00, Instruction{Opcode: 0x00, Mnemonic: "BRK", Mode: MODE_IMPLIED, Bytes: 1, Category: CATEGORY_INTERRUPT}},
		{0xFF, Instruction{Opcode: 0xFF, Mnemonic: "???", Mode: MODE_IMPLIED, Bytes: 1, Category: CATEGORY_UNIMPLEMENTED}},
	}
	for _, test := range tests {
		got := Lookup(test.op)
		// Handlers can't be compared so drop them.
		got.exec = nil
		if diff := deep.Equal(got, test.want); diff != nil {
			t.Errorf("0x%.2X: %v", test.op, diff)
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		op     uint8
		lo, hi uint8
		want   string
	}{
		{0xA9, 0x42, 0x00, "LDA #$42"},
		{0xEA, 0x00, 0x00, "NOP"},
		{0x0A, 0x00, 0x00, "ASL A"},
		{0xB1, 0x10, 0x00, "LDA ($10),Y"},
		{0x9D, 0x00, 0x02, "STA $0200,X"},
		{0xF0, 0xFE, 0x00, "BEQ $0600"},
		{0x02, 0x00, 0x00, "??? ($02)"},
	}
	for _, test := range tests {
		if got, want := Lookup(test.op).Disassemble(0x0600, test.lo, test.hi), test.want; got != want {
			t.Errorf("0x%.2X: got %q want %q", test.op, got, want)
		}
	}
}
