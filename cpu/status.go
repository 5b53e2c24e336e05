package cpu

// Status is the packed processor status register (P).
//
//	7  bit  0
//	---- ----
//	NV1B DIZC
//
// Bits 4 (B) and 5 only exist in the byte pushed onto the stack. They have
// no effect on execution.
type Status uint8

const (
	P_NEGATIVE  = Status(0x80)
	P_OVERFLOW  = Status(0x40)
	P_S1        = Status(0x20) // Always 1
	P_B         = Status(0x10) // Only set in the pushed copy during BRK/PHP.
	P_DECIMAL   = Status(0x8)
	P_INTERRUPT = Status(0x4)
	P_ZERO      = Status(0x2)
	P_CARRY     = Status(0x1)
)

// Has returns whether all bits in mask are set.
func (s Status) Has(mask Status) bool {
	return s&mask == mask
}

// Set sets or clears the bits in mask.
func (s *Status) Set(mask Status, on bool) {
	if on {
		*s |= mask
		return
	}
	*s &^= mask
}

func (s Status) Carry() bool            { return s.Has(P_CARRY) }
func (s Status) Zero() bool             { return s.Has(P_ZERO) }
func (s Status) InterruptDisable() bool { return s.Has(P_INTERRUPT) }
func (s Status) Decimal() bool          { return s.Has(P_DECIMAL) }
func (s Status) Break() bool            { return s.Has(P_B) }
func (s Status) Unused() bool           { return s.Has(P_S1) }
func (s Status) Overflow() bool         { return s.Has(P_OVERFLOW) }
func (s Status) Negative() bool         { return s.Has(P_NEGATIVE) }

func (s *Status) SetCarry(v bool)            { s.Set(P_CARRY, v) }
func (s *Status) SetZero(v bool)             { s.Set(P_ZERO, v) }
func (s *Status) SetInterruptDisable(v bool) { s.Set(P_INTERRUPT, v) }
func (s *Status) SetDecimal(v bool)          { s.Set(P_DECIMAL, v) }
func (s *Status) SetBreak(v bool)            { s.Set(P_B, v) }
func (s *Status) SetUnused(v bool)           { s.Set(P_S1, v) }
func (s *Status) SetOverflow(v bool)         { s.Set(P_OVERFLOW, v) }
func (s *Status) SetNegative(v bool)         { s.Set(P_NEGATIVE, v) }

// String renders the flags as NV-BDIZC with set flags in upper case.
func (s Status) String() string {
	const set, clear = "NV-BDIZC", "nv-bdizc"
	b := []byte(clear)
	for i := 0; i < 8; i++ {
		if i == 2 {
			continue
		}
		if s&(0x80>>uint(i)) != 0 {
			b[i] = set[i]
		}
	}
	return string(b)
}
