package cpu

// Instruction implementations. Each one is run by Step with the PC still pointing at
// its opcode and returns true only if it loaded the PC itself.

// iADC implements the ADC instruction and sets all associated flags.
func (p *Processor) iADC(mode Mode) bool {
	p.adc(p.operand(mode))
	return false
}

// adc does the ADC math for both binary and BCD modes (if implemented).
// For SBC (non BCD) simply ones-complement the arg before calling.
func (p *Processor) adc(arg uint8) {
	// Pull the carry bit out which thankfully is the low bit so can be
	// used directly.
	carry := uint8(p.P & P_CARRY)

	// The Ricoh version didn't implement BCD (used in NES)
	if p.P.Decimal() && p.CPUType != CPU_NMOS_RICOH {
		// BCD details - http://6502.org/tutorials/decimal_mode.html
		aL := (p.A & 0x0F) + (arg & 0x0F) + carry
		// Low nibble fixup
		if aL >= 0x0A {
			aL = ((aL + 0x06) & 0x0f) + 0x10
		}
		sum := uint16(p.A&0xF0) + uint16(arg&0xF0) + uint16(aL)
		// High nibble fixup
		if sum >= 0xA0 {
			sum += 0x60
		}
		res := uint8(sum & 0xFF)
		seq := (p.A & 0xF0) + (arg & 0xF0) + aL
		bin := p.A + arg + carry
		p.overflowCheck(p.A, arg, seq)
		p.carryCheck(sum)
		// NMOS sets N from the intermediate and Z from the binary result.
		p.negativeCheck(seq)
		p.zeroCheck(bin)
		p.A = res
		return
	}

	sum := p.A + arg + carry
	p.overflowCheck(p.A, arg, sum)
	p.carryCheck(uint16(p.A) + uint16(arg) + uint16(carry))
	p.loadRegister(&p.A, sum)
}

// iSBC implements the SBC instruction for both binary and BCD modes (if implemented).
func (p *Processor) iSBC(mode Mode) bool {
	arg := p.operand(mode)
	if !p.P.Decimal() || p.CPUType == CPU_NMOS_RICOH {
		// Binary mode is just ones complement the arg and ADC.
		p.adc(^arg)
		return false
	}
	carry := uint8(p.P & P_CARRY)

	aL := int8(p.A&0x0F) - int8(arg&0x0F) + int8(carry) - 1
	// Low nibble fixup
	if aL < 0 {
		aL = ((aL - 0x06) & 0x0F) - 0x10
	}
	sum := int16(p.A&0xF0) - int16(arg&0xF0) + int16(aL)
	// High nibble fixup
	if sum < 0x0000 {
		sum -= 0x60
	}
	res := uint8(sum & 0xFF)

	// Flags all come from the binary math.
	b := p.A + ^arg + carry
	p.overflowCheck(p.A, ^arg, b)
	p.negativeCheck(b)
	p.carryCheck(uint16(p.A) + uint16(^arg) + uint16(carry))
	p.zeroCheck(b)
	p.A = res
	return false
}

func (p *Processor) iAND(mode Mode) bool {
	p.loadRegister(&p.A, p.A&p.operand(mode))
	return false
}

func (p *Processor) iORA(mode Mode) bool {
	p.loadRegister(&p.A, p.A|p.operand(mode))
	return false
}

func (p *Processor) iEOR(mode Mode) bool {
	p.loadRegister(&p.A, p.A^p.operand(mode))
	return false
}

// iASL implements ASL on A or memory. Bit 7 goes into C.
func (p *Processor) iASL(mode Mode) bool {
	val := p.operand(mode)
	new := val << 1
	p.writeBack(mode, new)
	p.carryCheck(uint16(val) << 1)
	p.zeroCheck(new)
	p.negativeCheck(new)
	return false
}

// iLSR implements LSR on A or memory. Bit 0 goes into C.
func (p *Processor) iLSR(mode Mode) bool {
	val := p.operand(mode)
	new := val >> 1
	p.writeBack(mode, new)
	// Get bit0 but in a 16 bit value and then shift it up into
	// the carry position
	p.carryCheck(uint16(val&0x01) << 8)
	p.zeroCheck(new)
	p.negativeCheck(new)
	return false
}

// iROL implements ROL on A or memory. The old C goes into bit 0.
func (p *Processor) iROL(mode Mode) bool {
	carry := uint8(p.P & P_CARRY)
	val := p.operand(mode)
	new := (val << 1) | carry
	p.writeBack(mode, new)
	p.carryCheck(uint16(val) << 1)
	p.zeroCheck(new)
	p.negativeCheck(new)
	return false
}

// iROR implements ROR on A or memory. The old C goes into bit 7.
func (p *Processor) iROR(mode Mode) bool {
	carry := uint8(p.P&P_CARRY) << 7
	val := p.operand(mode)
	new := (val >> 1) | carry
	p.writeBack(mode, new)
	// Just see if carry is set or not.
	p.carryCheck((uint16(val) << 8) & 0x0100)
	p.zeroCheck(new)
	p.negativeCheck(new)
	return false
}

func (p *Processor) iINC(mode Mode) bool {
	new := p.operand(mode) + 1
	p.writeBack(mode, new)
	p.zeroCheck(new)
	p.negativeCheck(new)
	return false
}

func (p *Processor) iDEC(mode Mode) bool {
	new := p.operand(mode) - 1
	p.writeBack(mode, new)
	p.zeroCheck(new)
	p.negativeCheck(new)
	return false
}

func (p *Processor) iINX(_ Mode) bool {
	p.loadRegister(&p.X, p.X+1)
	return false
}

func (p *Processor) iINY(_ Mode) bool {
	p.loadRegister(&p.Y, p.Y+1)
	return false
}

func (p *Processor) iDEX(_ Mode) bool {
	p.loadRegister(&p.X, p.X-1)
	return false
}

func (p *Processor) iDEY(_ Mode) bool {
	p.loadRegister(&p.Y, p.Y-1)
	return false
}

// iBIT implements the BIT instruction for AND'ing against A
// and setting N/V based on the value.
func (p *Processor) iBIT(mode Mode) bool {
	val := p.operand(mode)
	p.zeroCheck(p.A & val)
	p.negativeCheck(val)
	// Copy V from bit 6
	p.P.SetOverflow(val&uint8(P_OVERFLOW) != 0x00)
	return false
}

// compare implements the logic for all CMP/CPX/CPY instructions and
// sets flags accordingly from the results.
func (p *Processor) compare(reg uint8, val uint8) {
	p.zeroCheck(reg - val)
	p.negativeCheck(reg - val)
	// A-M done as 2's complement addition by ones complement and add 1
	// This way we get valid sign extension and a carry bit test.
	p.carryCheck(uint16(reg) + uint16(^val) + uint16(1))
}

func (p *Processor) iCMP(mode Mode) bool {
	p.compare(p.A, p.operand(mode))
	return false
}

func (p *Processor) iCPX(mode Mode) bool {
	p.compare(p.X, p.operand(mode))
	return false
}

func (p *Processor) iCPY(mode Mode) bool {
	p.compare(p.Y, p.operand(mode))
	return false
}

func (p *Processor) iLDA(mode Mode) bool {
	p.loadRegister(&p.A, p.operand(mode))
	return false
}

func (p *Processor) iLDX(mode Mode) bool {
	p.loadRegister(&p.X, p.operand(mode))
	return false
}

func (p *Processor) iLDY(mode Mode) bool {
	p.loadRegister(&p.Y, p.operand(mode))
	return false
}

// Stores never touch flags.

func (p *Processor) iSTA(mode Mode) bool {
	p.ram.Write(p.address(mode), p.A)
	return false
}

func (p *Processor) iSTX(mode Mode) bool {
	p.ram.Write(p.address(mode), p.X)
	return false
}

func (p *Processor) iSTY(mode Mode) bool {
	p.ram.Write(p.address(mode), p.Y)
	return false
}

func (p *Processor) iTAX(_ Mode) bool {
	p.loadRegister(&p.X, p.A)
	return false
}

func (p *Processor) iTAY(_ Mode) bool {
	p.loadRegister(&p.Y, p.A)
	return false
}

func (p *Processor) iTSX(_ Mode) bool {
	p.loadRegister(&p.X, p.S)
	return false
}

func (p *Processor) iTXA(_ Mode) bool {
	p.loadRegister(&p.A, p.X)
	return false
}

// iTXS is the one transfer which doesn't set flags.
func (p *Processor) iTXS(_ Mode) bool {
	p.S = p.X
	return false
}

func (p *Processor) iTYA(_ Mode) bool {
	p.loadRegister(&p.A, p.Y)
	return false
}

func (p *Processor) iCLC(_ Mode) bool {
	p.P.SetCarry(false)
	return false
}

func (p *Processor) iCLD(_ Mode) bool {
	p.P.SetDecimal(false)
	return false
}

func (p *Processor) iCLI(_ Mode) bool {
	p.P.SetInterruptDisable(false)
	return false
}

func (p *Processor) iCLV(_ Mode) bool {
	p.P.SetOverflow(false)
	return false
}

func (p *Processor) iSEC(_ Mode) bool {
	p.P.SetCarry(true)
	return false
}

func (p *Processor) iSED(_ Mode) bool {
	p.P.SetDecimal(true)
	return false
}

func (p *Processor) iSEI(_ Mode) bool {
	p.P.SetInterruptDisable(true)
	return false
}

func (p *Processor) iNOP(_ Mode) bool {
	return false
}

func (p *Processor) iPHA(_ Mode) bool {
	p.pushStack(p.A)
	return false
}

// iPHP pushes P with B and S1 always set in the pushed copy.
func (p *Processor) iPHP(_ Mode) bool {
	p.pushStack(uint8(p.P | P_S1 | P_B))
	return false
}

func (p *Processor) iPLA(_ Mode) bool {
	p.loadRegister(&p.A, p.popStack())
	return false
}

// iPLP restores P from the stack. B doesn't exist in the register and S1 is always set.
func (p *Processor) iPLP(_ Mode) bool {
	p.P = Status(p.popStack())
	p.P |= P_S1
	p.P &^= P_B
	return false
}

// branch moves the PC to the relative target when cond holds. Otherwise
// Step advances past the 2 byte branch as normal.
func (p *Processor) branch(cond bool) bool {
	if !cond {
		return false
	}
	p.PC = p.address(MODE_RELATIVE)
	return true
}

func (p *Processor) iBCC(_ Mode) bool { return p.branch(!p.P.Carry()) }
func (p *Processor) iBCS(_ Mode) bool { return p.branch(p.P.Carry()) }
func (p *Processor) iBEQ(_ Mode) bool { return p.branch(p.P.Zero()) }
func (p *Processor) iBNE(_ Mode) bool { return p.branch(!p.P.Zero()) }
func (p *Processor) iBMI(_ Mode) bool { return p.branch(p.P.Negative()) }
func (p *Processor) iBPL(_ Mode) bool { return p.branch(!p.P.Negative()) }
func (p *Processor) iBVC(_ Mode) bool { return p.branch(!p.P.Overflow()) }
func (p *Processor) iBVS(_ Mode) bool { return p.branch(p.P.Overflow()) }

// iJMP implements JMP for both absolute and indirect (with the page wrap bug) modes.
func (p *Processor) iJMP(mode Mode) bool {
	p.PC = p.address(mode)
	return true
}

// iJSR pushes the address of the last byte of the JSR and jumps.
// RTS handles this by adding one to the popped PC value.
func (p *Processor) iJSR(mode Mode) bool {
	target := p.address(mode)
	p.pushStack16(p.PC + 2)
	p.PC = target
	return true
}

func (p *Processor) iRTS(_ Mode) bool {
	p.PC = p.popStack16() + 1
	return true
}

// iBRK runs the IRQ sequence with B set in the pushed P. The return address
// skips the padding byte after the opcode.
func (p *Processor) iBRK(_ Mode) bool {
	p.runInterrupt(IRQ_VECTOR, p.PC+2, true)
	return true
}

// iRTI pops P (ignoring B) and then the PC. Unlike RTS the PC isn't adjusted.
func (p *Processor) iRTI(_ Mode) bool {
	p.P = Status(p.popStack())
	// The actual flags register always has S1 set to one
	p.P |= P_S1
	// And the B bit is never set in the register
	p.P &^= P_B
	p.PC = p.popStack16()
	return true
}
