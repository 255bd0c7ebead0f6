package cpu

import "gone/mask"

// http://www.6502.org/tutorials/6502opcodes.html
// https://www.nesdev.org/obelisk-6502-guide/reference.html (best)

// how to read obelisk guide:
// A,Z,N = A&M
// [target],[flags...] = [op]

// writeResult writes v back to wherever the current Instruction's operand
// came from: the Accumulator in Accumulator mode, memory otherwise. ASL,
// LSR, ROL and ROR all share this shape.
func (c *Cpu) writeResult(v byte) {
	if c.mode == Accumulator {
		c.Accumulator = v
		return
	}
	c.Write(c.AbsAddress, v)
}

// branch commits to a taken branch: charges the extra "taken" cycle, adds a further
// cycle if the branch crosses a page, and moves the ProgramCounter.
func (c *Cpu) branch() {
	c.Cycles++

	target := c.ProgramCounter + c.RelAddress
	if target&0xff00 != c.ProgramCounter&0xff00 {
		c.Cycles++
	}
	c.ProgramCounter = target
}

// ADC - Add with Carry
func (c *Cpu) ADC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#ADC
	var carry uint16
	if c.Flags.Carry {
		carry = 1
	}

	sum := uint16(c.Accumulator) + uint16(c.M) + carry

	c.Flags.Carry = sum > 0xff
	// overflow iff the inputs had the same sign and the result's sign
	// differs from them
	c.Flags.Overflow = (^(uint16(c.Accumulator)^uint16(c.M)) & (uint16(c.Accumulator) ^ sum) & 0x0080) != 0

	c.Accumulator = byte(sum)
	c.setZN(c.Accumulator)

	return 1
}

// AND - Logical AND
func (c *Cpu) AND() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#AND
	c.Accumulator &= c.M
	c.setZN(c.Accumulator)
	return 1
}

// ASL - Arithmetic Shift Left
func (c *Cpu) ASL() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#ASL
	c.Flags.Carry = mask.IsSet(c.M, mask.I1) // old bit 7
	result := c.M << 1
	c.setZN(result)
	c.writeResult(result)
	return 0
}

// BCC - Branch if Carry Clear
func (c *Cpu) BCC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BCC
	if !c.Flags.Carry {
		c.branch()
	}
	return 0
}

// BCS - Branch if Carry Set
func (c *Cpu) BCS() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BCS
	if c.Flags.Carry {
		c.branch()
	}
	return 0
}

// BEQ - Branch if Equal
func (c *Cpu) BEQ() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BEQ
	if c.Flags.Zero {
		c.branch()
	}
	return 0
}

// BIT - Bit Test
func (c *Cpu) BIT() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BIT
	c.Flags.Zero = c.M&c.Accumulator == 0
	c.Flags.Negative = mask.IsSet(c.M, mask.I1) // bit 7 of M, not A&M
	c.Flags.Overflow = mask.IsSet(c.M, mask.I2) // bit 6 of M
	return 0
}

// BMI - Branch if Minus
func (c *Cpu) BMI() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BMI
	if c.Flags.Negative {
		c.branch()
	}
	return 0
}

// BNE - Branch if Not Equal
func (c *Cpu) BNE() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BNE
	if !c.Flags.Zero {
		c.branch()
	}
	return 0
}

// BPL - Branch if Positive
func (c *Cpu) BPL() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BPL
	if !c.Flags.Negative {
		c.branch()
	}
	return 0
}

// BRK - Force Interrupt
func (c *Cpu) BRK() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BRK
	c.ProgramCounter++

	c.push(byte(c.ProgramCounter >> 8))
	c.push(byte(c.ProgramCounter))

	c.Flags.B = true
	c.Flags.Unused = true
	c.push(c.flagsByte())
	c.Flags.B = false

	c.Flags.DisableInterrupt = true

	c.AbsAddress = 0xfffe
	lo := c.Read(c.AbsAddress)
	hi := c.Read(c.AbsAddress + 1)
	c.ProgramCounter = uint16(hi)<<8 | uint16(lo)

	return 0
}

// BVC - Branch if Overflow Clear
func (c *Cpu) BVC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BVC
	if !c.Flags.Overflow {
		c.branch()
	}
	return 0
}

// BVS - Branch if Overflow Set
func (c *Cpu) BVS() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#BVS
	if c.Flags.Overflow {
		c.branch()
	}
	return 0
}

// CLC - Clear Carry Flag
func (c *Cpu) CLC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#CLC
	c.Flags.Carry = false
	return 0
}

// CLD - Clear Decimal Mode
func (c *Cpu) CLD() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#CLD
	c.Flags.Decimal = false
	return 0
}

// CLI - Clear Interrupt Disable
func (c *Cpu) CLI() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#CLI
	c.Flags.DisableInterrupt = false
	return 0
}

// CLV - Clear Overflow Flag
func (c *Cpu) CLV() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#CLV
	c.Flags.Overflow = false
	return 0
}

// CMP - Compare
func (c *Cpu) CMP() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#CMP
	c.Flags.Carry = c.Accumulator >= c.M
	c.Flags.Zero = c.Accumulator == c.M
	c.Flags.Negative = mask.IsSet(c.Accumulator-c.M, mask.I1)
	return 1
}

// CPX - Compare X Register
func (c *Cpu) CPX() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#CPX
	c.Flags.Carry = c.X >= c.M
	c.Flags.Zero = c.X == c.M
	c.Flags.Negative = mask.IsSet(c.X-c.M, mask.I1)
	return 0
}

// CPY - Compare Y Register
func (c *Cpu) CPY() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#CPY
	c.Flags.Carry = c.Y >= c.M
	c.Flags.Zero = c.Y == c.M
	c.Flags.Negative = mask.IsSet(c.Y-c.M, mask.I1)
	return 0
}

// DEC - Decrement Memory
func (c *Cpu) DEC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#DEC
	result := c.M - 1
	c.setZN(result)
	c.Write(c.AbsAddress, result)
	return 0
}

// DEX - Decrement X Register
func (c *Cpu) DEX() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#DEX
	c.X--
	c.setZN(c.X)
	return 0
}

// DEY - Decrement Y Register
func (c *Cpu) DEY() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#DEY
	c.Y--
	c.setZN(c.Y)
	return 0
}

// EOR - Exclusive OR
func (c *Cpu) EOR() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#EOR
	c.Accumulator ^= c.M
	c.setZN(c.Accumulator)
	return 1
}

// INC - Increment Memory
func (c *Cpu) INC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#INC
	result := c.M + 1
	c.setZN(result)
	c.Write(c.AbsAddress, result)
	return 0
}

// INX - Increment X Register
func (c *Cpu) INX() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#INX
	c.X++
	c.setZN(c.X)
	return 0
}

// INY - Increment Y Register
func (c *Cpu) INY() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#INY
	c.Y++
	c.setZN(c.Y)
	return 0
}

// JMP - Jump
func (c *Cpu) JMP() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#JMP
	c.ProgramCounter = c.AbsAddress
	return 0
}

// JSR - Jump to Subroutine
func (c *Cpu) JSR() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#JSR
	// pushes the address of the last byte of the JSR instruction, not the
	// address of the next instruction
	ret := c.ProgramCounter - 1
	c.push(byte(ret >> 8))
	c.push(byte(ret))
	c.ProgramCounter = c.AbsAddress
	return 0
}

// LDA - Load Accumulator
func (c *Cpu) LDA() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#LDA
	c.Accumulator = c.M
	c.setZN(c.Accumulator)
	return 1
}

// LDX - Load X Register
func (c *Cpu) LDX() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#LDX
	c.X = c.M
	c.setZN(c.X)
	return 1
}

// LDY - Load Y Register
func (c *Cpu) LDY() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#LDY
	c.Y = c.M
	c.setZN(c.Y)
	return 1
}

// LSR - Logical Shift Right
func (c *Cpu) LSR() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#LSR
	c.Flags.Carry = mask.IsSet(c.M, mask.I8) // old bit 0
	result := c.M >> 1
	c.setZN(result)
	c.writeResult(result)
	return 0
}

// NOP - No Operation
func (c *Cpu) NOP() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#NOP
	return 0
}

// nopPage is the undocumented page-cross-sensitive NOP family (0x1C, 0x3C,
// 0x5C, 0x7C, 0xDC, 0xFC). Behaves like NOP but still reports a page cross
// so Tick can charge the extra cycle real hardware does.
func (c *Cpu) nopPage() byte {
	return 1
}

// ORA - Logical Inclusive OR
func (c *Cpu) ORA() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#ORA
	c.Accumulator |= c.M
	c.setZN(c.Accumulator)
	return 1
}

// PHA - Push Accumulator
func (c *Cpu) PHA() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#PHA
	c.push(c.Accumulator)
	return 0
}

// PHP - Push Processor Status
func (c *Cpu) PHP() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#PHP
	// the B flag is set in the byte pushed, though never in the Cpu's own
	// status register
	c.Flags.B = true
	c.Flags.Unused = true
	c.push(c.flagsByte())
	c.Flags.B = false
	return 0
}

// PLA - Pull Accumulator
func (c *Cpu) PLA() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#PLA
	c.Accumulator = c.pop()
	c.setZN(c.Accumulator)
	return 0
}

// PLP - Pull Processor Status
func (c *Cpu) PLP() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#PLP
	c.setFlagsByte(c.pop())
	c.Flags.B = false
	c.Flags.Unused = true
	return 0
}

// ROL - Rotate Left
func (c *Cpu) ROL() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#ROL
	oldCarry := c.Flags.Carry
	c.Flags.Carry = mask.IsSet(c.M, mask.I1) // old bit 7

	result := c.M << 1
	if oldCarry {
		result |= 0x01
	}

	c.setZN(result)
	c.writeResult(result)
	return 0
}

// ROR - Rotate Right
func (c *Cpu) ROR() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#ROR
	oldCarry := c.Flags.Carry
	c.Flags.Carry = mask.IsSet(c.M, mask.I8) // old bit 0

	result := c.M >> 1
	if oldCarry {
		result |= 0x80
	}

	c.setZN(result)
	c.writeResult(result)
	return 0
}

// RTI - Return from Interrupt
func (c *Cpu) RTI() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#RTI
	c.setFlagsByte(c.pop())
	c.Flags.B = false
	c.Flags.Unused = true

	lo := uint16(c.pop())
	hi := uint16(c.pop())
	c.ProgramCounter = hi<<8 | lo
	return 0
}

// RTS - Return from Subroutine
func (c *Cpu) RTS() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#RTS
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	c.ProgramCounter = (hi<<8 | lo) + 1
	return 0
}

// SBC - Subtract with Carry
func (c *Cpu) SBC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#SBC
	// SBC(M) is ADC(~M); reuse the same 16-bit overflow/carry arithmetic
	value := uint16(c.M) ^ 0x00ff

	var carry uint16
	if c.Flags.Carry {
		carry = 1
	}

	sum := uint16(c.Accumulator) + value + carry

	c.Flags.Carry = sum > 0xff
	c.Flags.Overflow = ((sum ^ uint16(c.Accumulator)) & (sum ^ value) & 0x0080) != 0

	c.Accumulator = byte(sum)
	c.setZN(c.Accumulator)

	return 1
}

// SEC - Set Carry Flag
func (c *Cpu) SEC() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#SEC
	c.Flags.Carry = true
	return 0
}

// SED - Set Decimal Flag
func (c *Cpu) SED() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#SED
	c.Flags.Decimal = true
	return 0
}

// SEI - Set Interrupt Disable
func (c *Cpu) SEI() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#SEI
	c.Flags.DisableInterrupt = true
	return 0
}

// STA - Store Accumulator
func (c *Cpu) STA() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#STA
	c.Write(c.AbsAddress, c.Accumulator)
	return 0
}

// STX - Store X Register
func (c *Cpu) STX() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#STX
	c.Write(c.AbsAddress, c.X)
	return 0
}

// STY - Store Y Register
func (c *Cpu) STY() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#STY
	c.Write(c.AbsAddress, c.Y)
	return 0
}

// TAX - Transfer Accumulator to X
func (c *Cpu) TAX() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#TAX
	c.X = c.Accumulator
	c.setZN(c.X)
	return 0
}

// TAY - Transfer Accumulator to Y
func (c *Cpu) TAY() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#TAY
	c.Y = c.Accumulator
	c.setZN(c.Y)
	return 0
}

// TSX - Transfer Stack Pointer to X
func (c *Cpu) TSX() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#TSX
	c.X = c.Stack
	c.setZN(c.X)
	return 0
}

// TXA - Transfer X to Accumulator
func (c *Cpu) TXA() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#TXA
	c.Accumulator = c.X
	c.setZN(c.Accumulator)
	return 0
}

// TXS - Transfer X to Stack Pointer
func (c *Cpu) TXS() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#TXS
	c.Stack = c.X
	return 0
}

// TYA - Transfer Y to Accumulator
func (c *Cpu) TYA() byte {
	// https://www.nesdev.org/obelisk-6502-guide/reference.html#TYA
	c.Accumulator = c.Y
	c.setZN(c.Accumulator)
	return 0
}

// XXX is the placeholder Instruction for every one of the 256 opcode bytes
// that has no defined 6502 meaning. It behaves as a safe 1-cycle no-op so
// that garbage ROM data never panics the Cpu.
func (c *Cpu) XXX() byte {
	return 0
}
