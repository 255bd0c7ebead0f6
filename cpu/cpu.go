// Package cpu implements the MOS Technology 6502 microprocessor, as used in
// the NES.
package cpu

import (
	"strconv"
	"strings"

	"gone/mask"
	"gone/mem"
)

// The Cpu has no memory of its own (aside from a number of small registers
// which amount to about 7 bytes). Instead, the Cpu interfaces with a Bus that
// provides memory.
type Cpu struct {
	Bus *mem.Bus

	// https://problemkaputt.de/everynes.htm#cpuregistersandflags
	// https://www.nesdev.org/wiki/CPU_ALL#CPU_2
	// https://www.nesdev.org/wiki/Status_flags#Flags

	// Flags are 8 bits that make up the status register (aka P register).
	//
	// 7654 3210
	// NVUB DIZC
	Flags struct {
		Negative         bool // bit 7
		Overflow         bool // bit 6
		Unused           bool // bit 5; logically always 1
		B                bool // bit 4; set only in the byte pushed by PHP/BRK
		Decimal          bool // bit 3; inherited from 6502, unused by the NES
		DisableInterrupt bool // bit 2
		Zero             bool // bit 1
		Carry            bool // bit 0
	}

	Accumulator byte // The Accumulator represents a byte value for immediate use, similar to a local variable
	X           byte
	Y           byte

	// Stack instructions (PHA, PLA, PHP, PLP, JSR, RTS, BRK, RTI) always
	// access the 01 page (0x0100-0x01ff). The Cpu can store a low byte in
	// this register.
	Stack byte

	// The ProgramCounter is a 2-byte (word) memory address that increments
	// (almost) continuously. The byte located at this address should
	// provide the CPU with an Opcode that specifies the next instruction
	// to execute.
	ProgramCounter uint16

	M           byte   // after AddressingMode
	AbsAddress  uint16
	RelAddress  uint16 // Relative mode offset (sign-extended), used only by branch Instructions
	PageCrossed bool   // if true AND the operation cares, add 1 extra cycle
	Cycles      byte   // decrements to 0, at which point a new instruction is executed

	mode  AddressingMode // addressing mode of the Instruction currently executing
	ticks uint64         // total ticks observed since Reset
}

// Read reads one byte from the given addr. The addr is typically supplied by
// the program.
func (c *Cpu) Read(addr uint16) byte {
	return c.Bus.Read(addr, false)
}

// Write passes data to the Bus, which actually performs the write.
func (c *Cpu) Write(
	addr uint16, // addresses are 2 bytes (16 bits) wide; see xxd
	data byte,
) {
	c.Bus.Write(addr, data)
}

// LoadProgram parses program as whitespace-separated hex byte tokens (e.g.
// "a2 0a 8e") and places the resulting bytes at the given addr. It panics on
// a token that is not valid hex.
func (c *Cpu) LoadProgram(program []byte, addr uint16) {
	for i, s := range strings.Fields(string(program)) {
		b, err := strconv.ParseInt(s, 16, 16)
		if err != nil {
			panic(err)
		}
		c.Bus.FakeRam[addr+uint16(i)] = byte(b)
	}
}

// flagsByte packs Flags into a single byte, in the canonical NVUB DIZC order.
func (c *Cpu) flagsByte() byte {
	var p byte
	if c.Flags.Negative {
		p = mask.Set(p, mask.I1, 1)
	}
	if c.Flags.Overflow {
		p = mask.Set(p, mask.I2, 1)
	}
	if c.Flags.Unused {
		p = mask.Set(p, mask.I3, 1)
	}
	if c.Flags.B {
		p = mask.Set(p, mask.I4, 1)
	}
	if c.Flags.Decimal {
		p = mask.Set(p, mask.I5, 1)
	}
	if c.Flags.DisableInterrupt {
		p = mask.Set(p, mask.I6, 1)
	}
	if c.Flags.Zero {
		p = mask.Set(p, mask.I7, 1)
	}
	if c.Flags.Carry {
		p = mask.Set(p, mask.I8, 1)
	}
	return p
}

// setFlagsByte unpacks a byte into Flags, the inverse of flagsByte.
func (c *Cpu) setFlagsByte(p byte) {
	c.Flags.Negative = mask.IsSet(p, mask.I1)
	c.Flags.Overflow = mask.IsSet(p, mask.I2)
	c.Flags.Unused = mask.IsSet(p, mask.I3)
	c.Flags.B = mask.IsSet(p, mask.I4)
	c.Flags.Decimal = mask.IsSet(p, mask.I5)
	c.Flags.DisableInterrupt = mask.IsSet(p, mask.I6)
	c.Flags.Zero = mask.IsSet(p, mask.I7)
	c.Flags.Carry = mask.IsSet(p, mask.I8)
}

// setZN sets the Zero and Negative flags from v, as almost every load/compute
// Instruction does.
func (c *Cpu) setZN(v byte) {
	c.Flags.Zero = v == 0
	c.Flags.Negative = mask.IsSet(v, mask.I1)
}

// push writes a byte to the stack (page 1) and decrements Stack, wrapping
// mod 256.
func (c *Cpu) push(v byte) {
	c.Write(0x0100+uint16(c.Stack), v)
	c.Stack--
}

// pop increments Stack, wrapping mod 256, and reads the byte now on top of
// the stack.
func (c *Cpu) pop() byte {
	c.Stack++
	return c.Read(0x0100 + uint16(c.Stack))
}

// CyclesRemaining returns the number of ticks still owed before the current
// instruction completes.
func (c *Cpu) CyclesRemaining() byte { return c.Cycles }

// TickCount returns the total number of ticks observed since Reset.
func (c *Cpu) TickCount() uint64 { return c.ticks }

// Complete reports whether the Cpu is between instructions.
func (c *Cpu) Complete() bool { return c.Cycles == 0 }

// Status returns the packed status byte as the Flags currently hold it. Unlike
// the byte PHP/BRK push, B is not forced to 1.
func (c *Cpu) Status() byte { return c.flagsByte() }

// SetStatus unpacks p into Flags bit for bit. Unlike PLP/RTI, it does not
// clear B or force U.
func (c *Cpu) SetStatus(p byte) { c.setFlagsByte(p) }

// decode fetches a byte of data from memory, accounting for the addressing
// mode. c.ProgramCounter is incremented zero to two times.
//
// The retrieved byte is stored in c.M, so that it can be used by the
// following Instruction. c.PageCrossed records whether a page boundary was
// crossed while forming the address; only the operations that care about it
// (per opcodeTable) turn it into an extra cycle.
func (c *Cpu) decode(a AddressingMode) {
	c.PageCrossed = false

	switch a {

	// 0 reads

	case Implied:
		return

	case Accumulator:
		c.M = c.Accumulator
		return

	case Immediate:
		c.AbsAddress = c.ProgramCounter
		c.ProgramCounter++

	// 1 read

	case ZeroPage:
		c.AbsAddress = uint16(c.Read(c.ProgramCounter))
		c.ProgramCounter++
		c.AbsAddress &= 0x00ff

	case ZeroPageX:
		c.AbsAddress = uint16(c.Read(c.ProgramCounter) + c.X)
		c.ProgramCounter++
		c.AbsAddress &= 0x00ff

	case ZeroPageY:
		c.AbsAddress = uint16(c.Read(c.ProgramCounter) + c.Y)
		c.ProgramCounter++
		c.AbsAddress &= 0x00ff

	case Relative:
		// only the sign-extended offset is recorded here; the branch Instruction
		// decides whether to take it, and charges the cycles for
		// doing so
		rel := c.Read(c.ProgramCounter)
		c.ProgramCounter++

		c.RelAddress = uint16(rel)
		if rel&0x80 != 0 {
			c.RelAddress |= 0xff00
		}
		return

	// 2 reads

	case Absolute:
		col := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		page := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		c.AbsAddress = mask.Word(page, col)

	case AbsoluteX:
		col := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		page := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		c.AbsAddress = mask.Word(page, col)

		c.AbsAddress += uint16(c.X)
		if c.AbsAddress&0xff00 != uint16(page)<<8 {
			c.PageCrossed = true
		}

	case AbsoluteY:
		col := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		page := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		c.AbsAddress = mask.Word(page, col)

		c.AbsAddress += uint16(c.Y)
		if c.AbsAddress&0xff00 != uint16(page)<<8 {
			c.PageCrossed = true
		}

	// 3 reads

	case IndirectX:
		ptr := c.Read(c.ProgramCounter)
		c.ProgramCounter++

		col := c.Read(uint16(ptr+c.X) & 0x00ff)
		page := c.Read(uint16(ptr+1+c.X) & 0x00ff)
		c.AbsAddress = mask.Word(page, col)

	case IndirectY:
		ptr := c.Read(c.ProgramCounter)
		c.ProgramCounter++

		col := c.Read(uint16(ptr) & 0x00ff)
		page := c.Read(uint16(ptr+1) & 0x00ff)
		c.AbsAddress = mask.Word(page, col)

		c.AbsAddress += uint16(c.Y)
		if c.AbsAddress&0xff00 != uint16(page)<<8 {
			c.PageCrossed = true
		}

	// 4 reads

	case Indirect:
		ptrCol := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		ptrPage := c.Read(c.ProgramCounter)
		ptr := mask.Word(ptrPage, ptrCol)
		c.ProgramCounter++

		realCol := c.Read(ptr)

		var realPage byte
		if ptrCol == 0xff {
			// hardware bug: if the pointer's low byte is 0xff, the
			// high byte of the target is read from the start of
			// the same page rather than the next page
			// http://www.6502.org/tutorials/6502opcodes.html#JMP
			realPage = c.Read(ptr & 0xff00)
		} else {
			realPage = c.Read(ptr + 1)
		}

		c.AbsAddress = mask.Word(realPage, realCol)
	}

	c.M = c.Read(c.AbsAddress)
}

// Tick runs one clock cycle (§4.5). When the current instruction has
// finished (Cycles == 0), the next opcode is fully fetched, decoded, and
// executed; otherwise this tick is idle filler owed to the instruction in
// flight. Either way Cycles decrements by 1 and the total tick count
// increments by 1.
func (c *Cpu) Tick() {
	if c.Cycles == 0 {
		b := c.Read(c.ProgramCounter)
		c.ProgramCounter++

		c.Flags.Unused = true

		op := opcodeTable[b]
		c.Cycles = op.Cycles
		c.mode = op.AddressingMode

		c.decode(op.AddressingMode)
		extraOp := op.Instruction(c)

		if c.PageCrossed && extraOp != 0 {
			c.Cycles++
		}

		c.Flags.Unused = true
	}

	c.Cycles--
	c.ticks++
}

// fffa nmi
// fffc reset
// fffe irq

// Reset loads ProgramCounter from the reset vector and puts the Cpu into its
// documented post-reset state (§4.6). Must be called once before the first
// Tick.
func (c *Cpu) Reset() {
	c.Accumulator = 0
	c.X = 0
	c.Y = 0

	c.Stack = 0xfd

	c.Flags.Negative = false
	c.Flags.Overflow = false
	c.Flags.Unused = true
	c.Flags.B = false
	c.Flags.Decimal = false
	c.Flags.DisableInterrupt = false
	c.Flags.Zero = false
	c.Flags.Carry = false

	c.AbsAddress = 0xfffc
	col := c.Read(c.AbsAddress)
	page := c.Read(c.AbsAddress + 1)
	c.ProgramCounter = mask.Word(page, col)

	c.M = 0
	c.AbsAddress = 0
	c.Cycles = 8
}

// NMI requests a non-maskable interrupt (§4.6). Always honored; pushes PC
// and status (B=0), sets the interrupt-disable flag, and loads PC from the
// NMI vector.
func (c *Cpu) NMI() {
	c.push(byte(c.ProgramCounter >> 8))
	c.push(byte(c.ProgramCounter))

	c.Flags.B = false
	c.Flags.Unused = true
	c.push(c.flagsByte())
	c.Flags.DisableInterrupt = true

	c.AbsAddress = 0xfffa
	col := c.Read(c.AbsAddress)
	page := c.Read(c.AbsAddress + 1)
	c.ProgramCounter = mask.Word(page, col)

	c.Cycles = 8
}

// IRQ requests a maskable interrupt (§4.6). Ignored when the
// interrupt-disable flag is set; otherwise behaves like NMI but loads PC
// from the IRQ/BRK vector.
func (c *Cpu) IRQ() {
	if c.Flags.DisableInterrupt {
		return
	}

	c.push(byte(c.ProgramCounter >> 8))
	c.push(byte(c.ProgramCounter))

	c.Flags.B = false
	c.Flags.Unused = true
	c.push(c.flagsByte())
	c.Flags.DisableInterrupt = true

	c.AbsAddress = 0xfffe
	col := c.Read(c.AbsAddress)
	page := c.Read(c.AbsAddress + 1)
	c.ProgramCounter = mask.Word(page, col)

	c.Cycles = 7
}
