package cpu

import (
	"bytes"
	"fmt"
)

// Disassemble renders the bytes between start and stop (inclusive) as
// human-readable 6502 mnemonics, keyed by the address of the first byte of
// each instruction. Data that isn't actually code disassembles to garbage
// lines, same as any other such disassembler working without a symbol table.
func (c *Cpu) Disassemble(start, stop uint16) map[uint16]string {
	var line bytes.Buffer
	var lo, hi byte

	addr := uint32(start)
	stopAt := uint32(stop)

	out := make(map[uint16]string)

	for addr <= stopAt {
		lineAddr := uint16(addr)
		line.WriteString(fmt.Sprintf("$%04X: ", lineAddr))

		opcode := c.Read(uint16(addr))
		addr++

		op := opcodeTable[opcode]
		line.WriteString(fmt.Sprintf("%s ", op.Name))

		switch op.AddressingMode {
		case Implied:
			line.WriteString("{IMP}")
		case Accumulator:
			line.WriteString("A {ACC}")
		case Immediate:
			value := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("#$%02X {IMM}", value))
		case Relative:
			value := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X [%04X] {REL}", value, uint16(addr)+uint16(int8(value))))
		case ZeroPage:
			lo = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X {ZP0}", lo))
		case ZeroPageX:
			lo = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X, X {ZPX}", lo))
		case ZeroPageY:
			lo = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X, Y {ZPY}", lo))
		case Absolute:
			lo = c.Read(uint16(addr))
			addr++
			hi = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X {ABS}", uint16(hi)<<8|uint16(lo)))
		case AbsoluteX:
			lo = c.Read(uint16(addr))
			addr++
			hi = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X, X {ABX}", uint16(hi)<<8|uint16(lo)))
		case AbsoluteY:
			lo = c.Read(uint16(addr))
			addr++
			hi = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X, Y {ABY}", uint16(hi)<<8|uint16(lo)))
		case Indirect:
			lo = c.Read(uint16(addr))
			addr++
			hi = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%04X) {IND}", uint16(hi)<<8|uint16(lo)))
		case IndirectX:
			lo = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%02X, X) {IZX}", lo))
		case IndirectY:
			lo = c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%02X), Y {IZY}", lo))
		}

		out[lineAddr] = line.String()
		line.Reset()

		if addr > 0xffff {
			break
		}
	}

	return out
}
