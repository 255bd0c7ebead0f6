package cpu

// An AddressingMode tells the Cpu where to access (look for) a given byte of
// memory. There are 13 possible modes.
//
// Most Instructions can index the full 64 kB range of memory, that is, 256
// pages of 256 bytes. The exception is ZeroPage, which is confined to the
// first page of 256 bytes.
type AddressingMode int

// https://problemkaputt.de/everynes.htm#cpumemoryaddressing
// https://www.nesdev.org/wiki/CPU_addressing_modes

const (
	// 0 increments

	Implied     AddressingMode = iota // does not increment ProgramCounter
	Accumulator                       // use Cpu.Accumulator

	// 1 increment, 1 (or 3) read

	Immediate // use the ProgramCounter itself
	ZeroPage  // 0x0000-0x00ff
	ZeroPageX
	ZeroPageY // LDX, STX
	IndirectX // rarely used

	IndirectY // 3 reads, may involve page crossing
	Relative  // 1 read

	// 2 increments, 2 reads

	Absolute
	AbsoluteX // may involve page crossing
	AbsoluteY // may involve page crossing

	// 2 increments, 4 reads

	Indirect // JMP only
)
