package mem

// A Bus is the central (global) object that connects multiple 'hardware'
// components together, enabling communication between them. Each Bus has an
// independent memory layout that begins at 0x0000.
//
// In the NES, there are 2 Buses. One has 64 kB, responsible for CPU, memory,
// audio and cartridge (0x0000-0xffff). The other has 8 (?) kB, responsible for
// graphics (0x2000-0x3fff?). Only the first is modeled here; the core treats
// all 65536 addresses as plain RAM with no memory-mapped I/O.
//
// One or more components (structs) can be connected to a Bus by means of a
// pointer; e.g. Cpu.Bus = &Bus{}.
type Bus struct {
	FakeRam [64 * 1024]byte // 64 kB (0xffff), zeroed on init
}

// CPU     MEM     APU     CART
//  |       |       |       |
//  |       |0000   |4000   |4020
//  |       |07ff   |4017   |ffff
//  |------------------------------------ BUS 1
//  |
// PPU     GFX     VRAM    PALETTE
//  |       |       |       |
//  |       |       |       |
//  |       |       |       |
//  |------------------------------------ BUS 2

// Write stores data at addr. Every 16-bit address is valid.
func (b *Bus) Write(addr uint16, data byte) {
	b.FakeRam[addr] = data
}

// Read returns the byte stored at addr. readonly is accepted for parity with
// front-ends that want to peek at memory without side effects; the Bus has no
// read side effects to suppress, so it is otherwise unused.
func (b *Bus) Read(addr uint16, readonly bool) byte { return b.FakeRam[addr] }

// Load copies data into the Bus starting at addr, wrapping at the end of the
// address space. Used by ROM loaders and test harnesses to seed memory
// before Reset.
func (b *Bus) Load(addr uint16, data []byte) {
	for i, v := range data {
		b.FakeRam[addr+uint16(i)] = v
	}
}
