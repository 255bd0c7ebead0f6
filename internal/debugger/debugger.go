// Package debugger provides an interactive bubbletea TUI for single-stepping
// a cpu.Cpu and inspecting its registers and surrounding memory.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"gone/cpu"
)

type model struct {
	cpu     *cpu.Cpu
	program []byte

	offset uint16 // load address of program; also where pageTable draws from
	prevPC uint16
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
//
// When program is non-nil it is treated as the Cpu's own hex-text loading
// convention and loaded at offset before a Reset. A nil program means the
// caller has already populated the Bus (e.g. from a parsed ROM image) and
// possibly called Reset itself, so Init leaves the Cpu state untouched.
func (m model) Init() tea.Cmd {
	if m.program != nil {
		m.cpu.LoadProgram(m.program, m.offset)
		m.cpu.Reset()
	}
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.ProgramCounter
			for !m.cpu.Complete() {
				m.cpu.Tick()
			}
			m.cpu.Tick()
			for !m.cpu.Complete() {
				m.cpu.Tick()
			}
		}
	}
	return m, nil
}

// renderPage renders a single page as a line. The current ProgramCounter is
// highlighted.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := range 16 {
		addr := start + uint16(i)
		b := m.cpu.Read(addr)
		if addr == m.cpu.ProgramCounter {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Flags.Negative,
		m.cpu.Flags.Overflow,
		m.cpu.Flags.Unused,
		m.cpu.Flags.B,
		m.cpu.Flags.Decimal,
		m.cpu.Flags.DisableInterrupt,
		m.cpu.Flags.Zero,
		m.cpu.Flags.Carry,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %02x
 X: %02x
 Y: %02x
cycles left: %d
N V _ B D I Z C
`,
		m.cpu.ProgramCounter,
		m.prevPC,
		m.cpu.Accumulator,
		m.cpu.X,
		m.cpu.Y,
		m.cpu.CyclesRemaining(),
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	offsets := []int{
		0, 16, 32, 48, 64,
		int(m.offset),
		int(m.offset + 16*1),
		int(m.offset + 16*2),
		int(m.offset + 16*3),
		int(m.offset + 16*4),
	}
	for _, i := range offsets {
		pages = append(pages, m.renderPage(uint16(i)))
	}
	return strings.Join(pages, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(m.cpu.Disassemble(m.cpu.ProgramCounter, m.cpu.ProgramCounter+1)),
	)
}

// Run starts an interactive TUI. When program is non-nil it is loaded into
// the Cpu's Bus at offset and the Cpu is reset first; a nil program leaves
// the Cpu as the caller set it up. Each "j" or space keypress single-steps
// one whole instruction.
func Run(c *cpu.Cpu, program []byte, offset uint16) error {
	_, err := tea.NewProgram(model{
		cpu:     c,
		program: program,
		offset:  offset,
	}).Run()
	return err
}
