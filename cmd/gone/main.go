// Command gone is a front-end for the cpu/mem/ines core: it wires up a Bus
// and a Cpu and drops into the interactive debugger.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v2"

	"gone/cpu"
	"gone/ines"
	"gone/internal/debugger"
	"gone/mem"
)

// demoProgram multiplies 10 by 3 via repeated addition, the same routine
// exercised by the cpu package's own instruction-trace test.
const demoProgram = "a2 0a 8e 00 00 a2 03 8e 01 00 ac 00 00 a9 00 18 6d 01 00 88 d0 fa 8d 02 00 ea ea ea"

const demoLoadAddr = 0x8000

func main() {
	app := &cli.App{
		Name:  "gone",
		Usage: "a cycle-accurate 6502 core for the NES",
		Commands: []*cli.Command{
			{
				Name:  "test0",
				Usage: "run the built-in multiply-by-repeated-add demo in the debugger",
				Action: func(ctx *cli.Context) error {
					return runTest0()
				},
			},
			{
				Name:  "nestest",
				Usage: "load an iNES ROM and run it in the debugger, nestest-style",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "path to the .nes file",
					},
				},
				Action: func(ctx *cli.Context) error {
					path := ctx.String("path")
					if path == "" {
						return cli.Exit("nestest: --path is required", 1)
					}
					return runNestest(path)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTest0() error {
	c := &cpu.Cpu{Bus: &mem.Bus{}}
	c.Bus.FakeRam[0xfffc] = demoLoadAddr & 0xff
	c.Bus.FakeRam[0xfffd] = demoLoadAddr >> 8

	return debugger.Run(c, []byte(demoProgram), demoLoadAddr)
}

func runNestest(path string) error {
	rom, err := ines.Parse(path)
	if err != nil {
		return err
	}

	c := &cpu.Cpu{Bus: &mem.Bus{}}
	c.Bus.Load(0x8000, rom.Prg)
	if len(rom.Prg) == ines.PrgBlockSize {
		// A single 16 KiB bank is mirrored into the upper bank, same as
		// real NES carts that tie A14 to ground.
		c.Bus.Load(0xC000, rom.Prg)
	}

	c.Reset()
	c.ProgramCounter = 0xC000 // skip NES-specific warmup, as the real nestest harness does

	return debugger.Run(c, nil, 0x8000)
}
