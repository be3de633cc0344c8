// Package monitor is an interactive console for single stepping the
// emulator and inspecting its state.
package monitor

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/chzyer/readline"
	"github.com/mgutz/ansi"

	"github.com/ezrec/agc/emulator"
	"github.com/ezrec/agc/memory"
	"github.com/ezrec/agc/word"
)

var colorSame = ansi.ColorCode("default:default")
var colorNew = ansi.ColorCode("default+bu:default")

const HELP = `step [n]               run n time pulses
mct [n]                run n memory cycles
regs                   show registers
mem e|f index [count]  show physical erasable or fixed words
chan                   show channels
dot file               write the control pulse schedule as a dot graph
quit                   leave the monitor`

// Monitor is an interactive debugger bound to one emulator.
type Monitor struct {
	Verbose bool
	Color   bool      // Highlight changed registers.
	Out     io.Writer // Command output.

	emu  *emulator.Emulator
	prev map[string]uint16
}

// NewMonitor creates a monitor for an emulator.
func NewMonitor(emu *emulator.Emulator) (mon *Monitor) {
	mon = &Monitor{
		Out: os.Stdout,
		emu: emu,
	}
	mon.snapshot()

	return
}

func (mon *Monitor) snapshot() {
	mon.prev = make(map[string]uint16)
	for name, value := range mon.emu.Cpu.Registers() {
		mon.prev[name] = value
	}
}

// Registers writes the register file, marking values changed since
// the last display.
func (mon *Monitor) Registers() {
	var line []string
	for name, value := range mon.emu.Cpu.Registers() {
		text := fmt.Sprintf("%s %v", name, word.Octal(value))
		if old, ok := mon.prev[name]; ok && old != value {
			if mon.Color {
				text = colorNew + text + ansi.Reset
			} else {
				text = "+" + text
			}
		} else if mon.Color {
			text = colorSame + text + ansi.Reset
		}
		line = append(line, text)
		if len(line) == 5 {
			fmt.Fprintln(mon.Out, strings.Join(line, "  "))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		fmt.Fprintln(mon.Out, strings.Join(line, "  "))
	}

	cpu := mon.emu.Cpu
	fmt.Fprintf(mon.Out, "T%02d %v pulses=%d\n", cpu.T, cpu.Subinstruction, cpu.Pulses)

	mon.snapshot()
}

func count(args []string, n int) (value int, err error) {
	value = 1
	if len(args) <= n {
		return
	}
	value, err = strconv.Atoi(args[n])
	if err != nil || value < 0 {
		err = ErrNumber(args[n])
	}
	return
}

// Exec runs a single command line.
func (mon *Monitor) Exec(line string) (quit bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}

	if mon.Verbose {
		log.Printf("monitor: %v", args)
	}

	switch args[0] {
	case "quit", "q":
		quit = true
	case "help", "?":
		fmt.Fprintln(mon.Out, HELP)
	case "step", "s":
		var n int
		n, err = count(args, 1)
		if err != nil {
			return
		}
		for range n {
			err = mon.emu.Tick()
			if err != nil {
				return
			}
		}
		mon.Registers()
	case "mct", "m":
		var n int
		n, err = count(args, 1)
		if err != nil {
			return
		}
		err = mon.emu.Step(n)
		if err != nil {
			return
		}
		mon.Registers()
	case "regs", "r":
		mon.Registers()
	case "mem":
		err = mon.memory(args[1:])
	case "chan":
		for channel, value := range mon.emu.Cpu.Channels.All() {
			fmt.Fprintf(mon.Out, "%03o: %v\n", channel, word.Octal(value))
		}
	case "dot":
		err = mon.dot(args[1:])
	default:
		err = ErrCommand(args[0])
	}

	return
}

func (mon *Monitor) memory(args []string) (err error) {
	if len(args) < 2 || len(args) > 3 {
		err = ErrArgs
		return
	}

	var mem []uint16
	switch args[0] {
	case "e":
		mem = mon.emu.Memory.Erasable
	case "f":
		mem = mon.emu.Memory.Fixed
	default:
		err = ErrArgs
		return
	}

	index, perr := strconv.ParseUint(args[1], 8, 32)
	if perr != nil {
		err = ErrNumber(args[1])
		return
	}

	n, err := count(args, 2)
	if err != nil {
		return
	}

	for i := int(index); i < int(index)+n && i < len(mem); i++ {
		loc := memory.Location{Erasable: args[0] == "e", Index: i}
		fmt.Fprintf(mon.Out, "%v: %v\n", loc, word.Octal(word.SignCompress(mem[i], false)))
	}

	return
}

func (mon *Monitor) dot(args []string) (err error) {
	if len(args) != 1 {
		err = ErrArgs
		return
	}

	out, err := os.Create(args[0])
	if err != nil {
		return
	}
	defer out.Close()

	pending := mon.emu.Cpu.Pending()
	if mon.emu.Cpu.Subinstruction == nil {
		memviz.Map(out, &pending)
	} else {
		memviz.Map(out, mon.emu.Cpu.Subinstruction, &pending)
	}

	return
}

// Run reads commands until quit or end of input.
func (mon *Monitor) Run() (err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "agc> ",
		InterruptPrompt: "\n",
	})
	if err != nil {
		return
	}
	defer rl.Close()

	mon.Out = rl.Stdout()
	mon.Registers()

	for {
		line, rerr := rl.Readline()
		if rerr == readline.ErrInterrupt {
			continue
		}
		if rerr != nil {
			return
		}

		quit, cerr := mon.Exec(line)
		if cerr != nil {
			fmt.Fprintln(mon.Out, cerr)
		}
		if quit {
			return
		}
		rl.SetPrompt(fmt.Sprintf("%v> ", word.Octal(mon.emu.Cpu.Z)))
	}
}
