// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/agc/emulator"
	"github.com/ezrec/agc/internal/statsview"
	"github.com/ezrec/agc/io"
	"github.com/ezrec/agc/memory"
	"github.com/ezrec/agc/monitor"
	"github.com/ezrec/agc/trace"
)

func parseInit(name string) (state memory.InitState) {
	for _, state = range []memory.InitState{memory.BITS_CLEAR, memory.BITS_SET, memory.RANDOM} {
		if state.String() == name {
			return
		}
	}

	log.Fatalf("%v: unknown memory init '%v'", os.Args[0], name)
	return
}

func compare(left, right string) {
	lf, err := os.Open(left)
	if err != nil {
		log.Fatalf("%v: %v", left, err)
	}
	defer lf.Close()

	rf, err := os.Open(right)
	if err != nil {
		log.Fatalf("%v: %v", right, err)
	}
	defer rf.Close()

	diff, err := trace.Compare(lf, rf)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	if diff != nil {
		fmt.Println(diff)
		os.Exit(1)
	}
}

func main() {
	var rope string
	var compile string
	var output string
	var coreIn string
	var coreOut string
	var script string
	var traceFile string
	var diff bool
	var pulses uint64
	var interactive bool
	var verbose bool
	var stats bool
	var initName string
	var seed uint64
	var input string

	flag.StringVar(&rope, "r", "", "rope image to run")
	flag.StringVar(&compile, "c", "", ".agc file to assemble and run")
	flag.StringVar(&output, "o", "", "write the assembled rope image, do not execute")
	flag.StringVar(&coreIn, "e", "", "directory of erasable banks to preload")
	flag.StringVar(&coreOut, "E", "", "directory to dump erasable banks at exit")
	flag.StringVar(&script, "x", "", ".star script to preset memory and channels")
	flag.StringVar(&traceFile, "t", "", "write a pulse trace")
	flag.BoolVar(&diff, "d", false, "compare two trace files and report the first difference")
	flag.Uint64Var(&pulses, "n", 0, "stop after n time pulses")
	flag.BoolVar(&interactive, "i", false, "interactive monitor")
	flag.BoolVar(&verbose, "v", false, "verbose mode")
	flag.BoolVar(&stats, "s", false, "launch the runtime stats server")
	flag.StringVar(&initName, "m", memory.BITS_CLEAR.String(), "power-on memory: clear, set or random")
	flag.Uint64Var(&seed, "seed", 0, "seed for random power-on memory")
	flag.StringVar(&input, "k", "", "keyboard input file of octal words")

	flag.Parse()

	if diff {
		if flag.NArg() != 2 {
			log.Fatalf("%v: -d needs two trace files", os.Args[0])
		}
		compare(flag.Arg(0), flag.Arg(1))
		return
	}

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(rope) == 0 && len(compile) == 0 {
		log.Fatalf("%v: one of -r or -c is required", os.Args[0])
	}

	if len(output) != 0 && len(compile) == 0 {
		log.Fatalf("%v: -o needs -c", os.Args[0])
	}

	if stats {
		statsview.Launch(os.Stderr)
	}

	opts := []emulator.Option{
		emulator.WithVerbose(verbose),
		emulator.WithMemoryInit(parseInit(initName), seed),
	}

	if len(traceFile) != 0 {
		ouf, err := os.Create(traceFile)
		if err != nil {
			log.Fatalf("%v: %v", traceFile, err)
		}
		defer ouf.Close()

		tw, err := trace.NewWriter(ouf, emulator.NewEmulator().Cpu)
		if err != nil {
			log.Fatalf("%v: %v", traceFile, err)
		}
		defer tw.Close()

		opts = append(opts, emulator.WithTrace(tw))
	}

	emu := emulator.NewEmulator(opts...)

	if len(rope) != 0 {
		inf, err := os.Open(rope)
		if err != nil {
			log.Fatalf("%v: %v", rope, err)
		}
		image := &io.Rope{}
		err = image.Unmarshal(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", rope, err)
		}
		err = emu.Load(image)
		if err != nil {
			log.Fatalf("%v: %v", rope, err)
		}
	}

	// Compile a new rope over any loaded image.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		err = emu.Assemble(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		err = emu.Program.Rope().Marshal(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	if len(coreIn) != 0 {
		core := &io.Core{}
		err := core.Unmarshal(os.DirFS(coreIn))
		if err != nil {
			log.Fatalf("%v: %v", coreIn, err)
		}
		err = core.Apply(emu.Memory)
		if err != nil {
			log.Fatalf("%v: %v", coreIn, err)
		}
	}

	emu.Display.Output = os.Stdout
	if len(input) != 0 {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Keyboard.Input = inf
	}

	emu.Reset()

	if len(script) != 0 {
		err := emu.LoadScript(script, nil)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	}

	if interactive {
		mon := monitor.NewMonitor(emu)
		mon.Verbose = verbose
		mon.Color = true
		err := mon.Run()
		if err != nil {
			log.Fatal(err)
		}
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := emu.Run(ctx, pulses)
		stop()
		if err != nil {
			log.Print(err)
		}
	}

	if len(coreOut) != 0 {
		core := &io.Core{}
		core.From(emu.Memory)
		err := os.MkdirAll(coreOut, 0o755)
		if err == nil {
			err = core.Marshal(io.DirFS(coreOut))
		}
		if err != nil {
			log.Fatalf("%v: %v", coreOut, err)
		}
	}
}
