// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives the processor core: it owns memory, paces
// time pulses against the wall clock, and runs the scaler.
package emulator

import (
	"context"
	"fmt"
	stdio "io"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/agc/cpu"
	"github.com/ezrec/agc/internal"
	"github.com/ezrec/agc/io"
	"github.com/ezrec/agc/memory"
	"github.com/ezrec/agc/trace"
)

const (
	PULSE_RATE     = 1024000       // Time pulses per second.
	PULSE_INTERVAL = time.Second   // Wall clock interval for one batch.
	SCALER_DIVIDE  = 10            // Time pulses per scaler count.
	MCT_PULSES     = cpu.TIME_LAST // Time pulses per memory cycle.
	CONTEXT_CHECK  = 1024          // Pulses between cancellation checks.
)

var _emulator_defines = map[string]string{
	"PULSE_RATE":    fmt.Sprintf("%v", PULSE_RATE),
	"SCALER_DIVIDE": fmt.Sprintf("%v", SCALER_DIVIDE),
}

// Option configures an Emulator.
type Option func(*Emulator)

// WithVerbose enables verbose logging for the emulator and processor.
func WithVerbose(verbose bool) Option {
	return func(emu *Emulator) {
		emu.Verbose = verbose
	}
}

// WithMemoryInit selects the power-on content of memory.
func WithMemoryInit(state memory.InitState, seed uint64) Option {
	return func(emu *Emulator) {
		emu.initState = state
		emu.initSeed = seed
	}
}

// WithTrace records every time pulse to a trace writer.
func WithTrace(tw *trace.Writer) Option {
	return func(emu *Emulator) {
		emu.Trace = tw
	}
}

// WithRate sets the target time pulses per second. Zero runs unpaced.
func WithRate(rate int) Option {
	return func(emu *Emulator) {
		emu.Rate = rate
	}
}

// Emulator state. CPU + memory + IO channels.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Memory   *memory.Memory // Erasable and fixed memory.
	Program  *cpu.Program   // Listing of the assembled program, if any.

	Display  io.Tape // DSKY relay output, channel 10.
	Keyboard io.Tape // DSKY main keyboard input, channel 15.
	Scaler   Scaler  // Timing scaler.

	Trace *trace.Writer // Per-pulse trace, if set.
	Rate  int           // Target time pulses per second.

	initState memory.InitState
	initSeed  uint64
}

// NewEmulator creates a new emulator.
func NewEmulator(opts ...Option) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Memory:  memory.NewMemory(),
		Program: &cpu.Program{},
		Rate:    PULSE_RATE,
	}

	for _, opt := range opts {
		opt(emu)
	}

	emu.Memory.Init(emu.initState, emu.initSeed)

	emu.Cpu.Channels.Attach(io.CHANNEL_OUT0, &emu.Display)
	emu.Cpu.Channels.Attach(io.CHANNEL_MNKEYIN, &emu.Keyboard)

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Memory.Defines(),
		emu.Cpu.Channels.Defines(),
	)
}

// Assemble a program with the emulator defines, and load it into fixed
// memory.
func (emu *Emulator) Assemble(input stdio.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	err = emu.Load(prog.Rope())
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Load a rope image into fixed memory.
func (emu *Emulator) Load(rope *io.Rope) (err error) {
	return rope.Load(emu.Memory)
}

// Reset the processor and queue the restart sequence. Memory is kept.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Scaler.Reset()
	emu.Cpu.Enqueue(cpu.GOJ1)
}

// Pulses returns the total time pulses since a reset.
func (emu *Emulator) Pulses() uint64 {
	return emu.Cpu.Pulses
}

// LineNo returns the source line of the instruction at Z, or 0.
func (emu *Emulator) LineNo() int {
	loc := memory.Resolve(emu.Cpu.Z, emu.Cpu.Banks())
	if loc.Erasable {
		return 0
	}

	op := emu.Program.Debug(loc.Index)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single time pulse.
func (emu *Emulator) Tick() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	z := emu.Cpu.Z
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pulse: emu.Cpu.Pulses, Z: z, Err: err}
		}
	}()

	err = emu.Cpu.Tick(emu.Memory)
	if err != nil {
		return
	}

	if emu.Cpu.Pulses%SCALER_DIVIDE == 0 {
		err = emu.Scaler.Tick(&emu.Cpu.Channels)
		if err != nil {
			return
		}
	}

	if emu.Trace != nil {
		err = emu.Trace.Record(emu.Cpu)
		if err != nil {
			return
		}
	}

	return
}

// Step runs whole memory cycles.
func (emu *Emulator) Step(mcts int) (err error) {
	for range mcts * MCT_PULSES {
		err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Run ticks until the context is done, limit time pulses have run (when
// limit is non-zero), or a tick fails. Ticks are batched into intervals
// of Rate pulses, and each batch sleeps out the rest of its interval.
func (emu *Emulator) Run(ctx context.Context, limit uint64) (err error) {
	batch := emu.Rate
	if batch <= 0 {
		batch = PULSE_RATE
	}

	for {
		start := time.Now()
		for n := range batch {
			if limit != 0 && emu.Cpu.Pulses >= limit {
				return
			}
			if n%CONTEXT_CHECK == 0 && ctx.Err() != nil {
				return
			}

			err = emu.Tick()
			if err != nil {
				return
			}
		}

		if emu.Rate <= 0 {
			continue
		}

		elapsed := time.Since(start)
		if emu.Verbose {
			ratio := float64(PULSE_INTERVAL) / float64(max(elapsed, time.Microsecond))
			log.Printf("emulator: %d pulses in %v, %.2fx real time", batch, elapsed, ratio)
		}

		remaining := PULSE_INTERVAL - elapsed
		if remaining > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(remaining):
			}
		}
	}
}
