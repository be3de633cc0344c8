package cpu

import (
	"fmt"
	"strings"
)

// Pulses is the set of control pulses for one time pulse.
type Pulses []Pulse

func (ps Pulses) String() string {
	names := make([]string, len(ps))
	for n, pulse := range ps {
		names[n] = pulse.String()
	}
	return strings.Join(names, " ")
}

// Step is the pulses run at time pulse T. With more than one
// alternative, the branch register selects which runs.
type Step struct {
	T            int
	Alternatives []Pulses
}

// Select returns the alternative chosen by the branch register value.
func (step Step) Select(br uint8) Pulses {
	return step.Alternatives[int(br)&(len(step.Alternatives)-1)]
}

func (step Step) String() string {
	alts := make([]string, len(step.Alternatives))
	for n, alt := range step.Alternatives {
		alts[n] = alt.String()
	}
	return fmt.Sprintf("T%02d: %v", step.T, strings.Join(alts, " / "))
}

// Subinstruction is a named schedule of control pulses over one memory
// cycle.
type Subinstruction struct {
	Name  string
	Steps []Step
}

func (sub *Subinstruction) String() string {
	return sub.Name
}

// validate checks the time pulses are in order and in range, and that
// every step has 1, 2 or 4 alternatives.
func (sub *Subinstruction) validate() (err error) {
	last := 0
	for _, step := range sub.Steps {
		if step.T < 1 || step.T > 12 || step.T <= last {
			err = &ErrTableDefect{Name: sub.Name, T: step.T, Err: ErrTimePulse}
			return
		}
		last = step.T
		switch len(step.Alternatives) {
		case 1, 2, 4:
		default:
			err = &ErrTableDefect{Name: sub.Name, T: step.T, Err: ErrBranchWidth}
			return
		}
	}
	return
}

// at builds a step from its alternatives.
func at(t int, alts ...Pulses) Step {
	return Step{T: t, Alternatives: alts}
}

// on builds a pulse list.
func on(pulses ...Pulse) Pulses {
	return Pulses(pulses)
}

// none is an empty alternative.
var none = Pulses{}

// sequence declares a subinstruction.
func sequence(name string, steps ...Step) *Subinstruction {
	return &Subinstruction{Name: name, Steps: steps}
}

// Enqueue schedules a subinstruction's steps for the next memory cycle.
func (cpu *Cpu) Enqueue(sub *Subinstruction) {
	cpu.Subinstruction = sub
	cpu.queue = append(cpu.queue, sub.Steps...)
}

// Pending returns the steps not yet dispatched.
func (cpu *Cpu) Pending() []Step {
	return cpu.queue
}

// dispatch runs every queued step scheduled for the current time pulse.
func (cpu *Cpu) dispatch() (err error) {
	for len(cpu.queue) > 0 && cpu.queue[0].T == cpu.T {
		step := cpu.queue[0]
		cpu.queue = cpu.queue[1:]

		switch len(step.Alternatives) {
		case 1, 2, 4:
		default:
			panic(&ErrTableDefect{Name: cpu.Subinstruction.String(), T: step.T, Err: ErrBranchWidth})
		}

		for _, pulse := range step.Select(cpu.BR()) {
			err = cpu.Execute(pulse)
			if err != nil {
				return
			}
		}
	}
	return
}
