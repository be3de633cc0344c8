package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/agc/io"
	"github.com/ezrec/agc/memory"
	"github.com/ezrec/agc/word"
)

// Time pulses of a memory cycle.
const (
	TIME_READ      = 4  // Memory read.
	TIME_WRITEBACK = 9  // Erasable write back.
	TIME_LAST      = 12 // Next subinstruction decode.
)

var _cpu_defines = map[string]string{
	"A":      fmt.Sprintf("%#o", REG_A),
	"L":      fmt.Sprintf("%#o", REG_L),
	"Q":      fmt.Sprintf("%#o", REG_Q),
	"EB":     fmt.Sprintf("%#o", REG_EB),
	"FB":     fmt.Sprintf("%#o", REG_FB),
	"Z":      fmt.Sprintf("%#o", REG_Z),
	"BB":     fmt.Sprintf("%#o", REG_BB),
	"ZERO":   fmt.Sprintf("%#o", REG_ZERO),
	"ARUPT":  "010",
	"LRUPT":  "011",
	"QRUPT":  "012",
	"ZRUPT":  fmt.Sprintf("%#o", REG_ZRUPT),
	"BBRUPT": "016",
	"BRUPT":  fmt.Sprintf("%#o", REG_BRUPT),
	"CYR":    fmt.Sprintf("%#o", REG_CYR),
	"SR":     fmt.Sprintf("%#o", REG_SR),
	"CYL":    fmt.Sprintf("%#o", REG_CYL),
	"EDOP":   fmt.Sprintf("%#o", REG_EDOP),
}

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A  uint16 // Accumulator.
	B  uint16 // Buffer.
	G  uint16 // Memory data.
	L  uint16 // Low order accumulator.
	Q  uint16 // Return address.
	Z  uint16 // Program counter.
	EB uint16 // Erasable bank, bits 9-11 only.
	FB uint16 // Fixed bank, bits 11-15 only.
	S  uint16 // Memory address.
	SQ uint8  // Opcode register.

	ST     uint8 // Instruction stage.
	STNext uint8 // Stage for the next memory cycle.
	BR1    bool  // Branch flip-flop 1.
	BR2    bool  // Branch flip-flop 2.

	X     uint16 // Adder operand.
	Y     uint16 // Adder operand.
	Carry bool   // Adder explicit carry.
	Bus   uint16 // Write bus, cleared every time pulse.

	NextInstruction   bool  // Load SQ at the end of this memory cycle.
	InhibitInterrupts bool  // Interrupts held off until the next NISQ.
	Inhint            bool  // Interrupts inhibited by program.
	NoEAC             bool  // End-around carry inhibited.
	MCRO              bool  // Multiply carry, cleared every time pulse.
	Extend            bool  // Current instruction is extended.
	ExtendNext        bool  // Next instruction is extended.
	DVSequence        bool  // Decode the next memory cycle as a divide substage.
	DVStage           uint8 // Divide substage.
	PIFL              bool  // Multiply product sign flag.

	STemp      memory.Location // Erasable location awaiting write back.
	STempValid bool            // Set when STemp is pending.

	T      int    // Time pulse, 1 through 12.
	Pulses uint64 // Time pulses since reset.

	Channels io.Channels // I/O channels.

	Table          *Table          // Decode table.
	Subinstruction *Subinstruction // Most recently queued subinstruction.

	queue []Step

	dvNegQuotient  bool
	dvNegRemainder bool
}

// NewCpu creates a new processor using the Block II decode table.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Table: DefaultTable(),
		T:     1,
	}

	return
}

// Defines for the central and special register addresses.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// BR is the packed branch register, BR1 in bit 2 and BR2 in bit 1.
func (cpu *Cpu) BR() (br uint8) {
	if cpu.BR1 {
		br |= 2
	}
	if cpu.BR2 {
		br |= 1
	}
	return
}

// BB is the both-banks view of FB and EB.
func (cpu *Cpu) BB() uint16 {
	return cpu.FB | (cpu.EB >> 8)
}

// SetBB sets both FB and EB from a both-banks value.
func (cpu *Cpu) SetBB(value uint16) {
	cpu.FB = value & memory.FB_MASK
	cpu.EB = (value & 07) << 8
}

// Banks returns the bank state for address translation.
func (cpu *Cpu) Banks() memory.Banks {
	return memory.Banks{
		EB:        cpu.EB,
		FB:        cpu.FB,
		Superbank: cpu.Channels.Superbank(),
	}
}

// Registers iterates over the visible registers, in display order.
func (cpu *Cpu) Registers() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		regs := []struct {
			name  string
			value uint16
		}{
			{"A", cpu.A},
			{"L", cpu.L},
			{"Q", cpu.Q},
			{"EB", cpu.EB},
			{"FB", cpu.FB},
			{"Z", cpu.Z},
			{"BB", cpu.BB()},
			{"G", cpu.G},
			{"B", cpu.B},
			{"S", cpu.S},
			{"X", cpu.X},
			{"Y", cpu.Y},
			{"SQ", uint16(cpu.SQ)},
			{"ST", uint16(cpu.ST)},
			{"BR", uint16(cpu.BR())},
		}
		for _, reg := range regs {
			if !yield(reg.name, reg.value) {
				return
			}
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for name, value := range cpu.Registers() {
		text += fmt.Sprintf("% 5s: %v\n", name, word.Octal(value))
	}

	flags := ""
	for _, flag := range []struct {
		name string
		set  bool
	}{
		{"EXT", cpu.Extend},
		{"INH", cpu.Inhint},
		{"NEAC", cpu.NoEAC},
		{"DV", cpu.DVSequence},
	} {
		if flag.set {
			flags += " " + flag.name
		}
	}
	text += fmt.Sprintf("% 5s: T%02d %v%v\n", "mct", cpu.T, cpu.Subinstruction, flags)

	return
}

// Reset the CPU state.
// - Clears every register and latch.
// - Drops any queued control pulses.
// - Zeros the time pulse counter.
// - Resets all IO channels.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	table := cpu.Table
	if table == nil {
		table = DefaultTable()
	}
	channels := cpu.Channels
	verbose := cpu.Verbose

	*cpu = Cpu{
		Verbose:  verbose,
		Table:    table,
		Channels: channels,
		T:        1,
	}
	cpu.Channels.Reset()
}

// Tick advances the processor by one time pulse.
func (cpu *Cpu) Tick(mem *memory.Memory) (err error) {
	cpu.MCRO = false

	if cpu.T == 1 && cpu.ST == 0 {
		cpu.NextInstruction = false
		cpu.ExtendNext = false
	}

	switch cpu.T {
	case 2, 5, 8, 11:
		cpu.PIFL = false
	}

	err = cpu.dispatch()
	if err != nil {
		return
	}

	switch cpu.T {
	case TIME_READ:
		err = cpu.memoryRead(mem)
		if err != nil {
			return
		}
	case TIME_WRITEBACK:
		if cpu.STempValid {
			err = mem.WriteBack(cpu.STemp, cpu.G)
			cpu.STempValid = false
			if err != nil {
				return
			}
		}
	case TIME_LAST:
		cpu.decode()
	}

	cpu.Bus = 0
	cpu.T++
	if cpu.T > TIME_LAST {
		cpu.T = 1
	}
	cpu.Pulses++

	return
}

// memoryRead loads G from the address in S. Central registers are not
// memory, and erasable reads are remembered for write back.
func (cpu *Cpu) memoryRead(mem *memory.Memory) (err error) {
	cpu.STempValid = false

	switch {
	case cpu.S < memory.ADDR_CENTRAL_END:
		return
	case cpu.S < memory.ADDR_FIXED_BANKED:
		var loc memory.Location
		cpu.G, loc, err = mem.Read(cpu.S, cpu.Banks())
		if err != nil {
			return
		}
		cpu.STemp = loc
		cpu.STempValid = true
	default:
		cpu.G, _, err = mem.Read(cpu.S, cpu.Banks())
		if err != nil {
			return
		}
	}

	cpu.G = word.SignCompress(cpu.G, false)
	return
}

// decode commits the stage and queues the next subinstruction.
func (cpu *Cpu) decode() {
	if len(cpu.queue) != 0 {
		panic(&ErrTableDefect{Name: cpu.Subinstruction.String(), T: cpu.queue[0].T, Err: ErrQueueLeftover})
	}

	cpu.ST = cpu.STNext
	cpu.STNext = 0

	if cpu.NextInstruction {
		cpu.SQ = uint8(((cpu.B >> 10) & 0x20) | ((cpu.B >> 9) & 0x1f))
		cpu.Extend = cpu.ExtendNext
	}

	stage := NormalStage(cpu.ST)
	if cpu.DVSequence {
		stage = DivideSubstage(cpu.DVStage)
	}

	sub, ok := cpu.Table.Lookup(stage, cpu.Extend, cpu.SQ)
	if !ok {
		log.Printf("cpu: no subinstruction for B=%v %v extend=%v Z=%v", word.Octal(cpu.B), stage, cpu.Extend, word.Octal(cpu.Z))
	}

	if cpu.Verbose {
		log.Printf("cpu: %v: %v (SQ=%02o %v)", word.Octal(cpu.Z), sub, cpu.SQ, stage)
	}

	cpu.Enqueue(sub)
	cpu.DVSequence = false
}
