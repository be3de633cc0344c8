package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/agc/memory"
)

// machine assembles a program into a fresh memory, and resets a
// processor to start it.
func machine(t *testing.T, source ...string) (cpu *Cpu, mem *memory.Memory, prog *Program) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	mem = memory.NewMemory()
	err = prog.Rope().Load(mem)
	if err != nil {
		t.Fatal(err)
	}

	cpu = NewCpu()
	cpu.Reset()
	cpu.Enqueue(GOJ1)

	return
}

// cycles runs whole memory cycles.
func cycles(t *testing.T, cpu *Cpu, mem *memory.Memory, count int) {
	for range count * TIME_LAST {
		err := cpu.Tick(mem)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.A = 5
	cpu.T = 7
	cpu.Extend = true
	cpu.Pulses = 99
	cpu.Channels.Write(010, 3)
	cpu.Reset()

	assert.Equal(uint16(0), cpu.A)
	assert.Equal(1, cpu.T)
	assert.False(cpu.Extend)
	assert.Equal(uint64(0), cpu.Pulses)
	assert.Empty(cpu.Pending())
	assert.NotNil(cpu.Table)
	_, ok := cpu.Channels.Peek(010)
	assert.False(ok)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.A = 012345
	text := cpu.String()
	assert.Contains(text, "    A: 12345\n")
	assert.Contains(text, "  mct: T01")

	names := []string{}
	for name := range cpu.Registers() {
		names = append(names, name)
	}
	assert.Equal("A", names[0])
	assert.Contains(names, "BB")

	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal("0", defines["A"])
	assert.Equal("017", defines["BRUPT"])
}

func TestCpuRestart(t *testing.T) {
	assert := assert.New(t)

	// 04000: CA 04002, 04001: TCF 04001, 04002: 5
	mem := memory.NewMemory()
	err := mem.WriteFixedBlock([]uint16{0x3802, 0x1801, 5}, 04000)
	assert.NoError(err)
	erasable := append([]uint16{}, mem.Erasable...)

	cpu := NewCpu()
	cpu.Reset()
	cpu.Enqueue(GOJ1)
	cycles(t, cpu, mem, 4)

	assert.Equal(uint16(5), cpu.A)
	assert.Equal(uint16(0x802), cpu.Z)
	assert.Equal(erasable, mem.Erasable)
	assert.Equal(uint64(48), cpu.Pulses)
}

func TestCpuBasic(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	CA K5",
		"	AD K3",
		"	TS 0100",
		"	CS K3",
		"	TS 0101",
		"	CA K17",
		"	MASK K25",
		"DONE:	TCF DONE",
		"K3:	DEC 3",
		"K5:	DEC 5",
		"K17:	OCT 17",
		"K25:	OCT 25",
	)
	cycles(t, cpu, mem, 20)

	assert.Equal(uint16(8), mem.Erasable[0100])
	assert.Equal(uint16(0xfffc), mem.Erasable[0101])
	assert.Equal(uint16(05), cpu.A)
}

func TestCpuExchange(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	CA K3",
		"	XCH 0100",
		"	TS 0101",
		"	INCR 0102",
		"	CA K3",
		"	ADS 0103",
		"	LXCH 0104",
		"DONE:	TCF DONE",
		"K3:	DEC 3",
	)
	mem.Erasable[0100] = 7
	mem.Erasable[0102] = 0xfffa
	mem.Erasable[0103] = 10
	mem.Erasable[0104] = 11
	cycles(t, cpu, mem, 20)

	assert.Equal(uint16(3), mem.Erasable[0100])
	assert.Equal(uint16(7), mem.Erasable[0101])
	assert.Equal(uint16(0xfffb), mem.Erasable[0102])
	assert.Equal(uint16(13), mem.Erasable[0103])
	assert.Equal(uint16(13), cpu.A)
	assert.Equal(uint16(11), cpu.L)
	assert.Equal(uint16(0), mem.Erasable[0104])
}

func TestCpuCCS(t *testing.T) {
	table := [](struct {
		value  uint16
		a      uint16
		marker uint16
	}){
		{5, 4, 1},
		{0, 0, 2},
		{0xfffa, 4, 3},
		{0xffff, 0, 4},
	}

	for _, entry := range table {
		assert := assert.New(t)

		cpu, mem, _ := machine(t,
			"	CCS 0100",
			"	TCF POS",
			"	TCF PZ",
			"	TCF NEG",
			"	TCF MZ",
			"POS:	TS 0102",
			"	CA K1",
			"	TCF STORE",
			"PZ:	TS 0102",
			"	CA K2",
			"	TCF STORE",
			"NEG:	TS 0102",
			"	CA K3",
			"	TCF STORE",
			"MZ:	TS 0102",
			"	CA K4",
			"STORE:	TS 0101",
			"DONE:	TCF DONE",
			"K1:	DEC 1",
			"K2:	DEC 2",
			"K3:	DEC 3",
			"K4:	DEC 4",
		)
		mem.Erasable[0100] = entry.value
		cycles(t, cpu, mem, 20)

		assert.Equal(entry.value, mem.Erasable[0100], "%o", entry.value)
		assert.Equal(entry.marker, mem.Erasable[0101], "%o", entry.value)
		assert.Equal(entry.a, mem.Erasable[0102], "%o", entry.value)
	}
}

func TestCpuSubroutine(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	TC SUB",
		"	TS 0100",
		"DONE:	TCF DONE",
		"SUB:	CA K5",
		"	RETURN",
		"K5:	DEC 5",
	)
	cycles(t, cpu, mem, 20)

	assert.Equal(uint16(5), mem.Erasable[0100])
}

func TestCpuTS(t *testing.T) {
	assert := assert.New(t)

	// Positive overflow skips the next instruction, and leaves +1 in A.
	cpu, mem, _ := machine(t,
		"	CA KBIG",
		"	AD KBIG",
		"	TS 0100",
		"	CA K5",
		"DONE:	TCF DONE",
		"KBIG:	OCT 30000",
		"K5:	DEC 5",
	)
	cycles(t, cpu, mem, 20)

	assert.Equal(uint16(1), cpu.A)
	assert.Equal(uint16(0x2000), mem.Erasable[0100]&0x3fff)
}

func TestCpuIndex(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	INDEX 0100",
		"	CA TABLE",
		"DONE:	TCF DONE",
		"TABLE:	DEC 5",
		"	DEC 7",
	)
	mem.Erasable[0100] = 1
	cycles(t, cpu, mem, 20)

	assert.Equal(uint16(7), cpu.A)
	assert.Equal(uint16(1), mem.Erasable[0100])
}

func TestCpuDouble(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	EXTEND",
		"	DCA PAIR",
		"	DAS 0100",
		"	EXTEND",
		"	DCS PAIR",
		"	DXCH 0102",
		"DONE:	TCF DONE",
		"PAIR:	DEC 1",
		"	DEC 2",
	)
	mem.Erasable[0100] = 3
	mem.Erasable[0101] = 4
	mem.Erasable[0102] = 10
	mem.Erasable[0103] = 11
	cycles(t, cpu, mem, 30)

	assert.Equal(uint16(4), mem.Erasable[0100])
	assert.Equal(uint16(6), mem.Erasable[0101])
	assert.Equal(uint16(0xfffe), mem.Erasable[0102])
	assert.Equal(uint16(0xfffd), mem.Erasable[0103])
	assert.Equal(uint16(10), cpu.A)
	assert.Equal(uint16(11), cpu.L)
}

func TestCpuExtendedArithmetic(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	CA K8",
		"	EXTEND",
		"	SU 0111",
		"	TS 0100",
		"	EXTEND",
		"	MSU 0101",
		"	TS 0102",
		"	EXTEND",
		"	AUG 0103",
		"	EXTEND",
		"	AUG 0104",
		"	EXTEND",
		"	DIM 0105",
		"	EXTEND",
		"	DIM 0106",
		"	EXTEND",
		"	DIM 0107",
		"	CA K3",
		"	EXTEND",
		"	QXCH 0110",
		"DONE:	TCF DONE",
		"K3:	DEC 3",
		"K8:	DEC 8",
	)
	mem.Erasable[0101] = 3
	mem.Erasable[0103] = 5
	mem.Erasable[0104] = 0xfffa
	mem.Erasable[0105] = 5
	mem.Erasable[0106] = 0xfffa
	mem.Erasable[0107] = 0
	mem.Erasable[0110] = 012
	mem.Erasable[0111] = 3
	cycles(t, cpu, mem, 60)

	assert.Equal(uint16(5), mem.Erasable[0100])
	assert.Equal(uint16(0xfffd), mem.Erasable[0102])
	assert.Equal(uint16(6), mem.Erasable[0103])
	assert.Equal(uint16(0xfff9), mem.Erasable[0104])
	assert.Equal(uint16(4), mem.Erasable[0105])
	assert.Equal(uint16(0xfffb), mem.Erasable[0106])
	assert.Equal(uint16(0), mem.Erasable[0107])
	assert.Equal(uint16(012), cpu.Q)
}

func TestCpuBranchZero(t *testing.T) {
	table := [](struct {
		op    string
		value string
		a     uint16
	}){
		{"BZF", "K0", 3},
		{"BZF", "K5", 5},
		{"BZF", "KM5", 5},
		{"BZMF", "K0", 3},
		{"BZMF", "KM5", 3},
		{"BZMF", "K5", 5},
	}

	for _, entry := range table {
		assert := assert.New(t)

		cpu, mem, _ := machine(t,
			"	CA "+entry.value,
			"	EXTEND",
			"	"+entry.op+" TAKEN",
			"	CA K5",
			"	TCF DONE",
			"TAKEN:	CA K3",
			"DONE:	TCF DONE",
			"K0:	DEC 0",
			"K3:	DEC 3",
			"K5:	DEC 5",
			"KM5:	DEC -5",
		)
		cycles(t, cpu, mem, 20)

		assert.Equal(entry.a, cpu.A, "%v %v", entry.op, entry.value)
	}
}

func TestCpuMultiply(t *testing.T) {
	table := [](struct {
		a, b string // 15-bit octal operands.
		hi   uint16
		lo   uint16
	}){
		{"3", "5", 0, 15},
		{"3", "3", 0, 9},
		{"77774", "5", 0xffff, 0xfff0},
		{"1", "30000", 0, 030000},
		{"30000", "1", 0, 030000},
		{"3", "30000", 02, 010000},
		{"20000", "20000", 010000, 0},
		{"30000", "30000", 022000, 0},
		{"12345", "30001", 07654, 02345},
		{"37777", "37777", 037776, 1},
		{"40000", "37777", 0140001, 0177776},
	}

	for _, entry := range table {
		assert := assert.New(t)

		cpu, mem, _ := machine(t,
			"	CA KA",
			"	EXTEND",
			"	MP KB",
			"DONE:	TCF DONE",
			"KA:	OCT "+entry.a,
			"KB:	OCT "+entry.b,
		)
		cycles(t, cpu, mem, 20)

		assert.Equal(entry.hi, cpu.A, "%v * %v", entry.a, entry.b)
		assert.Equal(entry.lo, cpu.L, "%v * %v", entry.a, entry.b)
		assert.False(cpu.NoEAC)
	}
}

func TestCpuDivide(t *testing.T) {
	table := [](struct {
		hi, lo  string // 15-bit octal dividend.
		divisor uint16 // Erasable divisor, memory format.
		a, l    uint16
	}){
		{"0", "144", 7, 14, 2},
		{"1", "0", 3, 012525, 1},
		{"77777", "77633", 7, 0177761, 0177775},
	}

	for _, entry := range table {
		assert := assert.New(t)

		cpu, mem, _ := machine(t,
			"	EXTEND",
			"	DCA DIVD",
			"	EXTEND",
			"	DV 0100",
			"DONE:	TCF DONE",
			"DIVD:	OCT "+entry.hi,
			"	OCT "+entry.lo,
		)
		mem.Erasable[0100] = entry.divisor
		cycles(t, cpu, mem, 30)

		assert.Equal(entry.a, cpu.A, "%v:%v / %o", entry.hi, entry.lo, entry.divisor)
		assert.Equal(entry.l, cpu.L, "%v:%v / %o", entry.hi, entry.lo, entry.divisor)
		assert.Equal(entry.divisor, mem.Erasable[0100])
		assert.Equal(uint8(0), cpu.DVStage)
	}
}

func TestCpuChannels(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	CA K17",
		"	EXTEND",
		"	WRITE 010",
		"	CA K25",
		"	EXTEND",
		"	RAND 010",
		"	TS 0100",
		"	CA K25",
		"	EXTEND",
		"	ROR 010",
		"	TS 0101",
		"	CA K25",
		"	EXTEND",
		"	RXOR 010",
		"	TS 0102",
		"	CA K25",
		"	EXTEND",
		"	WOR 011",
		"	CA K5",
		"	EXTEND",
		"	WRITE 1",
		"	CA K3",
		"	EXTEND",
		"	READ 1",
		"DONE:	TCF DONE",
		"K3:	DEC 3",
		"K5:	DEC 5",
		"K17:	OCT 17",
		"K25:	OCT 25",
	)
	cycles(t, cpu, mem, 80)

	value, ok := cpu.Channels.Peek(010)
	assert.True(ok)
	assert.Equal(uint16(017), value)
	assert.Equal(uint16(05), mem.Erasable[0100])
	assert.Equal(uint16(037), mem.Erasable[0101])
	assert.Equal(uint16(032), mem.Erasable[0102])
	value, _ = cpu.Channels.Peek(011)
	assert.Equal(uint16(025), value)
	assert.Equal(uint16(5), cpu.L)
	assert.Equal(uint16(5), cpu.A)
}

func TestCpuInterruptPseudo(t *testing.T) {
	assert := assert.New(t)

	cpu, mem, _ := machine(t,
		"	INHINT",
		"	CA K5",
		"	TS 0100",
		"DONE:	TCF DONE",
		"K5:	DEC 5",
	)
	cycles(t, cpu, mem, 20)

	assert.True(cpu.Inhint)
	assert.Equal(uint16(5), mem.Erasable[0100])
}
