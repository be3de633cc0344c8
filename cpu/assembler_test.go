package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("04000", asm.Equate["RESTART"])
	assert.Equal("05", asm.Equate["Z"])
	assert.Equal("017", asm.Equate["BRUPT"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssemblerBasic(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"LOOP:	CA 04002 ; comment",
		"	TCF LOOP",
		"	TS Q",
		"	INDEX 0100",
		"	XCH L",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Opcode{
		{1, 04000, []string{"CA", "04002"}, 034002, "", 12},
		{2, 04001, []string{"TCF", "LOOP"}, 014000, "LOOP", 12},
		{3, 04002, []string{"TS", "02"}, 054002, "", 10},
		{4, 04003, []string{"INDEX", "0100"}, 050100, "", 10},
		{5, 04004, []string{"XCH", "01"}, 056001, "", 10},
	}

	opEqual(t, expected, prog.Opcodes)
	assert.Equal(04000, asm.Label["LOOP"])
}

func TestAssemblerExtended(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"	EXTEND",
		"	MP 04002",
		"	EXTEND",
		"	INDEX 0100",
		"	DCA 04000",
		"	EXTEND",
		"	WRITE 010",
		"	EXTEND",
		"	BZMF 04000",
		"	EXTEND",
		"	SQUARE",
		"	INHINT",
		"	RELINT",
		"	RESUME",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	words := []uint16{}
	for _, op := range prog.Opcodes {
		words = append(words, op.Word)
	}

	assert.Equal([]uint16{
		000006, 074002,
		000006, 050100, 034000,
		000006, 001010,
		000006, 064000,
		000006, 070000,
		000004, 000003, 050017,
	}, words)
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"	.bank 2",
		"	DEC 5",
		"	DEC -5",
		"	DEC -0010",
		"	OCT 77777",
		"	.word 0x1234",
		"	.org 06000",
		"HERE:	ADRES HERE+1",
		"	CA $(HERE + 2)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	table := [](struct {
		index int
		word  uint16
	}){
		{04000, 000005},
		{04001, 077772},
		{04002, 077765},
		{04003, 077777},
		{04004, 011064},
		{06000, 006001},
		{06001, 036002},
	}

	for _, entry := range table {
		op := prog.Debug(entry.index)
		if !assert.NotNil(op, "%o", entry.index) {
			continue
		}
		assert.Equal(entry.word, op.Word, "%o", entry.index)
	}

	assert.Nil(prog.Debug(05000))

	rope := prog.Rope()
	assert.Equal(06002, len(rope.Data))
	assert.Equal(uint16(0xfffa), rope.Data[04001])
	assert.Equal(uint16(0x0005), rope.Data[04000])
	assert.Equal(uint16(0), rope.Data[05000])
}

func TestAssemblerBankedLabels(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		index int
		addr  uint16
	}){
		{04000, 04000},
		{07777, 07777},
		{0, 02000},
		{02001, 02001},
		{010005, 02005},
	}

	for _, entry := range table {
		assert.Equal(entry.addr, LabelAddress(entry.index), "%o", entry.index)
	}
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".macro DOUBLEADD addr",
		"	CA addr",
		"	AD addr",
		".endm",
		".equ COUNT 0100",
		"	DOUBLEADD COUNT",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(2, len(prog.Opcodes))
	assert.Equal(uint16(030100), prog.Opcodes[0].Word)
	assert.Equal(uint16(060100), prog.Opcodes[1].Word)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		err     error
	}){
		{[]string{"	MP 04000"}, ErrExtendMissing},
		{[]string{"	EXTEND", "	CA 04000"}, ErrExtendUnexpected},
		{[]string{"	EXTEND", "	RETURN"}, ErrExtendUnexpected},
		{[]string{"	CCS 04000"}, ErrOperandRange},
		{[]string{"	TCF 0100"}, ErrOperandRange},
		{[]string{"	CA 010000"}, ErrOperandRange},
		{[]string{"	FOO 1"}, ErrInstructionInvalid},
		{[]string{"	CA"}, ErrOpcodeValueMissing},
		{[]string{"	CA 1 2"}, ErrOpcodeExtraArgs},
		{[]string{"	TC NOWHERE"}, ErrLabelMissing("NOWHERE")},
		{[]string{"X:	CA 1", "X:	CA 2"}, ErrLabelDuplicate},
		{[]string{"ZERO:	CA 1"}, ErrLabelDuplicate},
		{[]string{".equ K 5", "K:	CA 1"}, ErrLabelDuplicate},
		{[]string{".equ A 5"}, ErrEquateDuplicate},
		{[]string{".equ A"}, ErrEquateSyntax},
		{[]string{".macro M", ".macro N"}, ErrMacroNesting},
		{[]string{".macro M"}, ErrMacroLonely},
		{[]string{".endm"}, ErrMacroLonelyEndm},
		{[]string{"	.org 04000", "	CA 1", "	.org 04000", "	CA 2"}, ErrLocationUsed},
		{[]string{"	.org 0xffff", "	CA 1"}, ErrLocationRange},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, "%v", entry.program)
	}
}
