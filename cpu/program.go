package cpu

import (
	"iter"

	"github.com/ezrec/agc/io"
	"github.com/ezrec/agc/word"
)

// Program is an assembled rope image.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode assembled at a physical fixed index, or nil.
func (prog *Program) Debug(index int) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Index == index {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Words iterates over the assembled words in memory format, by physical
// fixed index.
func (prog *Program) Words() iter.Seq2[int, uint16] {
	return func(yield func(index int, value uint16) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Index, word.SignExpand(op.Word)) {
				return
			}
		}
	}
}

// Binary returns the rope image, up to the highest assembled word.
func (prog *Program) Binary() (bins []uint16) {
	for index, value := range prog.Words() {
		if index >= len(bins) {
			bins = append(bins, make([]uint16, index+1-len(bins))...)
		}
		bins[index] = value
	}

	return
}

// Rope returns the rope image.
func (prog *Program) Rope() (rope *io.Rope) {
	rope = &io.Rope{Data: prog.Binary()}
	return
}
