package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/agc/memory"
	"github.com/ezrec/agc/word"
)

func FuzzCpu(f *testing.F) {
	for _, inst := range []uint16{0, 030000 | 04003, 050000 | REG_BRUPT, 070000 | 04003, 077777} {
		f.Add(inst, false, uint16(3))
		f.Add(inst, true, uint16(0x7ffe))
	}

	f.Fuzz(func(t *testing.T, inst uint16, extend bool, operand uint16) {
		assert := assert.New(t)

		inst &= word.MASK_1_15

		// 04000: [EXTEND], inst, then a TCF loop and an operand word.
		rope := []uint16{}
		if extend {
			rope = append(rope, PSEUDO_EXTEND)
		} else {
			rope = append(rope, 030000|04003) // CA 04003
		}
		rope = append(rope, word.SignExpand(inst), 010000|04002, word.SignExpand(operand&word.MASK_1_15))

		mem := memory.NewMemory()
		assert.NoError(mem.WriteFixedBlock(rope, memory.ADDR_FIXED_FIXED))

		cpu := NewCpu()
		cpu.Reset()
		cpu.Enqueue(GOJ1)

		for range 8 * TIME_LAST {
			err := cpu.Tick(mem)
			var addrErr *memory.ErrAddress
			if errors.As(err, &addrErr) {
				// Channel writes can select a superbank past the end of fixed memory.
				return
			}
			if !assert.NoError(err) {
				t.Log(cpu.String())
				return
			}
			assert.True(cpu.T >= 1 && cpu.T <= TIME_LAST)
			assert.Equal(uint16(0), cpu.Bus)
		}

		assert.Equal(uint64(8*TIME_LAST), cpu.Pulses)
		assert.Equal(uint16(0), cpu.EB&^memory.EB_MASK)
		assert.Equal(uint16(0), cpu.FB&^memory.FB_MASK)
	})
}
