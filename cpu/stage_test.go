package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ST2", NormalStage(2).String())
	assert.Equal("DV4", DivideSubstage(4).String())
	assert.False(NormalStage(3).Divide())
	assert.True(DivideSubstage(0).Divide())
	assert.Equal(uint8(7), DivideSubstage(7).Number())

	// Divide substages run 0, 1, 3, 7, 6, 4.
	order := []uint8{}
	stage := uint8(0)
	for range 6 {
		stage = divideNext[stage]
		order = append(order, stage)
	}
	assert.Equal([]uint8{1, 3, 7, 6, 4, 0}, order)
}
