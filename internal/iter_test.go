package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"A": "0", "L": "01"}
	b := map[string]string{"CHAN_OUT0": "010"}

	merged := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{"A": "0", "L": "01", "CHAN_OUT0": "010"}, merged)

	var keys []string
	for key := range IterSeq2Concat(maps.All(a), maps.All(b)) {
		keys = append(keys, key)
		break
	}
	assert.Len(keys, 1)

	seq := IterSeq2Concat(slices.All([]int{1, 2}), slices.All([]int{3}))
	var values []int
	for _, value := range seq {
		values = append(values, value)
	}
	assert.Equal([]int{1, 2, 3}, values)
}
