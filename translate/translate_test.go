package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	Use()

	table := [](struct {
		key    string
		args   []any
		expect string
	}){
		{"plain", nil, "plain"},
		{"bank %o", []any{017}, "bank 17"},
		{"word %05o at %04o", []any{0x3802, 0x800}, "word 34002 at 4000"},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, From(entry.key, entry.args...), entry.key)
	}
}
