//go:build !statsview

package statsview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStub(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	Launch(out)

	assert.False(Available())
	assert.Contains(out.String(), "-tags statsview")
}
