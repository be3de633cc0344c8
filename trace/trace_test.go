package trace

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/agc/cpu"
	"github.com/ezrec/agc/memory"
)

func record(t *testing.T, pulses int, poke func(c *cpu.Cpu, pulse int)) *bytes.Buffer {
	assert := assert.New(t)

	c := cpu.NewCpu()
	mem := memory.NewMemory()
	c.Reset()
	c.Enqueue(cpu.GOJ1)

	buff := &bytes.Buffer{}
	tw, err := NewWriter(buff, c)
	assert.NoError(err)

	for n := range pulses {
		assert.NoError(c.Tick(mem))
		if poke != nil {
			poke(c, n)
		}
		assert.NoError(tw.Record(c))
	}
	assert.NoError(tw.Close())

	return buff
}

func TestHeader(t *testing.T) {
	assert := assert.New(t)

	buff := record(t, 0, nil)

	tr, err := NewReader(buff)
	assert.NoError(err)
	assert.Equal(TRACE_MAGIC, tr.Header.Magic)
	assert.Equal(uint32(TRACE_VERSION), tr.Header.Version)

	var names []string
	for name := range cpu.NewCpu().Registers() {
		names = append(names, name)
	}
	assert.Equal(names, tr.Header.Registers())

	_, err = tr.Next()
	assert.ErrorIs(err, io.EOF)
}

func TestHeaderInvalid(t *testing.T) {
	assert := assert.New(t)

	buff := record(t, 1, nil)
	data := buff.Bytes()
	data[0] = 'X'

	_, err := NewReader(bytes.NewReader(data))
	assert.ErrorIs(err, ErrMagic)

	_, err = NewReader(bytes.NewReader(nil))
	assert.ErrorIs(err, ErrHeader)
}

func TestFrames(t *testing.T) {
	assert := assert.New(t)

	buff := record(t, 24, nil)

	tr, err := NewReader(buff)
	assert.NoError(err)

	count := 0
	for {
		frame, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		assert.NoError(err)
		count++
		assert.Equal(uint64(count), frame.Pulse)
		assert.Equal(uint8((count%12)+1), frame.T)
		assert.Len(frame.Values, len(tr.Header.Registers()))
	}
	assert.Equal(24, count)
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	same := func(c *cpu.Cpu, pulse int) {}
	poked := func(c *cpu.Cpu, pulse int) {
		if pulse == 5 {
			c.L = 0123
		}
	}

	diff, err := Compare(record(t, 12, same), record(t, 12, same))
	assert.NoError(err)
	assert.Nil(diff)

	diff, err = Compare(record(t, 12, same), record(t, 12, poked))
	assert.NoError(err)
	if assert.NotNil(diff) {
		assert.Equal(5, diff.Frame)
		assert.Equal("L", diff.Register)
		assert.Equal(uint16(0), diff.Left)
		assert.Equal(uint16(0123), diff.Right)
		assert.Contains(diff.String(), "L")
	}

	diff, err = Compare(record(t, 12, same), record(t, 10, same))
	assert.NoError(err)
	if assert.NotNil(diff) {
		assert.Equal(10, diff.Frame)
		assert.Empty(diff.Register)
	}
}
