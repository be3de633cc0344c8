package monitor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/agc/emulator"
)

func newMonitor(t *testing.T) (mon *Monitor, out *bytes.Buffer) {
	emu := emulator.NewEmulator(emulator.WithRate(0))
	err := emu.Assemble(strings.NewReader(strings.Join([]string{
		"	CA K5",
		"DONE:	TCF DONE",
		"K5:	DEC 5",
	}, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	emu.Reset()

	out = &bytes.Buffer{}
	mon = NewMonitor(emu)
	mon.Out = out

	return
}

func TestMonitorStep(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t)

	quit, err := mon.Exec("step 3")
	assert.NoError(err)
	assert.False(quit)
	assert.Equal(uint64(3), mon.emu.Pulses())
	assert.Contains(out.String(), "T04")

	out.Reset()
	_, err = mon.Exec("mct 4")
	assert.NoError(err)
	assert.Equal(uint64(51), mon.emu.Pulses())
	assert.Contains(out.String(), "+A 00005")

	out.Reset()
	_, err = mon.Exec("regs")
	assert.NoError(err)
	assert.Contains(out.String(), "A 00005")
	assert.NotContains(out.String(), "+A")
}

func TestMonitorColor(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t)
	mon.Color = true

	_, err := mon.Exec("mct 4")
	assert.NoError(err)
	assert.Contains(out.String(), colorNew+"A 00005")
}

func TestMonitorMemory(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t)
	mon.emu.Memory.Erasable[0100] = 0123

	_, err := mon.Exec("mem f 4000 3")
	assert.NoError(err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(lines, 3)
	assert.Equal("02,2000: 34002", lines[0])
	assert.Equal("02,2002: 00005", lines[2])

	out.Reset()
	_, err = mon.Exec("mem e 100")
	assert.NoError(err)
	assert.Equal("E0,1500: 00123\n", out.String())
}

func TestMonitorChannels(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t)
	assert.NoError(mon.emu.Cpu.Channels.Write(034, 077))

	_, err := mon.Exec("chan")
	assert.NoError(err)
	assert.Equal("034: 00077\n", out.String())
}

func TestMonitorDot(t *testing.T) {
	assert := assert.New(t)

	mon, _ := newMonitor(t)
	_, err := mon.Exec("step 1")
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "pulses.dot")
	_, err = mon.Exec("dot " + path)
	assert.NoError(err)

	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Contains(string(data), "digraph")
}

func TestMonitorErrors(t *testing.T) {
	assert := assert.New(t)

	mon, _ := newMonitor(t)

	quit, err := mon.Exec("")
	assert.NoError(err)
	assert.False(quit)

	quit, err = mon.Exec("quit")
	assert.NoError(err)
	assert.True(quit)

	table := [](struct {
		line string
		err  error
	}){
		{"bogus", ErrCommand("bogus")},
		{"step x", ErrNumber("x")},
		{"mct -1", ErrNumber("-1")},
		{"mem", ErrArgs},
		{"mem x 100", ErrArgs},
		{"mem e 9", ErrNumber("9")},
		{"dot", ErrArgs},
	}

	for _, entry := range table {
		_, err = mon.Exec(entry.line)
		assert.Equal(entry.err, err, entry.line)
	}
}
