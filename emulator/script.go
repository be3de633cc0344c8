package emulator

import (
	"errors"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/agc/io"
	"github.com/ezrec/agc/word"
)

// LoadScript runs a starlark script to preset memory and channels.
// Channel values do not survive Reset, so scripts run after it.
// src is anything starlark.ExecFileOptions accepts, or nil to read
// filename.
//
// The script sees every emulator define as an integer, plus:
//
//	erasable(index, value)  # Store a 15-bit word at a physical erasable index.
//	fixed(index, value)     # Store a 15-bit word at a physical fixed index.
//	channel(number, value)  # Write a channel.
func (emu *Emulator) LoadScript(filename string, src any) (err error) {
	pred := starlark.StringDict{}
	for key, text := range emu.Defines() {
		value, perr := strconv.ParseInt(text, 0, 32)
		if perr != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	store := func(name string, mem []uint16) *starlark.Builtin {
		return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var index, value int
			err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &index, &value)
			if err != nil {
				return nil, err
			}
			if index < 0 || index >= len(mem) || value < 0 || value > int(word.MASK_1_15) {
				return nil, ErrScriptValue
			}
			mem[index] = word.SignExpand(uint16(value))
			return starlark.None, nil
		})
	}

	pred["erasable"] = store("erasable", emu.Memory.Erasable)
	pred["fixed"] = store("fixed", emu.Memory.Fixed)
	pred["channel"] = starlark.NewBuiltin("channel", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var number, value int
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &number, &value)
		if err != nil {
			return nil, err
		}
		if number < 0 || number >= io.CHANNEL_COUNT || value < 0 || value > 0xffff {
			return nil, ErrScriptValue
		}
		return starlark.None, emu.Cpu.Channels.Write(uint8(number), uint16(value))
	})

	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}
	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, pred)
	if err != nil {
		err = errors.Join(ErrScript, err)
	}

	return
}
