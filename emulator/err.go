package emulator

import (
	"errors"

	"github.com/ezrec/agc/translate"
	"github.com/ezrec/agc/word"
)

var f = translate.From

var (
	ErrScript      = errors.New(f("script"))
	ErrScriptValue = errors.New(f("script value out of range"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pulse uint64 // Time pulse count when the error occurred.
	Z     uint16 // Program counter before the failing pulse.
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("pulse %d Z=%v: %v", err.Pulse, word.Octal(err.Z), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
