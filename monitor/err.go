package monitor

import (
	"errors"

	"github.com/ezrec/agc/translate"
)

var f = translate.From

var (
	ErrArgs = errors.New(f("wrong number of arguments"))
)

// ErrCommand is an unrecognized monitor command.
type ErrCommand string

func (err ErrCommand) Error() string {
	return f("unknown command '%v'", string(err))
}

// ErrNumber is an unparseable command argument.
type ErrNumber string

func (err ErrNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

