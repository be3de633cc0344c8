package memory

import (
	"errors"

	"github.com/ezrec/agc/translate"
)

var f = translate.From

var (
	ErrBlockTooLarge = errors.New(f("block larger than memory"))
	ErrBlockOverrun  = errors.New(f("block does not fit at index"))
)

// ErrAddress is an address translation that landed outside memory.
// Valid programs never produce one, so it aborts the run.
type ErrAddress struct {
	Logical  uint16
	Resolved Location
}

func (err *ErrAddress) Error() string {
	space := "fixed"
	if err.Resolved.Erasable {
		space = "erasable"
	}
	return f("address %05o resolved to %v index %o out of range", err.Logical, space, err.Resolved.Index)
}

// ErrBlock is a rejected block initialization.
type ErrBlock struct {
	Size  int
	Index int
	Limit int
	Err   error
}

func (err *ErrBlock) Error() string {
	return f("block of %d words at %d (limit %d): %v", err.Size, err.Index, err.Limit, err.Err)
}

func (err *ErrBlock) Unwrap() error {
	return err.Err
}
