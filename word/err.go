package word

import (
	"errors"
)

var (
	ErrRangeBounds = errors.New(f("bit range outside 1..16"))
	ErrRangeOrder  = errors.New(f("bit range start after end"))
	ErrRangeLength = errors.New(f("bit ranges differ in length"))
)

// ErrRange describes an invalid bit range passed to CopyBits.
type ErrRange struct {
	Range Range
	Err   error
}

func (err ErrRange) Error() string {
	return f("bits %v: %v", err.Range.String(), err.Err)
}

func (err ErrRange) Unwrap() error {
	return err.Err
}

type ErrParseOctal string

func (err ErrParseOctal) Error() string {
	return f("'%v' is not an octal word", string(err))
}
