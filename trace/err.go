package trace

import (
	"errors"

	"github.com/ezrec/agc/translate"
)

var f = translate.From

var (
	ErrMagic    = errors.New(f("invalid trace file magic"))
	ErrVersion  = errors.New(f("unsupported trace file version"))
	ErrHeader   = errors.New(f("trace header"))
	ErrFrame    = errors.New(f("trace frame"))
	ErrMismatch = errors.New(f("trace register sets differ"))
)
