package io

import (
	"errors"

	"github.com/ezrec/agc/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))

	// Image errors
	ErrRopeOdd      = errors.New(f("rope image has an odd number of bytes"))
	ErrRopeTooLarge = errors.New(f("rope image larger than fixed memory"))
	ErrBankSize     = errors.New(f("bank image has the wrong size"))
)

// ErrDevice reports a failure from an attached device.
type ErrDevice struct {
	Channel uint8
	Err     error
}

func (err *ErrDevice) Error() string {
	return f("channel %02o: %v", err.Channel, err.Err)
}

func (err *ErrDevice) Unwrap() error {
	return err.Err
}

// ErrTapeInput is malformed device input text.
type ErrTapeInput struct {
	LineNo int
	Line   string
}

func (err *ErrTapeInput) Error() string {
	return f("tape line %d '%v' is not an octal word", err.LineNo, err.Line)
}
