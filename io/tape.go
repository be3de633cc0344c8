package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/agc/word"
)

// Tape is a text device. Channel writes are logged to Output as one
// octal word per line, and channel reads consume octal words from Input.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	lineNo  int
	lastErr error
}

var _ Device = (*Tape)(nil)

// Rewind drops any partially consumed input.
func (tc *Tape) Rewind() {
	tc.scanner = nil
	tc.lineNo = 0
	tc.lastErr = nil
}

// Receive returns the next octal word from Input. Blank lines and
// text after a '#' are skipped.
func (tc *Tape) Receive() (value uint16, ok bool) {
	if tc.Input == nil {
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
	}

	for tc.scanner.Scan() {
		tc.lineNo++
		line, _, _ := strings.Cut(tc.scanner.Text(), "#")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var err error
		value, err = word.ParseOctal(line)
		if err != nil {
			tc.lastErr = &ErrTapeInput{LineNo: tc.lineNo, Line: line}
			continue
		}

		ok = true
		return
	}

	return
}

// Err returns the last malformed input line, if any.
func (tc *Tape) Err() error {
	return tc.lastErr
}

// Send writes the value as an octal line to Output.
func (tc *Tape) Send(value uint16) (err error) {
	if tc.Output == nil {
		err = ErrChannelFull
		return
	}

	_, err = fmt.Fprintln(tc.Output, word.Octal(value))
	return
}
