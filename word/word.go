// Package word provides the 16-bit word primitives of the guidance
// computer: 1-indexed bit range copies, double sign bit handling, and
// octal formatting.
//
// Bits are numbered 1 (least significant) through 16, matching the
// hardware documentation.
package word

import (
	"fmt"
	"strconv"

	"github.com/ezrec/agc/translate"
)

var f = translate.From

const (
	BIT_1  = uint16(1 << 0)  // Least significant bit.
	BIT_15 = uint16(1 << 14) // Sign bit of a 15-bit word.
	BIT_16 = uint16(1 << 15) // Sign bit of a 16-bit (double sign) word.

	MASK_1_10 = uint16(0x03ff) // Bits 1-10.
	MASK_1_12 = uint16(0x0fff) // Bits 1-12.
	MASK_1_14 = uint16(0x3fff) // Bits 1-14.
	MASK_1_15 = uint16(0x7fff) // Bits 1-15.

	NEG_ZERO = uint16(0xffff) // Negative zero in one's complement.
)

// ClearMode selects what CopyBits clears in the destination.
type ClearMode int

//go:generate go tool stringer -linecomment -type=ClearMode
const (
	CLEAR_ALL     = ClearMode(0) // all
	CLEAR_CHANGED = ClearMode(1) // changed
	CLEAR_NONE    = ClearMode(2) // none
)

// Range is an inclusive, 1-indexed bit range.
type Range struct {
	Start int
	End   int
}

// Bits returns the inclusive range start..end.
func Bits(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of bits in the range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// Mask returns the bits covered by the range.
func (r Range) Mask() (mask uint16) {
	for n := r.Start; n <= r.End; n++ {
		mask |= 1 << (n - 1)
	}
	return
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

func (r Range) check() {
	if r.Start < 1 || r.End > 16 {
		panic(ErrRange{Range: r, Err: ErrRangeBounds})
	}
	if r.Start > r.End {
		panic(ErrRange{Range: r, Err: ErrRangeOrder})
	}
}

// CopyBits copies the bits of src selected by from into dst at the
// position selected by to. The ranges must be the same length and lie
// within 1..16; violating that is a programming error and panics.
func CopyBits(src uint16, dst uint16, from Range, to Range, mode ClearMode) uint16 {
	from.check()
	to.check()
	if from.Len() != to.Len() {
		panic(ErrRange{Range: to, Err: ErrRangeLength})
	}

	shift := to.Start - from.Start
	var moved uint16
	if shift >= 0 {
		moved = src << shift
	} else {
		moved = src >> -shift
	}

	mask := to.Mask()
	moved &= mask

	switch mode {
	case CLEAR_ALL:
		dst = 0
	case CLEAR_CHANGED:
		dst &^= mask
	case CLEAR_NONE:
	}

	return dst | moved
}

// SignExpand promotes a 15-bit value to double sign form by copying
// bit 15 into bit 16.
func SignExpand(value uint16) uint16 {
	value &= MASK_1_15
	return value | ((value << 1) & BIT_16)
}

// SignCompress copies bit 16 into bit 15, discarding the old bit 15.
// If clear16 is set, bit 16 is also cleared.
func SignCompress(value uint16, clear16 bool) uint16 {
	value &^= BIT_15
	value |= (value >> 1) & BIT_15
	if clear16 {
		value &^= BIT_16
	}
	return value
}

// Overflow reports whether the two sign bits of a double sign word
// disagree, and in which direction.
func Overflow(value uint16) (positive bool, negative bool) {
	switch value >> 14 {
	case 0b01:
		positive = true
	case 0b10:
		negative = true
	}
	return
}

// Negate returns the one's complement negation of value.
func Negate(value uint16) uint16 {
	return ^value
}

// Octal formats a word as five octal digits.
func Octal(value uint16) string {
	return fmt.Sprintf("%05o", value)
}

// ParseOctal parses an octal word, rejecting values wider than 16 bits.
func ParseOctal(text string) (value uint16, err error) {
	v64, err := strconv.ParseUint(text, 8, 16)
	if err != nil {
		err = ErrParseOctal(text)
		return
	}

	value = uint16(v64)
	return
}
