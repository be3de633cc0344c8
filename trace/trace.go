// Package trace records the register file after every time pulse, so
// two runs of the same program can be compared pulse by pulse.
//
// A trace file is a packed Header followed by a snappy framed stream of
// packed Frame records.
package trace

import (
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"

	"github.com/ezrec/agc/cpu"
)

const (
	TRACE_MAGIC   = "AGCT"
	TRACE_VERSION = 1
)

// Header identifies a trace file and names the recorded registers.
type Header struct {
	Magic   string `struc:"[4]byte"`
	Version uint32
	// Space separated register names, right null padded.
	Names string `struc:"[128]byte"`
}

// Registers returns the register names recorded in each frame.
func (hdr *Header) Registers() []string {
	return strings.Fields(strings.TrimRight(hdr.Names, "\x00"))
}

// Frame is the register file at the end of one time pulse.
type Frame struct {
	Pulse  uint64
	T      uint8
	Count  uint16 `struc:"sizeof=Values"`
	Values []uint16
}

// FrameOf captures the current register file of a processor.
func FrameOf(c *cpu.Cpu) (frame *Frame) {
	frame = &Frame{
		Pulse: c.Pulses,
		T:     uint8(c.T),
	}
	for _, value := range c.Registers() {
		frame.Values = append(frame.Values, value)
	}

	return
}

// Writer packs frames into a trace file.
type Writer struct {
	Header Header

	zw *snappy.Writer
}

// NewWriter writes the trace header for the register set of c.
func NewWriter(w io.Writer, c *cpu.Cpu) (tw *Writer, err error) {
	var names []string
	for name := range c.Registers() {
		names = append(names, name)
	}

	tw = &Writer{
		Header: Header{
			Magic:   TRACE_MAGIC,
			Version: TRACE_VERSION,
			Names:   strings.Join(names, " "),
		},
	}

	err = struc.Pack(w, &tw.Header)
	if err != nil {
		tw = nil
		err = errors.Join(ErrHeader, err)
		return
	}

	tw.zw = snappy.NewBufferedWriter(w)
	return
}

// Record writes the current register file of c.
func (tw *Writer) Record(c *cpu.Cpu) error {
	return tw.Write(FrameOf(c))
}

// Write a single frame.
func (tw *Writer) Write(frame *Frame) (err error) {
	err = struc.Pack(tw.zw, frame)
	if err != nil {
		err = errors.Join(ErrFrame, err)
	}
	return
}

// Close flushes the frame stream. The underlying writer is left open.
func (tw *Writer) Close() error {
	return tw.zw.Close()
}

// Reader unpacks frames from a trace file.
type Reader struct {
	Header Header

	zr *snappy.Reader
}

// NewReader reads and checks the trace header.
func NewReader(r io.Reader) (tr *Reader, err error) {
	tr = &Reader{}
	err = struc.Unpack(r, &tr.Header)
	if err != nil {
		tr = nil
		err = errors.Join(ErrHeader, err)
		return
	}

	if tr.Header.Magic != TRACE_MAGIC {
		tr = nil
		err = ErrMagic
		return
	}

	if tr.Header.Version != TRACE_VERSION {
		tr = nil
		err = ErrVersion
		return
	}

	tr.zr = snappy.NewReader(r)
	return
}

// Next returns the next frame, or io.EOF at the end of the trace.
func (tr *Reader) Next() (frame *Frame, err error) {
	frame = &Frame{}
	err = struc.Unpack(tr.zr, frame)
	if err != nil {
		frame = nil
		if !errors.Is(err, io.EOF) {
			err = errors.Join(ErrFrame, err)
		}
	}
	return
}

// Difference is the first point where two traces disagree.
type Difference struct {
	Frame    int    // Frame index.
	Pulse    uint64 // Pulse count of the left frame.
	T        uint8  // Time pulse of the left frame.
	Register string // Differing register, empty when one trace ended early.
	Left     uint16
	Right    uint16
}

// Compare reads two traces and returns the first difference, or nil when
// they are identical.
func Compare(left, right io.Reader) (diff *Difference, err error) {
	lr, err := NewReader(left)
	if err != nil {
		return
	}
	rr, err := NewReader(right)
	if err != nil {
		return
	}

	names := lr.Header.Registers()
	if !slices.Equal(names, rr.Header.Registers()) {
		err = ErrMismatch
		return
	}

	for index := 0; ; index++ {
		var lf, rf *Frame
		var lerr, rerr error
		lf, lerr = lr.Next()
		rf, rerr = rr.Next()

		lend := errors.Is(lerr, io.EOF)
		rend := errors.Is(rerr, io.EOF)
		if lerr != nil && !lend {
			err = lerr
			return
		}
		if rerr != nil && !rend {
			err = rerr
			return
		}

		switch {
		case lend && rend:
			return
		case lend:
			diff = &Difference{Frame: index, Pulse: rf.Pulse, T: rf.T}
			return
		case rend:
			diff = &Difference{Frame: index, Pulse: lf.Pulse, T: lf.T}
			return
		}

		diff = compareFrame(index, names, lf, rf)
		if diff != nil {
			return
		}
	}
}

func compareFrame(index int, names []string, lf, rf *Frame) (diff *Difference) {
	if lf.Pulse != rf.Pulse || lf.T != rf.T {
		diff = &Difference{Frame: index, Pulse: lf.Pulse, T: lf.T, Register: "T", Left: uint16(lf.T), Right: uint16(rf.T)}
		return
	}

	for n, name := range names {
		var lv, rv uint16
		if n < len(lf.Values) {
			lv = lf.Values[n]
		}
		if n < len(rf.Values) {
			rv = rf.Values[n]
		}
		if lv != rv {
			diff = &Difference{Frame: index, Pulse: lf.Pulse, T: lf.T, Register: name, Left: lv, Right: rv}
			return
		}
	}

	return
}

func (diff *Difference) String() string {
	if len(diff.Register) == 0 {
		return f("frame %d (pulse %d T%02d): trace lengths differ", diff.Frame, diff.Pulse, diff.T)
	}
	return f("frame %d (pulse %d T%02d): %v %06o != %06o", diff.Frame, diff.Pulse, diff.T, diff.Register, diff.Left, diff.Right)
}
