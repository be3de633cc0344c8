package io

import (
	"encoding/binary"
	"io"

	"github.com/ezrec/agc/memory"
)

// Rope is a fixed memory image.
type Rope struct {
	Data []uint16
}

// Unmarshal decodes a stream of big-endian words.
func (rope *Rope) Unmarshal(input io.Reader) (err error) {
	raw, err := io.ReadAll(input)
	if err != nil {
		return
	}

	if len(raw)%2 != 0 {
		err = ErrRopeOdd
		return
	}

	if len(raw)/2 > memory.FIXED_SIZE {
		err = ErrRopeTooLarge
		return
	}

	rope.Data = make([]uint16, len(raw)/2)
	for n := range rope.Data {
		rope.Data[n] = binary.BigEndian.Uint16(raw[n*2:])
	}

	return
}

// Marshal encodes the image as big-endian words.
func (rope *Rope) Marshal(output io.Writer) (err error) {
	raw := make([]byte, 0, len(rope.Data)*2)
	for _, data := range rope.Data {
		raw = binary.BigEndian.AppendUint16(raw, data)
	}

	_, err = output.Write(raw)
	return
}

// Load copies the image into fixed memory starting at index 0.
func (rope *Rope) Load(mem *memory.Memory) (err error) {
	return mem.WriteFixedBlock(rope.Data, 0)
}
