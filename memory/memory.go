// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the banked erasable (core) and fixed (rope)
// memories, and the translation from 12-bit logical addresses to
// physical word indexes.
package memory

import (
	"fmt"
	"iter"
	"maps"
	"math/rand/v2"
)

const (
	ERASABLE_SIZE      = 2048  // Erasable words, 8 banks.
	FIXED_SIZE         = 36864 // Fixed words, 36 banks.
	ERASABLE_BANK_SIZE = 0400  // Words per erasable bank.
	FIXED_BANK_SIZE    = 02000 // Words per fixed bank.

	ADDR_CENTRAL_END     = 000010 // Addresses below are central registers.
	ADDR_ERASABLE_BANKED = 001400 // Start of the switched erasable window.
	ADDR_FIXED_BANKED    = 002000 // Start of the switched fixed window.
	ADDR_FIXED_FIXED     = 004000 // Start of fixed-fixed (banks 2 and 3).
	ADDR_END             = 010000 // One past the last logical address.

	EB_MASK       = 03400  // Bank select bits of EB.
	FB_MASK       = 076000 // Bank select bits of FB.
	SUPERBANK_MIN = 030    // First fixed bank affected by the superbank bit.
	SUPERBANK_ADD = 010    // Bank offset applied when the superbank bit is set.
)

var _memory_defines = map[string]string{
	"ERASABLE_SIZE":        fmt.Sprintf("%#o", ERASABLE_SIZE),
	"FIXED_SIZE":           fmt.Sprintf("%#o", FIXED_SIZE),
	"ADDR_ERASABLE_BANKED": fmt.Sprintf("%#o", ADDR_ERASABLE_BANKED),
	"ADDR_FIXED_BANKED":    fmt.Sprintf("%#o", ADDR_FIXED_BANKED),
	"ADDR_FIXED_FIXED":     fmt.Sprintf("%#o", ADDR_FIXED_FIXED),
}

// InitState is the power-on content of both memories.
type InitState int

//go:generate go tool stringer -linecomment -type=InitState
const (
	BITS_CLEAR = InitState(0) // clear
	BITS_SET   = InitState(1) // set
	RANDOM     = InitState(2) // random
)

// Banks is the bank register state used for address translation.
type Banks struct {
	EB        uint16 // Erasable bank register, bank in bits 9-11.
	FB        uint16 // Fixed bank register, bank in bits 11-15.
	Superbank bool   // Fixed extension bit (channel 7, bit 7).
}

// Location is a resolved physical word.
type Location struct {
	Erasable bool // Set for erasable memory, clear for fixed.
	Index    int  // Physical word index.
}

func (loc Location) String() string {
	if loc.Erasable {
		return fmt.Sprintf("E%o,%04o", loc.Index/ERASABLE_BANK_SIZE, loc.Index%ERASABLE_BANK_SIZE+ADDR_ERASABLE_BANKED)
	}
	return fmt.Sprintf("%02o,%04o", loc.Index/FIXED_BANK_SIZE, loc.Index%FIXED_BANK_SIZE+ADDR_FIXED_BANKED)
}

// Resolve translates a logical address through the bank registers.
// Reads and write-backs resolve identically.
func Resolve(addr uint16, banks Banks) (loc Location) {
	switch {
	case addr < ADDR_ERASABLE_BANKED:
		loc = Location{Erasable: true, Index: int(addr)}
	case addr < ADDR_FIXED_BANKED:
		loc = Location{Erasable: true, Index: int(banks.EB&EB_MASK) | int(addr&(ERASABLE_BANK_SIZE-1))}
	case addr < ADDR_FIXED_FIXED:
		bank := int(banks.FB&FB_MASK) / FIXED_BANK_SIZE
		if banks.Superbank && bank >= SUPERBANK_MIN {
			bank += SUPERBANK_ADD
		}
		loc = Location{Index: bank*FIXED_BANK_SIZE | int(addr&(FIXED_BANK_SIZE-1))}
	default:
		loc = Location{Index: int(addr)}
	}

	return
}

// Memory is the erasable and fixed word storage.
type Memory struct {
	Erasable []uint16 // Erasable (core) words, indexed physically.
	Fixed    []uint16 // Fixed (rope) words, indexed physically.
}

// NewMemory creates memories of the standard sizes, all bits clear.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		Erasable: make([]uint16, ERASABLE_SIZE),
		Fixed:    make([]uint16, FIXED_SIZE),
	}

	return
}

// Defines for the memory layout.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Init fills both memories with the requested pattern. The seed only
// matters for RANDOM, and the same seed always yields the same content.
func (mem *Memory) Init(state InitState, seed uint64) {
	switch state {
	case BITS_CLEAR:
		clear(mem.Erasable)
		clear(mem.Fixed)
	case BITS_SET:
		for n := range mem.Erasable {
			mem.Erasable[n] = 0xffff
		}
		for n := range mem.Fixed {
			mem.Fixed[n] = 0xffff
		}
	case RANDOM:
		rng := rand.New(rand.NewPCG(seed, ^seed))
		for n := range mem.Erasable {
			mem.Erasable[n] = uint16(rng.Uint32())
		}
		for n := range mem.Fixed {
			mem.Fixed[n] = uint16(rng.Uint32())
		}
	}
}

// check verifies a resolved location is inside its backing array.
func (mem *Memory) check(addr uint16, loc Location) (err error) {
	size := len(mem.Fixed)
	if loc.Erasable {
		size = len(mem.Erasable)
	}
	if addr >= ADDR_END || loc.Index < 0 || loc.Index >= size {
		err = &ErrAddress{Logical: addr, Resolved: loc}
	}
	return
}

// Read performs the memory cycle read for a logical address. Erasable
// reads are destructive: the cell holds zero until written back.
func (mem *Memory) Read(addr uint16, banks Banks) (value uint16, loc Location, err error) {
	loc = Resolve(addr, banks)
	err = mem.check(addr, loc)
	if err != nil {
		return
	}

	if loc.Erasable {
		value = mem.Erasable[loc.Index]
		mem.Erasable[loc.Index] = 0
	} else {
		value = mem.Fixed[loc.Index]
	}

	return
}

// WriteBack restores an erasable cell at the end of a memory cycle.
func (mem *Memory) WriteBack(loc Location, value uint16) (err error) {
	if !loc.Erasable {
		err = &ErrAddress{Logical: ADDR_END, Resolved: loc}
		return
	}
	if loc.Index < 0 || loc.Index >= len(mem.Erasable) {
		err = &ErrAddress{Logical: ADDR_END, Resolved: loc}
		return
	}

	mem.Erasable[loc.Index] = value
	return
}

// Peek returns the word at a logical address without disturbing it.
func (mem *Memory) Peek(addr uint16, banks Banks) (value uint16, err error) {
	loc := Resolve(addr, banks)
	err = mem.check(addr, loc)
	if err != nil {
		return
	}

	if loc.Erasable {
		value = mem.Erasable[loc.Index]
	} else {
		value = mem.Fixed[loc.Index]
	}

	return
}

// WriteErasableBlock copies words into erasable memory starting at a
// physical index. Used to bring up memory contents before the first tick.
func (mem *Memory) WriteErasableBlock(words []uint16, index int) (err error) {
	err = writeBlock(mem.Erasable, words, index)
	return
}

// WriteFixedBlock copies words into fixed memory starting at a physical
// index. Used to load the rope before the first tick.
func (mem *Memory) WriteFixedBlock(words []uint16, index int) (err error) {
	err = writeBlock(mem.Fixed, words, index)
	return
}

func writeBlock(dst []uint16, words []uint16, index int) (err error) {
	if len(words) > len(dst) {
		err = &ErrBlock{Size: len(words), Index: index, Limit: len(dst), Err: ErrBlockTooLarge}
		return
	}
	if index < 0 || index+len(words) > len(dst) {
		err = &ErrBlock{Size: len(words), Index: index, Limit: len(dst), Err: ErrBlockOverrun}
		return
	}

	copy(dst[index:], words)
	return
}
