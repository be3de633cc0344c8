package cpu

import (
	"strings"
	"sync"
)

// SQ_BITS is the width of the opcode register pattern.
const SQ_BITS = 6

const tableSize = STAGE_COUNT << (SQ_BITS + 1)

// Definition binds a subinstruction to the decode entries it matches.
// Pattern is six characters of '0', '1' or 'x', most significant first.
type Definition struct {
	Stage   Stage
	Extend  bool
	Pattern string
	Sub     *Subinstruction
}

// Table is the decode table. Later definitions overwrite earlier ones
// where their patterns overlap.
type Table struct {
	entry    [tableSize]*Subinstruction
	specific [tableSize]bool
	fallback *Subinstruction
}

func tableKey(stage Stage, extend bool, sq uint8) int {
	key := int(stage) << (SQ_BITS + 1)
	if extend {
		key |= 1 << SQ_BITS
	}
	return key | int(sq&(1<<SQ_BITS-1))
}

// parsePattern returns the fixed bits of a pattern and the mask of which
// bits are fixed.
func parsePattern(pattern string) (value, mask uint8, err error) {
	if len(pattern) != SQ_BITS {
		err = ErrPattern
		return
	}
	for _, c := range strings.ToLower(pattern) {
		value <<= 1
		mask <<= 1
		switch c {
		case '0':
			mask |= 1
		case '1':
			mask |= 1
			value |= 1
		case 'x':
		default:
			err = ErrPattern
			return
		}
	}
	return
}

// BuildTable expands the definitions into a decode table. Entries no
// definition covers resolve to fallback.
func BuildTable(fallback *Subinstruction, defs []Definition) (table *Table, err error) {
	table = &Table{fallback: fallback}
	for n := range table.entry {
		table.entry[n] = fallback
	}

	err = fallback.validate()
	if err != nil {
		table = nil
		return
	}

	for _, def := range defs {
		err = def.Sub.validate()
		if err != nil {
			table = nil
			return
		}
		var value, mask uint8
		value, mask, err = parsePattern(def.Pattern)
		if err != nil {
			err = &ErrTableDefect{Name: def.Sub.Name, Err: err}
			table = nil
			return
		}
		for sq := range uint8(1 << SQ_BITS) {
			if sq&mask != value {
				continue
			}
			key := tableKey(def.Stage, def.Extend, sq)
			table.entry[key] = def.Sub
			table.specific[key] = true
		}
	}

	return
}

// Lookup returns the subinstruction for a decode state. If no definition
// covers the state, the fallback is returned with ok clear.
func (table *Table) Lookup(stage Stage, extend bool, sq uint8) (sub *Subinstruction, ok bool) {
	key := tableKey(stage, extend, sq)
	sub = table.entry[key]
	ok = table.specific[key]
	return
}

// DefaultTable is the Block II decode table.
var DefaultTable = sync.OnceValue(func() *Table {
	table, err := BuildTable(STD2, Definitions)
	if err != nil {
		panic(err)
	}
	return table
})
