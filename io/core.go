package io

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/agc/memory"
)

// Core is a snapshot of erasable memory, stored as one file per bank.
type Core struct {
	Banks map[uint8]([]uint16)
}

var coreBankName = regexp.MustCompile(`(?i)^E[0-7]\.bank$`)

func coreBankFile(bank uint8) string {
	return fmt.Sprintf("E%d.bank", bank)
}

// From captures every erasable bank of a memory.
func (core *Core) From(mem *memory.Memory) {
	core.Banks = make(map[uint8]([]uint16))
	for bank := range memory.ERASABLE_SIZE / memory.ERASABLE_BANK_SIZE {
		start := bank * memory.ERASABLE_BANK_SIZE
		data := make([]uint16, memory.ERASABLE_BANK_SIZE)
		copy(data, mem.Erasable[start:])
		core.Banks[uint8(bank)] = data
	}
}

// Apply writes the snapshot banks into erasable memory.
func (core *Core) Apply(mem *memory.Memory) (err error) {
	for bank, data := range core.Banks {
		err = mem.WriteErasableBlock(data, int(bank)*memory.ERASABLE_BANK_SIZE)
		if err != nil {
			return
		}
	}

	return
}

// Unmarshal loads bank files named E0.bank through E7.bank.
func (core *Core) Unmarshal(filesys fs.FS) (err error) {
	return fs.WalkDir(filesys, ".", func(path string, d fs.DirEntry, err_in error) (err error) {
		if err_in != nil {
			err = err_in
			return
		}
		if d.IsDir() {
			if path != "." {
				err = fs.SkipDir
			}
			return
		}
		name := d.Name()
		if !coreBankName.MatchString(name) {
			return
		}
		bank, err := strconv.ParseUint(strings.TrimSuffix(name[1:], filepath.Ext(name)), 8, 3)
		if err != nil {
			return
		}

		file, err := filesys.Open(path)
		if err != nil {
			return
		}
		defer file.Close()

		rope := &Rope{}
		err = rope.Unmarshal(file)
		if err != nil {
			return
		}
		if len(rope.Data) != memory.ERASABLE_BANK_SIZE {
			err = &fs.PathError{Op: "read", Path: path, Err: ErrBankSize}
			return
		}

		if core.Banks == nil {
			core.Banks = make(map[uint8]([]uint16))
		}
		core.Banks[uint8(bank)] = rope.Data

		return
	})
}

// Marshal writes every bank to its own file.
func (core *Core) Marshal(filesys CreateFS) (err error) {
	for bank, data := range core.Banks {
		var buf bytes.Buffer
		rope := &Rope{Data: data}
		err = rope.Marshal(&buf)
		if err != nil {
			return
		}

		var file io.WriteCloser
		file, err = filesys.Create(coreBankFile(bank))
		if err != nil {
			return
		}
		_, err = file.Write(buf.Bytes())
		if err != nil {
			file.Close()
			return
		}
		err = file.Close()
		if err != nil {
			return
		}
	}

	return
}
