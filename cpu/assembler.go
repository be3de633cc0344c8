// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/agc/memory"
	"github.com/ezrec/agc/word"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":  "0",
	"RESTART": fmt.Sprintf("%#o", ADDR_RESTART),
}

func init() {
	for key, value := range _cpu_defines {
		sysEquate[key] = value
	}
}

// instruction describes the encoding of an addressed instruction.
type instruction struct {
	extend bool   // Must follow EXTEND.
	code   uint16 // Opcode and quarter code bits.
	width  int    // Address bits.
	fixed  bool   // Address must be in fixed memory.
}

var instructionMap = map[string]instruction{
	"TC":    {code: 000000, width: 12},
	"CCS":   {code: 010000, width: 10},
	"TCF":   {code: 010000, width: 12, fixed: true},
	"DAS":   {code: 020000, width: 10},
	"LXCH":  {code: 022000, width: 10},
	"INCR":  {code: 024000, width: 10},
	"ADS":   {code: 026000, width: 10},
	"CA":    {code: 030000, width: 12},
	"CS":    {code: 040000, width: 12},
	"INDEX": {code: 050000, width: 10},
	"DXCH":  {code: 052000, width: 10},
	"TS":    {code: 054000, width: 10},
	"XCH":   {code: 056000, width: 10},
	"AD":    {code: 060000, width: 12},
	"MASK":  {code: 070000, width: 12},

	"READ":   {extend: true, code: 000000, width: 9},
	"WRITE":  {extend: true, code: 001000, width: 9},
	"RAND":   {extend: true, code: 002000, width: 9},
	"WAND":   {extend: true, code: 003000, width: 9},
	"ROR":    {extend: true, code: 004000, width: 9},
	"WOR":    {extend: true, code: 005000, width: 9},
	"RXOR":   {extend: true, code: 006000, width: 9},
	"EDRUPT": {extend: true, code: 007000, width: 9},
	"DV":     {extend: true, code: 010000, width: 10},
	"BZF":    {extend: true, code: 010000, width: 12, fixed: true},
	"MSU":    {extend: true, code: 020000, width: 10},
	"QXCH":   {extend: true, code: 022000, width: 10},
	"AUG":    {extend: true, code: 024000, width: 10},
	"DIM":    {extend: true, code: 026000, width: 10},
	"DCA":    {extend: true, code: 030000, width: 12},
	"DCS":    {extend: true, code: 040000, width: 12},
	"NDX":    {extend: true, code: 050000, width: 12},
	"SU":     {extend: true, code: 060000, width: 10},
	"BZMF":   {extend: true, code: 060000, width: 12, fixed: true},
	"MP":     {extend: true, code: 070000, width: 12},
}

// impliedMap maps instructions with an implied address to their words.
var impliedMap = map[string]instruction{
	"EXTEND": {code: 000000 | PSEUDO_EXTEND},
	"INHINT": {code: 000000 | PSEUDO_INHINT},
	"RELINT": {code: 000000 | PSEUDO_RELINT},
	"RETURN": {code: 000000 | REG_Q},
	"XXALQ":  {code: 000000 | REG_A},
	"XLQ":    {code: 000000 | REG_L},
	"RESUME": {code: 050000 | REG_BRUPT},
	"NOOP":   {code: 030000 | REG_A},
	"DDOUBL": {code: 020000 | REG_L},
	"DOUBLE": {code: 060000 | REG_A},
	"COM":    {code: 040000 | REG_A},
	"ZL":     {code: 022000 | REG_ZERO},
	"OVSK":   {code: 054000 | REG_A},
	"TCAA":   {code: 054000 | REG_Z},
	"DTCF":   {code: 052000 | REG_FB},
	"DTCB":   {code: 052000 | REG_Z},
	"ZQ":     {extend: true, code: 022000 | REG_ZERO},
	"SQUARE": {extend: true, code: 070000 | REG_A},
}

// Opcode is one assembled word.
type Opcode struct {
	LineNo    int      // Source line.
	Index     int      // Physical fixed memory index.
	Words     []string // Source words.
	Word      uint16   // 15-bit word.
	LinkLabel string   // Label to add to the address field when linking.
	Width     int      // Address field width, when linking.
}

// Assembler is a single pass macro assembler for the guidance computer.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to physical fixed indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	location int          // Next physical fixed index.
	used     map[int]bool // Assembled physical indexes.
	extended bool         // Previous word was EXTEND.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// LabelAddress converts a physical fixed index to the logical address
// a program uses to reach it: fixed-fixed addresses for banks 2 and 3,
// and the switched window for every other bank.
func LabelAddress(index int) uint16 {
	if index >= memory.ADDR_FIXED_FIXED && index < memory.ADDR_END {
		return uint16(index)
	}
	return uint16(memory.ADDR_FIXED_BANKED + index%memory.FIXED_BANK_SIZE)
}

// valueOf returns the value of a simple word, as a 16-bit one's
// complement value.
func (asm *Assembler) valueOf(text string) (value uint16, err error) {
	invert := false
	if text[0] == '~' {
		invert = true
		text = text[1:]
	}
	if len(text) == 0 {
		err = ErrParseNumber(text)
		return
	}
	if text[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseNumber(text)
		return
	}
	v64, err := strconv.ParseInt(text, 0, 17)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	switch {
	case v64 < -0x7fff || v64 > 0xffff:
		err = ErrOperandRange
		return
	case v64 < 0:
		value = word.SignExpand(^uint16(-v64))
	default:
		value = uint16(v64)
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v uint16
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(v))
	}
	for key, index := range asm.Label {
		pred[key] = starlark.MakeInt(int(LabelAddress(index)))
	}
	err = nil
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#o", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if !ok {
			_, ok = asm.Equate[label]
		}
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.location
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, macro.LineNo+n)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.location = memory.ADDR_FIXED_FIXED
	asm.used = make(map[int]bool)
	asm.extended = false

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label, offset := splitOffset(op.LinkLabel)
		index, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		addr := int(LabelAddress(index)) + offset
		if addr < 0 || addr >= (1<<op.Width) {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrOperandRange
			return
		}
		op.Word |= uint16(addr)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// splitOffset splits LABEL+N or LABEL-N.
func splitOffset(text string) (label string, offset int) {
	label = text
	n := strings.LastIndexAny(text, "+-")
	if n <= 0 {
		return
	}
	v, err := strconv.ParseInt(text[n:], 0, 32)
	if err != nil {
		return
	}
	label = text[:n]
	offset = int(v)
	return
}

// emit places a word at the current location.
func (asm *Assembler) emit(op Opcode) (err error) {
	if asm.location < 0 || asm.location >= memory.FIXED_SIZE {
		err = ErrLocationRange
		return
	}
	if asm.used[asm.location] {
		err = ErrLocationUsed
		return
	}
	asm.used[asm.location] = true

	op.Index = asm.location
	op.Word &= word.MASK_1_15
	asm.Opcode = append(asm.Opcode, op)
	asm.location++
	return
}

var labelRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*([+-][0-9]+)?$`)

// operand returns the address field of an instruction, or the label to
// link it against.
func (asm *Assembler) operand(text string, inst instruction) (addr uint16, label string, err error) {
	// Labels are linked after the whole program is read.
	if labelRegexp.MatchString(text) {
		label = text
		return
	}

	value, err := asm.valueOf(text)
	if err != nil {
		return
	}

	if int(value) >= (1 << inst.width) {
		err = ErrOperandRange
		return
	}
	if inst.fixed && value < memory.ADDR_FIXED_BANKED {
		err = ErrOperandRange
		return
	}

	addr = value
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op := Opcode{LineNo: lineno, Words: slices.Clone(words)}
	mnemonic := strings.ToUpper(words[0])
	args := words[1:]

	switch mnemonic {
	case ".ORG":
		if len(args) != 1 {
			err = ErrOrgSyntax
			return
		}
		var value uint16
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		asm.location = int(value)
		return
	case ".BANK":
		if len(args) != 1 {
			err = ErrOrgSyntax
			return
		}
		var value uint16
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		asm.location = int(value) * memory.FIXED_BANK_SIZE
		return
	case ".WORD", "OCT", "DEC":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		text := args[0]
		switch mnemonic {
		case "OCT":
			if !strings.HasPrefix(text, "0") {
				text = "0o" + text
			}
		case "DEC":
			sign := ""
			if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
				sign, text = text[:1], text[1:]
			}
			text = strings.TrimLeft(text, "0")
			if text == "" {
				text = "0"
			}
			text = sign + text
		}
		var value uint16
		value, err = asm.valueOf(text)
		if err != nil {
			return
		}
		op.Word = value & word.MASK_1_15
		asm.extended = false
		err = asm.emit(op)
		return
	case "ADRES":
		if len(args) != 1 {
			err = ErrOpcodeValueMissing
			return
		}
		inst := instruction{width: 12}
		op.Word, op.LinkLabel, err = asm.operand(args[0], inst)
		op.Width = inst.width
		if err != nil {
			return
		}
		asm.extended = false
		err = asm.emit(op)
		return
	}

	if inst, ok := impliedMap[mnemonic]; ok {
		if len(args) > 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		if inst.extend && !asm.extended {
			err = ErrExtendMissing
			return
		}
		if !inst.extend && asm.extended && mnemonic != "EXTEND" {
			err = ErrExtendUnexpected
			return
		}
		op.Word = inst.code
		err = asm.emit(op)
		asm.extended = mnemonic == "EXTEND"
		return
	}

	inst, ok := instructionMap[mnemonic]
	if !ok {
		err = ErrInstructionInvalid
		return
	}
	if inst.extend != asm.extended && !(mnemonic == "INDEX" && asm.extended) {
		err = ErrExtendMissing
		if !inst.extend {
			err = ErrExtendUnexpected
		}
		return
	}
	if mnemonic == "INDEX" && asm.extended {
		inst = instructionMap["NDX"]
	}
	if len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	var addr uint16
	addr, op.LinkLabel, err = asm.operand(args[0], inst)
	if err != nil {
		return
	}
	op.Word = inst.code | addr
	op.Width = inst.width

	err = asm.emit(op)
	if err != nil {
		return
	}

	// An extended INDEX carries the extension to the instruction it indexes.
	asm.extended = asm.extended && inst == instructionMap["NDX"]

	return
}
