package cpu

import (
	"errors"

	"github.com/ezrec/agc/translate"
)

var f = translate.From

var (
	// Decode table defects
	ErrBranchWidth   = errors.New(f("alternatives must number 1, 2 or 4"))
	ErrTimePulse     = errors.New(f("time pulse outside 1..12"))
	ErrPattern       = errors.New(f("opcode pattern invalid"))
	ErrQueueLeftover = errors.New(f("control pulses left queued at time pulse 12"))
	ErrZipState      = errors.New(f("multiply state invalid"))
	ErrInvalidPulse  = errors.New(f("invalid control pulse"))
	ErrPulseUnknown  = errors.New(f("unknown control pulse"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandRange       = errors.New(f("operand out of range"))
	ErrLocationRange      = errors.New(f("location outside fixed memory"))
	ErrLocationUsed       = errors.New(f("location already assembled"))
	ErrExtendMissing      = errors.New(f("extended instruction without EXTEND"))
	ErrExtendUnexpected   = errors.New(f("basic instruction after EXTEND"))
)

// ErrTableDefect is raised, by panic, when the instruction set
// description is internally inconsistent. Guest programs cannot cause it.
type ErrTableDefect struct {
	Name string // Subinstruction, or pulse, at fault.
	T    int    // Time pulse, if known.
	Err  error
}

func (err *ErrTableDefect) Error() string {
	if err.T == 0 {
		return f("table defect in %v: %v", err.Name, err.Err)
	}
	return f("table defect in %v at T%02d: %v", err.Name, err.T, err.Err)
}

func (err *ErrTableDefect) Unwrap() error {
	return err.Err
}

func (err *ErrTableDefect) Is(target error) (ok bool) {
	_, ok = target.(*ErrTableDefect)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
