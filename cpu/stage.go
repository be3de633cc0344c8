package cpu

import (
	"fmt"
)

// Stage is the decode stage of a subinstruction: either a normal
// instruction stage (0..3) or a divide substage (0..7).
type Stage uint8

const (
	STAGE_DIVIDE = Stage(0x8) // Set for divide substages.
	STAGE_COUNT  = 16         // Distinct stage values.
)

// NormalStage returns instruction stage n.
func NormalStage(n uint8) Stage {
	return Stage(n & 0x3)
}

// DivideSubstage returns divide substage n.
func DivideSubstage(n uint8) Stage {
	return STAGE_DIVIDE | Stage(n&0x7)
}

// Divide is set for divide substages.
func (st Stage) Divide() bool {
	return (st & STAGE_DIVIDE) != 0
}

// Number is the stage or substage number.
func (st Stage) Number() uint8 {
	if st.Divide() {
		return uint8(st & 0x7)
	}
	return uint8(st & 0x3)
}

func (st Stage) String() string {
	if st.Divide() {
		return fmt.Sprintf("DV%d", st.Number())
	}
	return fmt.Sprintf("ST%d", st.Number())
}

// divideNext is the order the divide substages run in.
var divideNext = [8]uint8{
	0: 1,
	1: 3,
	3: 7,
	7: 6,
	6: 4,
	4: 0,
}
