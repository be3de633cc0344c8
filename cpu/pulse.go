package cpu

import (
	"github.com/ezrec/agc/memory"
	"github.com/ezrec/agc/word"
)

// Pulse is a control pulse: one register transfer, adder setup, or latch
// change performed during a time pulse.
type Pulse uint8

//go:generate go tool stringer -type=Pulse
const (
	INVALID = Pulse(iota) // Never valid in a sequence.
	A2X                   // X gets A.
	B15X                  // X gets bit 15.
	CI                    // Carry in.
	DVFIN                 // Divide: sign and place quotient and remainder.
	DVSIGN                // Divide: record signs, take magnitudes.
	DVST                  // Divide: advance substage.
	DVSTEP                // Divide: one quotient bit.
	EXT                   // Extend the next instruction.
	G2LS                  // L gets G, shifted for multiply.
	L16                   // Set bit 16 of L.
	L2GD                  // G gets L, shifted for multiply.
	MONEX                 // X gets -1.
	NEACOF                // End-around carry on.
	NEACON                // End-around carry off.
	NISQ                  // Fetch the next instruction.
	PONEX                 // X gets +1.
	PTWOX                 // X gets +2.
	R15                   // Bus is 015.
	R1C                   // Bus is -1.
	RA                    // Read A.
	RAD                   // Read G, or handle a pseudo instruction.
	RB                    // Read B.
	RB1                   // Bus is +1.
	RC                    // Read complement of B.
	RCH                   // Read channel.
	RG                    // Read G.
	RL                    // Read L.
	RL10BB                // Read B bits 1-10.
	RQ                    // Read Q.
	RSC                   // Read central register addressed by S.
	RSTRT                 // Bus is the restart address.
	RU                    // Read adder.
	RUS                   // Read adder, sign extended.
	RZ                    // Read Z.
	ST1                   // Next stage bit 1.
	ST2                   // Next stage bit 2.
	TL15                  // BR1 gets L bit 15.
	TMZ                   // BR2 set if bus is -0.
	TOV                   // Branch on overflow.
	TPZG                  // BR2 set if G is +0.
	TRSM                  // Resume test.
	TSGN                  // BR1 gets bus sign.
	TSGN2                 // BR2 gets bus sign.
	TSGU                  // BR1 gets adder sign.
	WA                    // Write A.
	WALS                  // Write A and L, shifted for multiply.
	WB                    // Write B.
	WCH                   // Write channel.
	WG                    // Write G, with editing.
	WL                    // Write L.
	WOVR                  // Overflow counter hook.
	WQ                    // Write Q.
	WS                    // Write S.
	WSC                   // Write central register addressed by S.
	WX                    // Write X.
	WY                    // Write Y, clear X and carry.
	WY12                  // Write Y bits 1-12, clear X and carry.
	WYD                   // Write Y shifted left, clear X and carry.
	WZ                    // Write Z.
	ZAP                   // Multiply: accumulate and shift.
	ZIP                   // Multiply: select partial product.
	PULSE_COUNT
)

// Central register addresses.
const (
	REG_A     = 0
	REG_L     = 1
	REG_Q     = 2
	REG_EB    = 3
	REG_FB    = 4
	REG_Z     = 5
	REG_BB    = 6
	REG_ZERO  = 7
	REG_ZRUPT = 015
	REG_BRUPT = 017
	REG_CYR   = 020
	REG_SR    = 021
	REG_CYL   = 022
	REG_EDOP  = 023
)

// Pseudo instructions recognized by RAD.
const (
	PSEUDO_RELINT = 3
	PSEUDO_INHINT = 4
	PSEUDO_EXTEND = 6
)

const (
	ADDR_RESTART = 04000 // Restart entry point.
	ADDR_MASK    = 07777 // S register bits.
)

// ParsePulse returns the pulse named by text.
func ParsePulse(text string) (pulse Pulse, err error) {
	for pulse = A2X; pulse < PULSE_COUNT; pulse++ {
		if pulse.String() == text {
			return
		}
	}

	pulse = INVALID
	err = ErrPulseUnknown
	return
}

func (cpu *Cpu) read(value uint16) {
	cpu.Bus |= value
}

func (cpu *Cpu) force(value uint16) {
	cpu.Bus = value
}

// readCentral returns a central register by address.
func (cpu *Cpu) readCentral(addr uint16) (value uint16, ok bool) {
	ok = true
	switch addr {
	case REG_A:
		value = cpu.A
	case REG_L:
		value = word.SignCompress(cpu.L, false)
	case REG_Q:
		value = cpu.Q
	case REG_EB:
		value = cpu.EB
	case REG_FB:
		value = cpu.FB
	case REG_Z:
		value = cpu.Z
	case REG_BB:
		value = cpu.BB()
	default:
		ok = false
	}
	return
}

func (cpu *Cpu) writeCentral(addr uint16, value uint16) {
	switch addr {
	case REG_A:
		cpu.A = value
	case REG_L:
		cpu.L = value
	case REG_Q:
		cpu.Q = value
	case REG_EB:
		cpu.EB = value & memory.EB_MASK
	case REG_FB:
		cpu.FB = value & memory.FB_MASK
	case REG_Z:
		cpu.Z = value
	case REG_BB:
		cpu.SetBB(value)
	}
}

// writeG loads G, applying the shift editing of the edit registers.
func (cpu *Cpu) writeG(value uint16) {
	switch cpu.S {
	case REG_CYR:
		value = (value >> 1) | (value << 15)
	case REG_SR:
		value = (value >> 1) | (value & word.BIT_16)
	case REG_CYL:
		value = (value << 1) | (value >> 15)
	case REG_EDOP:
		value = (value >> 7) & 0x7f
	}
	cpu.G = value
}

func (cpu *Cpu) setY(value uint16) {
	cpu.X = 0
	cpu.Y = value
	cpu.Carry = false
}

func (cpu *Cpu) dvActive() bool {
	return cpu.DVStage != 0
}

// zip selects the next multiply partial product from the low bits of L
// and the pending carry in bit 15 of L.
func (cpu *Cpu) zip() {
	state := (cpu.L>>12)&0x4 | cpu.L&0x3
	switch state {
	case 0:
		cpu.setY(0)
		cpu.MCRO = false
	case 1, 4:
		cpu.read(cpu.B)
		cpu.setY(cpu.Bus)
		cpu.MCRO = false
	case 2, 5:
		cpu.read(cpu.B)
		cpu.pulseWYD()
		cpu.MCRO = false
	case 3, 6:
		cpu.read(^cpu.B)
		cpu.setY(cpu.Bus)
		cpu.Carry = true
		cpu.MCRO = true
	case 7:
		cpu.setY(0)
		cpu.MCRO = true
	default:
		panic(&ErrTableDefect{Name: ZIP.String(), Err: ErrZipState})
	}

	cpu.X = cpu.A

	// L2GD
	cpu.pulseL2GD()
}

func (cpu *Cpu) pulseWYD() {
	bus := cpu.Bus
	y := word.CopyBits(bus, 0, word.Bits(1, 14), word.Bits(2, 15), word.CLEAR_ALL)
	y |= bus & word.BIT_16
	endAround := !cpu.NoEAC && !cpu.dvActive() && !(cpu.PIFL && (cpu.L&word.BIT_15) != 0)
	if endAround {
		y |= bus >> 15
	}
	cpu.setY(y)
}

func (cpu *Cpu) pulseL2GD() {
	g := word.CopyBits(cpu.L, 0, word.Bits(1, 14), word.Bits(2, 15), word.CLEAR_ALL)
	g = word.CopyBits(cpu.L, g, word.Bits(16, 16), word.Bits(16, 16), word.CLEAR_NONE)
	if cpu.MCRO {
		g |= word.BIT_1
	}
	cpu.G = g
}

func (cpu *Cpu) pulseG2LS() {
	l := word.CopyBits(cpu.G, cpu.L, word.Bits(4, 15), word.Bits(1, 12), word.CLEAR_CHANGED)
	l = word.CopyBits(cpu.G, l, word.Bits(16, 16), word.Bits(16, 16), word.CLEAR_CHANGED)
	l = word.CopyBits(cpu.G, l, word.Bits(1, 1), word.Bits(15, 15), word.CLEAR_CHANGED)
	cpu.L = l
}

func (cpu *Cpu) pulseWALS() {
	bus := cpu.Bus
	a := word.CopyBits(bus, 0, word.Bits(3, 16), word.Bits(1, 14), word.CLEAR_ALL)
	cpu.L = word.CopyBits(bus, cpu.L, word.Bits(1, 2), word.Bits(13, 14), word.CLEAR_CHANGED)

	sign := bus & word.BIT_16
	if (cpu.G & word.BIT_1) == 0 {
		sign = cpu.G & word.BIT_16
	}
	a |= sign | (sign >> 1)
	cpu.A = a
}

// dvSign records the quotient and remainder signs and replaces the
// dividend and divisor with their magnitudes.
func (cpu *Cpu) dvSign() {
	negDividend := (cpu.A & word.BIT_16) != 0
	if cpu.A == 0 || cpu.A == word.NEG_ZERO {
		negDividend = (cpu.L & word.BIT_16) != 0
	}
	negDivisor := (cpu.G & word.BIT_16) != 0

	a, l, g := cpu.A, cpu.L, cpu.G
	if negDividend {
		a, l = ^a, ^l
	}
	if negDivisor {
		g = ^g
	}

	cpu.A = a & word.MASK_1_14
	cpu.L = l & word.MASK_1_14
	cpu.B = g & word.MASK_1_14

	cpu.dvNegQuotient = negDividend != negDivisor
	cpu.dvNegRemainder = negDividend
}

// dvStep develops one quotient bit by restoring division of A:L by B.
func (cpu *Cpu) dvStep() {
	rem := uint32(cpu.A)<<1 | uint32(cpu.L>>13)&1
	cpu.L = (cpu.L << 1) & word.MASK_1_14
	if rem >= uint32(cpu.B) {
		rem -= uint32(cpu.B)
		cpu.L |= word.BIT_1
	}
	cpu.A = uint16(rem)
}

func (cpu *Cpu) dvFinish() {
	quotient, remainder := cpu.L, cpu.A
	if cpu.dvNegQuotient {
		quotient = word.Negate(quotient)
	}
	if cpu.dvNegRemainder {
		remainder = word.Negate(remainder)
	}
	cpu.A = quotient
	cpu.L = remainder
	cpu.DVStage = 0
}

// Execute performs a single control pulse.
func (cpu *Cpu) Execute(pulse Pulse) (err error) {
	switch pulse {
	// Bus reads
	case RA:
		cpu.read(cpu.A)
	case RB:
		cpu.read(cpu.B)
	case RC:
		cpu.read(^cpu.B)
	case RG:
		cpu.read(cpu.G)
	case RL:
		cpu.read(word.SignCompress(cpu.L, false))
	case RL10BB:
		cpu.read(cpu.B & word.MASK_1_10)
	case RQ:
		cpu.read(cpu.Q)
	case RZ:
		cpu.read(cpu.Z)
	case RU:
		cpu.read(cpu.AdderOutput())
	case RUS:
		sum := cpu.AdderOutput()
		cpu.read(sum | ((sum << 1) & word.BIT_16))
	case RSC:
		value, ok := cpu.readCentral(cpu.S)
		if ok {
			cpu.read(value)
		}
	case RCH:
		channel := uint8(cpu.S & 0x3f)
		switch cpu.S {
		case REG_L:
			cpu.read(word.SignCompress(cpu.L, false))
		case REG_Q:
			cpu.read(cpu.Q)
		default:
			cpu.read(word.SignCompress(cpu.Channels.Read(channel), false))
		}

	// Forced bus values
	case R1C:
		cpu.force(word.NEG_ZERO &^ word.BIT_1)
	case RB1:
		cpu.force(word.BIT_1)
	case RSTRT:
		cpu.force(ADDR_RESTART)
	case R15:
		cpu.force(015)

	// Register writes
	case WA:
		cpu.A = cpu.Bus
	case WB:
		cpu.B = cpu.Bus
	case WG:
		cpu.writeG(cpu.Bus)
	case WL:
		cpu.L = cpu.Bus
	case WQ:
		cpu.Q = cpu.Bus
	case WZ:
		cpu.Z = cpu.Bus
	case WS:
		cpu.S = cpu.Bus & ADDR_MASK
	case WSC:
		cpu.writeCentral(cpu.S, cpu.Bus)
	case WCH:
		channel := uint8(cpu.S & 0x3f)
		switch cpu.S {
		case REG_L:
			cpu.L = cpu.Bus
		case REG_Q:
			cpu.Q = cpu.Bus
		default:
			err = cpu.Channels.Write(channel, word.SignCompress(cpu.Bus, false))
		}
	case WOVR:

	// Adder setup
	case WY:
		cpu.setY(cpu.Bus)
	case WY12:
		cpu.setY(cpu.Bus & word.MASK_1_12)
	case WYD:
		cpu.pulseWYD()
	case WX:
		cpu.X = cpu.Bus
	case A2X:
		cpu.X = cpu.A
	case CI:
		cpu.Carry = true
	case MONEX:
		cpu.X |= word.NEG_ZERO &^ word.BIT_1
	case PONEX:
		cpu.X |= 1
	case PTWOX:
		cpu.X |= 2
	case B15X:
		cpu.X |= word.BIT_15
	case NEACON:
		cpu.NoEAC = true
	case NEACOF:
		cpu.NoEAC = false

	// Branch tests
	case TSGN:
		cpu.BR1 = (cpu.Bus & word.BIT_16) != 0
	case TSGN2:
		cpu.BR2 = (cpu.Bus & word.BIT_16) != 0
	case TSGU:
		cpu.BR1 = (cpu.AdderOutput() & word.BIT_16) != 0
	case TMZ:
		cpu.BR2 = cpu.Bus == word.NEG_ZERO
	case TOV:
		positive, negative := word.Overflow(cpu.Bus)
		cpu.BR1 = negative
		cpu.BR2 = positive
	case TPZG:
		if cpu.G == 0 {
			cpu.BR2 = true
		}
	case TL15:
		cpu.BR1 = (cpu.L & word.BIT_15) != 0
	case TRSM:
		if cpu.S == REG_BRUPT {
			cpu.STNext |= 2
		}

	// Sequencing
	case ST1:
		cpu.STNext |= 1
	case ST2:
		cpu.STNext |= 2
	case EXT:
		cpu.ExtendNext = true
	case NISQ:
		cpu.NextInstruction = true
		cpu.InhibitInterrupts = false
	case RAD:
		switch cpu.G {
		case PSEUDO_RELINT:
			cpu.Inhint = false
		case PSEUDO_INHINT:
			cpu.Inhint = true
		case PSEUDO_EXTEND:
			cpu.ExtendNext = true
		default:
			cpu.read(cpu.G)
			return
		}
		cpu.read(cpu.Z)
		cpu.STNext |= 2

	// Multiply
	case L16:
		cpu.L |= word.BIT_16
	case G2LS:
		cpu.pulseG2LS()
	case L2GD:
		cpu.pulseL2GD()
	case WALS:
		cpu.pulseWALS()
	case ZIP:
		cpu.zip()
	case ZAP:
		cpu.read(cpu.AdderOutput())
		cpu.pulseG2LS()
		cpu.pulseWALS()

	// Divide
	case DVSIGN:
		cpu.dvSign()
	case DVSTEP:
		cpu.dvStep()
	case DVFIN:
		cpu.dvFinish()
	case DVST:
		cpu.DVSequence = true
		cpu.DVStage = divideNext[cpu.DVStage&0x7]

	default:
		panic(&ErrTableDefect{Name: pulse.String(), Err: ErrInvalidPulse})
	}

	return
}
