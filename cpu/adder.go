package cpu

// Adder is the one's complement adder. The sum is taken modulo 2^16, and
// the carry out of bit 16 is added back into bit 1 unless noEAC is set.
// An explicit carry adds one more, but never twice.
func Adder(x, y uint16, carry, noEAC bool) uint16 {
	sum := uint32(x) + uint32(y)
	if carry || (!noEAC && sum > 0xffff) {
		sum = uint32(uint16(sum)) + 1
	}

	return uint16(sum)
}

// AdderOutput is the current adder output for the X, Y and carry latches.
func (cpu *Cpu) AdderOutput() uint16 {
	return Adder(cpu.X, cpu.Y, cpu.Carry, cpu.NoEAC)
}
