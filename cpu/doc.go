// Package cpu implements the control pulse level processor of the
// Block II guidance computer, and an assembler for its instruction set.
//
// The processor is driven one time pulse at a time by Tick. Each memory
// cycle is twelve time pulses. Subinstructions, selected from a decode
// table keyed by stage, extend flag and the opcode bits of B, queue lists
// of control pulses against those time pulses. Control pulses move values
// between registers over a write bus that is cleared after every pulse.
//
// Erasable memory is read destructively at time pulse 4 and written back
// at time pulse 9. Fixed memory is read at time pulse 4.
package cpu
