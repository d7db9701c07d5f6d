package compile

import "fmt"

// Opcode is a hardware control opcode attached to an instruction.
type Opcode int

// Opcodes understood by the sequencer. OpContinue is plain sequential
// execution; OpLoop opens a loop body with a repeat count; OpEndLoop closes
// it and references the OpLoop instruction by index; OpBranch jumps back
// unconditionally for infinite repetition; OpStop halts the device.
const (
	OpContinue Opcode = iota
	OpLoop
	OpEndLoop
	OpBranch
	OpStop
)

// String implements fmt.Stringer for Opcode.
func (o Opcode) String() string {
	switch o {
	case OpContinue:
		return "CONTINUE"
	case OpLoop:
		return "LOOP"
	case OpEndLoop:
		return "END_LOOP"
	case OpBranch:
		return "BRANCH"
	case OpStop:
		return "STOP"
	default:
		return fmt.Sprintf("Opcode(%d)", int(o))
	}
}

// Instruction is one compiled sequencer instruction. Flags is the bitmask of
// pins held high for DurationNs. Operand carries the repeat count for OpLoop
// and the target instruction index for OpEndLoop and OpBranch; it is zero for
// every other opcode.
type Instruction struct {
	Flags      uint32
	Op         Opcode
	Operand    int64
	DurationNs int64
}

// String implements fmt.Stringer for Instruction.
func (in Instruction) String() string {
	return fmt.Sprintf("pb_inst(0x%x, %s, %d, %d)", in.Flags, in.Op, in.Operand, in.DurationNs)
}

// Program is an ordered, append-only instruction sequence. Instructions must
// be submitted to the device in list order: loop-back operands are indices
// into this sequence.
type Program []Instruction

// TotalDurationNs returns the wall-clock duration of a single pass over the
// program, counting an OpLoop body once.
func (p Program) TotalDurationNs() int64 {
	var total int64
	for _, in := range p {
		total += in.DurationNs
	}
	return total
}

// LoopCount is the number of times the device repeats the programmed cycle.
type LoopCount int64

// Infinite repeats the cycle until the device is stopped externally.
const Infinite LoopCount = -1

// String implements fmt.Stringer for LoopCount.
func (c LoopCount) String() string {
	if c == Infinite {
		return "infinite"
	}
	return fmt.Sprintf("%d", int64(c))
}

// ArgumentError reports an invalid loop count.
type ArgumentError struct {
	Loops LoopCount
}

// Error implements the error interface for ArgumentError.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("loop count must be a positive integer or infinite, got %d", int64(e.Loops))
}
