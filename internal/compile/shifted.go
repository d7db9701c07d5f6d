package compile

import (
	"fmt"

	"github.com/vk/pulsegridgo/internal/timeline"
	"github.com/vk/pulsegridgo/internal/validate"
)

// CompileShifted compiles a timeline whose pins carry individual phase
// offsets. The cycle is split into three independent segments: a lead-in
// prefix covering the largest offset, a steady-state body that repeats, and
// a tail suffix during which every pin finishes its final cycle. Each
// segment is validated and compiled on its own, then concatenated with the
// loop-back operands rebased onto the combined program.
//
// Every pin plays its pattern exactly loops times, delayed by its offset.
// With Infinite loops the program has no suffix; the final instruction
// branches back to the first body instruction. Pins absent from offsets
// default to zero; when no offset is nonzero the call is equivalent to
// Compile and the timeline is assumed pre-validated as usual.
func CompileShifted(tl *timeline.Timeline, offsets map[int]int64, loops LoopCount) (Program, error) {
	if loops != Infinite && loops < 1 {
		return nil, &ArgumentError{Loops: loops}
	}
	if !anyNonzero(offsets) || tl.NumChannels() == 0 {
		return Compile(tl, loops)
	}

	prefix, body, suffix, err := tl.ShiftSplit(offsets)
	if err != nil {
		return nil, err
	}
	segments := []struct {
		name string
		tl   *timeline.Timeline
	}{{"prefix", prefix}, {"body", body}, {"suffix", suffix}}
	for _, seg := range segments {
		if err := validate.Check(seg.tl); err != nil {
			return nil, fmt.Errorf("shifted %s segment: %w", seg.name, err)
		}
	}

	prog, err := Compile(prefix, 1)
	if err != nil {
		return nil, err
	}

	if loops == Infinite {
		bodyProg, err := Compile(body, Infinite)
		if err != nil {
			return nil, err
		}
		return append(prog, rebase(bodyProg, len(prog))...), nil
	}

	// Finite: the prefix and suffix together carry one full play of every
	// pin, so the body repeats the remaining loops-1 times.
	if loops > 1 {
		bodyProg, err := Compile(body, loops-1)
		if err != nil {
			return nil, err
		}
		prog = append(prog, rebase(bodyProg, len(prog))...)
	}
	suffixProg, err := Compile(suffix, 1)
	if err != nil {
		return nil, err
	}
	return append(prog, suffixProg...), nil
}

// rebase shifts the index operands of loop-back instructions by the position
// the segment takes in the combined program. Loop repeat counts are left
// untouched.
func rebase(seg Program, base int) Program {
	for i := range seg {
		switch seg[i].Op {
		case OpEndLoop, OpBranch:
			seg[i].Operand += int64(base)
		}
	}
	return seg
}

func anyNonzero(offsets map[int]int64) bool {
	for _, o := range offsets {
		if o != 0 {
			return true
		}
	}
	return false
}
