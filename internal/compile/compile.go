package compile

import (
	"github.com/vk/pulsegridgo/internal/timeline"
)

// run is a maximal stretch of identical sample columns.
type run struct {
	start, end int // sample indices, half-open
}

// Compile converts a timeline into a program that plays the cycle the given
// number of times. The timeline must already have passed validation; Compile
// does not re-check pulse widths. A timeline with no declared channels
// compiles to an empty program.
func Compile(tl *timeline.Timeline, loops LoopCount) (Program, error) {
	if loops != Infinite && loops < 1 {
		return nil, &ArgumentError{Loops: loops}
	}
	if tl.NumChannels() == 0 {
		return nil, nil
	}

	runs := collectRuns(tl)
	res := tl.ResolutionNs()

	prog := make(Program, 0, len(runs))
	for _, r := range runs {
		prog = append(prog, Instruction{
			Flags:      tl.Flags(r.start),
			Op:         OpContinue,
			DurationNs: int64(r.end-r.start) * res,
		})
	}

	switch {
	case loops == Infinite:
		// Jump back to the program head forever. A homogeneous cycle
		// compiles to a single instruction branching to itself.
		prog[len(prog)-1].Op = OpBranch
		prog[len(prog)-1].Operand = 0
	case loops > 1:
		if len(prog) == 1 {
			// A homogeneous cycle cannot carry both the loop head and
			// its END_LOOP tail; stretch the single instruction instead.
			prog[0].DurationNs *= int64(loops)
			break
		}
		prog[0].Op = OpLoop
		prog[0].Operand = int64(loops)
		prog[len(prog)-1].Op = OpEndLoop
		prog[len(prog)-1].Operand = 0
	}
	return prog, nil
}

// collectRuns walks the sample columns once and returns the maximal runs of
// identical column vectors, in time order.
func collectRuns(tl *timeline.Timeline) []run {
	n := tl.SampleCount()
	var runs []run
	start := 0
	for i := 1; i < n; i++ {
		if !tl.ColumnEqual(i, i-1) {
			runs = append(runs, run{start: start, end: i})
			start = i
		}
	}
	return append(runs, run{start: start, end: n})
}
