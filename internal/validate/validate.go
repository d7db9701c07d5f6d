// Package validate scans a finished timeline for output runs shorter than
// the hardware minimum pulse width.
//
// The scan treats each sample index as a column vector across all channels
// and measures streaks: maximal runs of identical columns. Every streak
// becomes one hardware instruction downstream, so a streak shorter than the
// minimum pulse width cannot be executed. The scan always runs to completion
// and collects the full diagnostic picture before failing; it is the primary
// debugging aid for users who cannot otherwise see why a sequence was
// rejected.
package validate

import (
	"fmt"

	"github.com/vk/pulsegridgo/internal/timeline"
)

// ConstraintError reports the shortest streak found in a timeline that
// violates the minimum pulse width, with enough context to locate it.
type ConstraintError struct {
	// ShortestNs is the duration of the shortest streak observed.
	ShortestNs int64
	// MinimumNs is the hardware minimum pulse width.
	MinimumNs int64
	// StartNs and StartIndex locate where the shortest streak begins.
	StartNs    int64
	StartIndex int
	// ChangeIndices lists every sample index at which any channel changed.
	ChangeIndices []int
	// StartPins and EndPins name the pins that changed at the shortest
	// streak's boundaries. A nil slice means the boundary is the timeline
	// edge (initial or final state) rather than a real transition.
	StartPins []int
	EndPins   []int
}

// Error implements the error interface for ConstraintError.
func (e *ConstraintError) Error() string {
	start := "initial state"
	if len(e.StartPins) > 0 {
		start = fmt.Sprint(e.StartPins)
	}
	end := "final state"
	if len(e.EndPins) > 0 {
		end = fmt.Sprint(e.EndPins)
	}
	return fmt.Sprintf(
		"instruction duration %dns shorter than required %dns starting at time %dns (index %d); "+
			"instructions changed at indices %v; pins changed at instruction start: %s; pins changed at instruction end: %s",
		e.ShortestNs, e.MinimumNs, e.StartNs, e.StartIndex, e.ChangeIndices, start, end)
}

// Check returns nil when every streak in the timeline is at least the
// hardware minimum pulse width, and a *ConstraintError otherwise. The
// timeline is never mutated.
func Check(tl *timeline.Timeline) error {
	if tl.NumChannels() == 0 {
		return nil
	}

	minSpan := int(tl.MinimumPulseNs() / tl.ResolutionNs())
	n := tl.SampleCount()

	streak := 1
	streakStart := 0
	minStreak := n + 1
	minStreakIndex := 0
	var changeIndices []int
	var startPins, endPins []int

	record := func(endIndex int) {
		minStreak = streak
		minStreakIndex = streakStart
		startPins = tl.ChangedPins(streakStart)
		if endIndex < n {
			endPins = tl.ChangedPins(endIndex)
		} else {
			endPins = nil
		}
	}

	for i := 1; i < n; i++ {
		if tl.ColumnEqual(i, i-1) {
			streak++
			continue
		}
		if streak < minStreak {
			record(i)
		}
		changeIndices = append(changeIndices, i)
		streakStart = i
		streak = 1
	}
	if streak < minStreak {
		record(n)
	}

	if minStreak < minSpan {
		return &ConstraintError{
			ShortestNs:    int64(minStreak) * tl.ResolutionNs(),
			MinimumNs:     tl.MinimumPulseNs(),
			StartNs:       int64(minStreakIndex) * tl.ResolutionNs(),
			StartIndex:    minStreakIndex,
			ChangeIndices: changeIndices,
			StartPins:     startPins,
			EndPins:       endPins,
		}
	}
	return nil
}
