package timeline

import "fmt"

// ShiftSplit derives the three sub-timelines needed to play this cycle with
// per-pin phase offsets: a lead-in prefix, a repeatable steady-state body,
// and a tail suffix that lets every pin finish its final full cycle.
//
// A pin with offset o plays its programmed pattern delayed by o nanoseconds
// and is held low before its first cycle begins and after its last one ends.
// The prefix spans the largest offset, the body and suffix each span one full
// cycle. Offsets must be resolution-aligned and within [0, cycle length);
// pins without an entry in offsets default to zero. At least one offset must
// be nonzero.
//
// Each returned timeline is independent: the caller validates and compiles
// them separately and concatenates the results.
func (t *Timeline) ShiftSplit(offsets map[int]int64) (prefix, body, suffix *Timeline, err error) {
	shift := make([]int, len(t.pins))
	maxShift := 0
	for pin, offsetNs := range offsets {
		ch, ok := t.index[pin]
		if !ok {
			return nil, nil, nil, &ArgumentError{Pin: pin, Reason: "not declared on this timeline"}
		}
		if offsetNs%t.resolutionNs != 0 {
			return nil, nil, nil, &AlignmentError{Field: "offset", ValueNs: offsetNs, ResolutionNs: t.resolutionNs}
		}
		s := int(offsetNs / t.resolutionNs)
		if s < 0 || s >= t.sampleCount {
			return nil, nil, nil, &RangeError{Field: "offset", Sample: s, SampleCount: t.sampleCount}
		}
		shift[ch] = s
		if s > maxShift {
			maxShift = s
		}
	}
	if maxShift == 0 {
		return nil, nil, nil, fmt.Errorf("shift split requires at least one nonzero offset")
	}

	prefix, err = New(t.resolutionNs, int64(maxShift)*t.resolutionNs, t.minimumPulseNs, t.pins)
	if err != nil {
		return nil, nil, nil, err
	}
	body, err = New(t.resolutionNs, t.cycleLengthNs, t.minimumPulseNs, t.pins)
	if err != nil {
		return nil, nil, nil, err
	}
	suffix, err = New(t.resolutionNs, t.cycleLengthNs, t.minimumPulseNs, t.pins)
	if err != nil {
		return nil, nil, nil, err
	}

	n := t.sampleCount
	for ch := range t.pins {
		o := shift[ch]
		src := t.rows[ch]

		// Lead-in: low until the pin's own offset, then the pattern head.
		for s := o; s < maxShift; s++ {
			prefix.rows[ch][s] = src[s-o]
		}

		// Steady state: the pattern rotated so it lines up with the
		// position each pin reached at the end of the prefix.
		for s := 0; s < n; s++ {
			body.rows[ch][s] = src[(maxShift+s-o)%n]
		}

		// Tail: keep playing until the final cycle completes, then low.
		owed := n - maxShift + o
		for s := 0; s < owed; s++ {
			suffix.rows[ch][s] = src[(maxShift+s-o)%n]
		}
	}
	return prefix, body, suffix, nil
}
