package timeline

import "fmt"

// SetHigh drives the pin high for lengthNs starting at startNs.
func (t *Timeline) SetHigh(pin int, startNs, lengthNs int64) error {
	return t.SetInterval(pin, startNs, lengthNs, true)
}

// SetLow drives the pin low for lengthNs starting at startNs.
func (t *Timeline) SetLow(pin int, startNs, lengthNs int64) error {
	return t.SetInterval(pin, startNs, lengthNs, false)
}

// SetInterval overwrites the pin's samples covering [startNs, startNs+lengthNs)
// with the given level. Both times must be resolution-aligned and the interval
// must stay within the cycle. A zero-length interval is a no-op.
func (t *Timeline) SetInterval(pin int, startNs, lengthNs int64, high bool) error {
	ch, ok := t.index[pin]
	if !ok {
		return &ArgumentError{Pin: pin, Reason: "not declared on this timeline"}
	}
	if startNs%t.resolutionNs != 0 {
		return &AlignmentError{Field: "start time", ValueNs: startNs, ResolutionNs: t.resolutionNs}
	}
	if lengthNs%t.resolutionNs != 0 {
		return &AlignmentError{Field: "length", ValueNs: lengthNs, ResolutionNs: t.resolutionNs}
	}

	start := int(startNs / t.resolutionNs)
	stop := start + int(lengthNs/t.resolutionNs)
	if start < 0 || start > t.sampleCount {
		return &RangeError{Field: "start", Sample: start, SampleCount: t.sampleCount}
	}
	if stop < start || stop > t.sampleCount {
		return &RangeError{Field: "stop", Sample: stop, SampleCount: t.sampleCount}
	}

	row := t.rows[ch]
	for i := start; i < stop; i++ {
		row[i] = high
	}
	return nil
}

// GenerateClock paints a 50% duty-cycle clock with the given period onto the
// pin, starting at time zero. Full periods are painted until the next one
// would run past the end of the cycle; any shorter remainder keeps whatever
// state the pin already had. Callers relying on a defined tail level must
// paint it explicitly.
func (t *Timeline) GenerateClock(pin int, periodNs int64) error {
	if periodNs/2 < t.minimumPulseNs {
		return &ConstraintError{
			PeriodNs:       periodNs,
			MinimumPulseNs: t.minimumPulseNs,
			ResolutionNs:   t.resolutionNs,
			Reason:         fmt.Sprintf("half-period is shorter than the %dns minimum pulse", t.minimumPulseNs),
		}
	}
	if periodNs%(2*t.resolutionNs) != 0 {
		return &ConstraintError{
			PeriodNs:       periodNs,
			MinimumPulseNs: t.minimumPulseNs,
			ResolutionNs:   t.resolutionNs,
			Reason:         fmt.Sprintf("not a multiple of %dns (twice the resolution)", 2*t.resolutionNs),
		}
	}

	half := periodNs / 2
	for cursor := int64(0); cursor+periodNs <= t.cycleLengthNs; cursor += periodNs {
		if err := t.SetHigh(pin, cursor, half); err != nil {
			return err
		}
		if err := t.SetLow(pin, cursor+half, half); err != nil {
			return err
		}
	}
	return nil
}
