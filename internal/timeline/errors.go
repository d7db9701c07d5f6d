package timeline

import "fmt"

// AlignmentError reports a time value that does not fall on the resolution grid.
type AlignmentError struct {
	Field        string
	ValueNs      int64
	ResolutionNs int64
}

// Error implements the error interface for AlignmentError.
func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%s %dns is not a multiple of the %dns resolution", e.Field, e.ValueNs, e.ResolutionNs)
}

// RangeError reports an interval that falls outside the timeline bounds.
type RangeError struct {
	Field       string
	Sample      int
	SampleCount int
}

// Error implements the error interface for RangeError.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s sample %d is outside the valid range [0, %d]", e.Field, e.Sample, e.SampleCount)
}

// ArgumentError reports a malformed channel set or a reference to an
// undeclared pin.
type ArgumentError struct {
	Pin    int
	Reason string
}

// Error implements the error interface for ArgumentError.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("pin %d: %s", e.Pin, e.Reason)
}

// ConstraintError reports a requested clock that the hardware timing limits
// cannot express. Violations found by scanning a finished grid are reported
// by the validate package instead.
type ConstraintError struct {
	PeriodNs       int64
	MinimumPulseNs int64
	ResolutionNs   int64
	Reason         string
}

// Error implements the error interface for ConstraintError.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("clock period %dns: %s", e.PeriodNs, e.Reason)
}
