// Package hcl loads pulse programs written in HCL and translates them into
// the format-agnostic config model.
//
// A program consists of one device block, one cycle block, and any number of
// labeled channel blocks. Channel bodies hold high, low and clock blocks
// that are applied in source order. All time attributes are expressions
// evaluated against an eval context that provides the time-unit constants
// ns, us, ms and s, so durations can be written as `period = 400 * ns`.
package hcl
