// Package compile turns a validated timeline into the run-length-encoded
// instruction list a pulse sequencer executes.
//
// Each maximal run of identical sample columns becomes one instruction
// carrying the combined output flag of the run and its duration. Loop and
// branch control is attached according to the requested repeat count, with
// back-references expressed as explicit indices into the emitted program so
// that multi-segment programs can be concatenated with simple rebasing.
package compile
