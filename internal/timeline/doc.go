// Package timeline holds the per-cycle sample grid for a pulse program and
// the builder operations that paint intervals onto it.
//
// A Timeline is a fixed grid of boolean samples: one row per declared
// hardware pin, one column per resolution step of the cycle. All builder
// mutations are resolution-aligned and bounds-checked; the grid is consumed
// downstream by the validator and the instruction compiler.
//
// A Timeline is not safe for concurrent mutation. One logical builder owns
// it until it is handed off for validation and compilation.
package timeline
