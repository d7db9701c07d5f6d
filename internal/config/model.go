package config

// InfiniteLoops is the Loops sentinel for a program that repeats until the
// device is stopped externally.
const InfiniteLoops int64 = -1

// Model is the unified, format-agnostic representation of one pulse program.
type Model struct {
	Device   Device
	Cycle    Cycle
	Channels []*Channel // declaration order defines grid row order
}

// Device holds the timing limits of the target sequencer hardware.
type Device struct {
	// ResolutionNs is the sampling granularity of the instruction grid.
	ResolutionNs int64
	// MinimumPulseNs is the shortest output pulse the hardware can execute.
	MinimumPulseNs int64
}

// Cycle holds the repetition parameters of the program.
type Cycle struct {
	// LengthNs is the duration of one cycle; a multiple of the resolution.
	LengthNs int64
	// Loops is the repeat count, or InfiniteLoops.
	Loops int64
	// StopAfter appends a STOP trailer after a finite program.
	StopAfter bool
}

// PaintKind discriminates the builder operation a Paint represents.
type PaintKind int

// Paint operation kinds.
const (
	PaintHigh PaintKind = iota
	PaintLow
	PaintClock
)

// Paint is one builder operation on a channel. Paints apply in file order;
// later paints overwrite earlier ones where they overlap.
type Paint struct {
	Kind     PaintKind
	StartNs  int64 // high/low only
	LengthNs int64 // high/low only
	PeriodNs int64 // clock only
}

// Channel is one named output pin and its ordered paint operations.
type Channel struct {
	Name     string
	Pin      int
	OffsetNs int64 // per-channel phase offset; zero means unshifted
	Paints   []Paint
}
