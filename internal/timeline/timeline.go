package timeline

import "fmt"

// MaxPin is the highest addressable output pin. The combined output flag for
// a column must fit a uint32.
const MaxPin = 31

// Timeline is the per-cycle sample grid for one pulse program.
type Timeline struct {
	resolutionNs   int64
	cycleLengthNs  int64
	minimumPulseNs int64
	sampleCount    int

	// pins in declaration order; rows is indexed in the same order.
	pins  []int
	rows  [][]bool
	index map[int]int
}

// New creates an all-low Timeline for the given device limits and pin set.
// The cycle length must be a positive multiple of the resolution, and every
// pin must be unique and within [0, MaxPin].
func New(resolutionNs, cycleLengthNs, minimumPulseNs int64, pins []int) (*Timeline, error) {
	if resolutionNs <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %dns", resolutionNs)
	}
	if cycleLengthNs <= 0 {
		return nil, fmt.Errorf("cycle length must be positive, got %dns", cycleLengthNs)
	}
	if cycleLengthNs%resolutionNs != 0 {
		return nil, &AlignmentError{Field: "cycle length", ValueNs: cycleLengthNs, ResolutionNs: resolutionNs}
	}
	if minimumPulseNs < resolutionNs {
		return nil, fmt.Errorf("minimum pulse %dns is shorter than the %dns resolution", minimumPulseNs, resolutionNs)
	}

	t := &Timeline{
		resolutionNs:   resolutionNs,
		cycleLengthNs:  cycleLengthNs,
		minimumPulseNs: minimumPulseNs,
		sampleCount:    int(cycleLengthNs / resolutionNs),
		index:          make(map[int]int, len(pins)),
	}
	for _, pin := range pins {
		if pin < 0 || pin > MaxPin {
			return nil, &ArgumentError{Pin: pin, Reason: fmt.Sprintf("outside the valid range [0, %d]", MaxPin)}
		}
		if _, dup := t.index[pin]; dup {
			return nil, &ArgumentError{Pin: pin, Reason: "declared twice"}
		}
		t.index[pin] = len(t.pins)
		t.pins = append(t.pins, pin)
		t.rows = append(t.rows, make([]bool, t.sampleCount))
	}
	return t, nil
}

// ResolutionNs returns the sampling granularity in nanoseconds.
func (t *Timeline) ResolutionNs() int64 { return t.resolutionNs }

// CycleLengthNs returns the duration of one program cycle in nanoseconds.
func (t *Timeline) CycleLengthNs() int64 { return t.cycleLengthNs }

// MinimumPulseNs returns the hardware minimum pulse width in nanoseconds.
func (t *Timeline) MinimumPulseNs() int64 { return t.minimumPulseNs }

// SampleCount returns the number of columns in the grid.
func (t *Timeline) SampleCount() int { return t.sampleCount }

// NumChannels returns the number of declared pins.
func (t *Timeline) NumChannels() int { return len(t.pins) }

// Pins returns the declared pins in declaration order.
func (t *Timeline) Pins() []int {
	out := make([]int, len(t.pins))
	copy(out, t.pins)
	return out
}

// Row returns a copy of the sample row for the given pin.
func (t *Timeline) Row(pin int) ([]bool, error) {
	ch, ok := t.index[pin]
	if !ok {
		return nil, &ArgumentError{Pin: pin, Reason: "not declared on this timeline"}
	}
	out := make([]bool, t.sampleCount)
	copy(out, t.rows[ch])
	return out, nil
}

// ColumnEqual reports whether columns i and j hold the same state on every
// channel.
func (t *Timeline) ColumnEqual(i, j int) bool {
	for _, row := range t.rows {
		if row[i] != row[j] {
			return false
		}
	}
	return true
}

// ChangedPins returns the pins whose state differs between column i-1 and
// column i, in declaration order. Column 0 has no predecessor and always
// returns nil.
func (t *Timeline) ChangedPins(i int) []int {
	if i <= 0 {
		return nil
	}
	var changed []int
	for ch, row := range t.rows {
		if row[i] != row[i-1] {
			changed = append(changed, t.pins[ch])
		}
	}
	return changed
}

// Flags returns the combined output flag for column i: the bitwise OR of
// 1<<pin for every pin that is high in that column.
func (t *Timeline) Flags(i int) uint32 {
	var flags uint32
	for ch, row := range t.rows {
		if row[i] {
			flags |= 1 << uint(t.pins[ch])
		}
	}
	return flags
}
