package app

import (
	"fmt"

	"github.com/vk/pulsegridgo/internal/config"
	"github.com/vk/pulsegridgo/internal/timeline"
)

// buildTimeline paints the program model onto a fresh timeline and collects
// the per-pin phase offsets. Channel declaration order defines row order;
// paints apply in file order.
func buildTimeline(m *config.Model) (*timeline.Timeline, map[int]int64, error) {
	pins := make([]int, 0, len(m.Channels))
	for _, ch := range m.Channels {
		pins = append(pins, ch.Pin)
	}

	tl, err := timeline.New(m.Device.ResolutionNs, m.Cycle.LengthNs, m.Device.MinimumPulseNs, pins)
	if err != nil {
		return nil, nil, err
	}

	offsets := make(map[int]int64)
	for _, ch := range m.Channels {
		if ch.OffsetNs != 0 {
			offsets[ch.Pin] = ch.OffsetNs
		}
		for _, p := range ch.Paints {
			var err error
			switch p.Kind {
			case config.PaintHigh:
				err = tl.SetHigh(ch.Pin, p.StartNs, p.LengthNs)
			case config.PaintLow:
				err = tl.SetLow(ch.Pin, p.StartNs, p.LengthNs)
			case config.PaintClock:
				err = tl.GenerateClock(ch.Pin, p.PeriodNs)
			}
			if err != nil {
				return nil, nil, fmt.Errorf("channel %q: %w", ch.Name, err)
			}
		}
	}
	return tl, offsets, nil
}
