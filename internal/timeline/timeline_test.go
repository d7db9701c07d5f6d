package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimeline(t *testing.T, pins ...int) *Timeline {
	t.Helper()
	tl, err := New(10, 4000, 50, pins)
	require.NoError(t, err)
	return tl
}

func TestNew(t *testing.T) {
	t.Run("derives sample count from cycle length", func(t *testing.T) {
		tl, err := New(10, 4000, 50, []int{0, 3})
		require.NoError(t, err)
		assert.Equal(t, 400, tl.SampleCount())
		assert.Equal(t, int64(10), tl.ResolutionNs())
		assert.Equal(t, int64(4000), tl.CycleLengthNs())
		assert.Equal(t, []int{0, 3}, tl.Pins())
		assert.Equal(t, 2, tl.NumChannels())
	})

	t.Run("rejects misaligned cycle length", func(t *testing.T) {
		_, err := New(10, 4005, 50, []int{0})
		var alignErr *AlignmentError
		require.ErrorAs(t, err, &alignErr)
		assert.Equal(t, int64(4005), alignErr.ValueNs)
	})

	t.Run("rejects invalid device limits", func(t *testing.T) {
		_, err := New(0, 4000, 50, []int{0})
		assert.Error(t, err)

		_, err = New(10, 0, 50, []int{0})
		assert.Error(t, err)

		_, err = New(10, 4000, 5, []int{0})
		assert.ErrorContains(t, err, "minimum pulse")
	})

	t.Run("rejects malformed pin sets", func(t *testing.T) {
		var argErr *ArgumentError

		_, err := New(10, 4000, 50, []int{-1})
		require.ErrorAs(t, err, &argErr)

		_, err = New(10, 4000, 50, []int{32})
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, 32, argErr.Pin)

		_, err = New(10, 4000, 50, []int{3, 3})
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "declared twice", argErr.Reason)
	})

	t.Run("allows an empty channel set", func(t *testing.T) {
		tl, err := New(10, 4000, 50, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tl.NumChannels())
	})
}

func TestSetInterval(t *testing.T) {
	t.Run("paints the addressed samples and nothing else", func(t *testing.T) {
		tl := newTestTimeline(t, 3, 7)
		require.NoError(t, tl.SetHigh(3, 100, 200))

		row, err := tl.Row(3)
		require.NoError(t, err)
		for i, v := range row {
			if i >= 10 && i <= 29 {
				assert.True(t, v, "sample %d should be high", i)
			} else {
				assert.False(t, v, "sample %d should be low", i)
			}
		}

		other, err := tl.Row(7)
		require.NoError(t, err)
		for i, v := range other {
			assert.False(t, v, "pin 7 sample %d should be untouched", i)
		}
	})

	t.Run("later paints overwrite earlier ones", func(t *testing.T) {
		tl := newTestTimeline(t, 3)
		require.NoError(t, tl.SetHigh(3, 0, 1000))
		require.NoError(t, tl.SetLow(3, 200, 100))

		row, err := tl.Row(3)
		require.NoError(t, err)
		assert.True(t, row[19])
		assert.False(t, row[20])
		assert.False(t, row[29])
		assert.True(t, row[30])
	})

	t.Run("rejects misaligned times", func(t *testing.T) {
		tl := newTestTimeline(t, 3)
		var alignErr *AlignmentError

		err := tl.SetHigh(3, 105, 200)
		require.ErrorAs(t, err, &alignErr)
		assert.Equal(t, int64(105), alignErr.ValueNs)

		err = tl.SetHigh(3, 100, 205)
		require.ErrorAs(t, err, &alignErr)
		assert.Equal(t, int64(205), alignErr.ValueNs)
	})

	t.Run("rejects out-of-range intervals", func(t *testing.T) {
		tl := newTestTimeline(t, 3)
		var rangeErr *RangeError

		err := tl.SetHigh(3, -10, 100)
		require.ErrorAs(t, err, &rangeErr)

		err = tl.SetHigh(3, 3900, 200)
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, 410, rangeErr.Sample)
		assert.Equal(t, 400, rangeErr.SampleCount)

		err = tl.SetHigh(3, 4010, 0)
		require.ErrorAs(t, err, &rangeErr)
	})

	t.Run("zero length is a no-op", func(t *testing.T) {
		tl := newTestTimeline(t, 3)
		require.NoError(t, tl.SetHigh(3, 4000, 0))

		row, err := tl.Row(3)
		require.NoError(t, err)
		for _, v := range row {
			assert.False(t, v)
		}
	})

	t.Run("rejects undeclared pins", func(t *testing.T) {
		tl := newTestTimeline(t, 3)
		var argErr *ArgumentError
		err := tl.SetHigh(5, 0, 100)
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, 5, argErr.Pin)
	})
}

func TestColumnHelpers(t *testing.T) {
	tl := newTestTimeline(t, 0, 3)
	require.NoError(t, tl.SetHigh(0, 0, 2000))
	require.NoError(t, tl.SetHigh(3, 1000, 2000))

	t.Run("flags use pin weights", func(t *testing.T) {
		assert.Equal(t, uint32(0b0001), tl.Flags(0))
		assert.Equal(t, uint32(0b1001), tl.Flags(100))
		assert.Equal(t, uint32(0b1000), tl.Flags(250))
		assert.Equal(t, uint32(0), tl.Flags(399))
	})

	t.Run("column equality spans all channels", func(t *testing.T) {
		assert.True(t, tl.ColumnEqual(0, 99))
		assert.False(t, tl.ColumnEqual(99, 100))
		assert.False(t, tl.ColumnEqual(0, 250))
	})

	t.Run("changed pins at a transition", func(t *testing.T) {
		assert.Nil(t, tl.ChangedPins(0))
		assert.Equal(t, []int{3}, tl.ChangedPins(100))
		assert.Equal(t, []int{0}, tl.ChangedPins(200))
		assert.Equal(t, []int{3}, tl.ChangedPins(300))
		assert.Nil(t, tl.ChangedPins(50))
	})
}
