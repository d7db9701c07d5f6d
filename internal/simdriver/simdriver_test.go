package simdriver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsegridgo/internal/compile"
	"github.com/vk/pulsegridgo/internal/driver"
)

func TestSessionProtocol(t *testing.T) {
	ctx := context.Background()
	in := compile.Instruction{Flags: 1, Op: compile.OpContinue, DurationNs: 100}

	t.Run("addresses increase monotonically from zero", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginProgram(ctx))
		for want := 0; want < 3; want++ {
			addr, err := s.Submit(ctx, in)
			require.NoError(t, err)
			assert.Equal(t, want, addr)
		}
		require.NoError(t, s.EndProgram(ctx))
		assert.Len(t, s.Memory(), 3)
	})

	t.Run("submit outside a programming cycle fails", func(t *testing.T) {
		s := New()
		_, err := s.Submit(ctx, in)
		var dErr *driver.Error
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, "submit", dErr.Op)
	})

	t.Run("double begin fails", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginProgram(ctx))
		err := s.BeginProgram(ctx)
		var dErr *driver.Error
		require.ErrorAs(t, err, &dErr)
	})

	t.Run("end without begin fails", func(t *testing.T) {
		s := New()
		var dErr *driver.Error
		require.ErrorAs(t, s.EndProgram(ctx), &dErr)
	})

	t.Run("reprogramming clears the previous memory", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginProgram(ctx))
		_, err := s.Submit(ctx, in)
		require.NoError(t, err)
		require.NoError(t, s.EndProgram(ctx))

		require.NoError(t, s.BeginProgram(ctx))
		require.NoError(t, s.EndProgram(ctx))
		assert.Empty(t, s.Memory())
	})
}
