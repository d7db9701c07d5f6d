package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsegridgo/internal/testutil"
)

func TestInfiniteSquareWave(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution    = 10
  minimum_pulse = 50
}

cycle {
  length = 10 * us
  loops  = infinite
}

channel "aom" {
  pin = 23

  high {
    start  = 0
    length = 5 * us
  }
}
`}, nil)
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "pb_inst(0x800000, CONTINUE, 0, 5000)")
	assert.Contains(t, result.Output, "pb_inst(0x0, BRANCH, 0, 5000)")
}

func TestHomogeneousCycleStretchesLoops(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution    = 10
  minimum_pulse = 50
}

cycle {
  length = 4 * us
  loops  = 5
}

channel "on" {
  pin = 0

  high {
    start  = 0
    length = 4 * us
  }
}
`}, nil)
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "pb_inst(0x1, CONTINUE, 0, 20000)")
	assert.NotContains(t, result.Output, "END_LOOP")
}

func TestClockAndGateProgram(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution    = 10
  minimum_pulse = 50
}

cycle {
  length     = 800
  loops      = 2
  stop_after = true
}

channel "clock" {
  pin = 0

  clock {
    period = 400
  }
}

channel "gate" {
  pin = 1

  high {
    start  = 200
    length = 200
  }
}
`}, nil)
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "LOOP, 2,")
	assert.Contains(t, result.Output, "END_LOOP, 0,")
	assert.Contains(t, result.Output, "pb_inst(0x0, STOP, 0, 20)")
}

func TestShortPulseIsRejectedWithDiagnostics(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution    = 10
  minimum_pulse = 50
}

cycle {
  length = 4 * us
  loops  = 1
}

channel "glitchy" {
  pin = 3

  high {
    start  = 2000
    length = 10
  }
}
`}, nil)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "shorter than required 50ns")
	assert.Contains(t, result.Err.Error(), "index 200")
	assert.NotContains(t, result.Output, "pb_inst", "nothing may be emitted for a rejected timeline")
}

func TestMisalignedIntervalFailsBeforeEmission(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution    = 10
  minimum_pulse = 50
}

cycle {
  length = 4 * us
  loops  = 1
}

channel "off-grid" {
  pin = 2

  high {
    start  = 105
    length = 200
  }
}
`}, nil)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "not a multiple")
	assert.NotContains(t, result.Output, "pb_inst")
}

func TestShiftedProgramRebasesLoopTargets(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution    = 10
  minimum_pulse = 50
}

cycle {
  length = 2 * us
  loops  = 3
}

channel "main" {
  pin = 0

  high {
    start  = 0
    length = 1 * us
  }
}

channel "delayed" {
  pin    = 1
  offset = 500

  high {
    start  = 0
    length = 500
  }
}
`}, nil)
	require.NoError(t, result.Err)
	// Prefix, two-iteration body, then the suffix that finishes both pins.
	assert.Contains(t, result.Output, "LOOP, 2,")
	assert.Contains(t, result.Output, "END_LOOP, 1,")
}

func TestZeroLoopsIsRejected(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution    = 10
  minimum_pulse = 50
}

cycle {
  length = 1 * us
  loops  = 0
}

channel "x" {
  pin = 0
}
`}, nil)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "loop count")
}

func TestBrokenProgramFileFailsAtStartup(t *testing.T) {
	result := testutil.RunProgramTest(t, map[string]string{"program.hcl": `
device {
  resolution = }
`}, nil)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "startup panic")
}
