// Package emit feeds a compiled program into a driver session in strict
// list order. It is the single sink through which every consumer, debug or
// hardware, receives instructions.
package emit

import (
	"context"
	"fmt"

	"github.com/vk/pulsegridgo/internal/compile"
	"github.com/vk/pulsegridgo/internal/ctxlog"
	"github.com/vk/pulsegridgo/internal/driver"
)

// Options controls trailing behavior of a program submission.
type Options struct {
	// AutoStop appends a STOP instruction after the program so the device
	// halts instead of idling on its last output state. The stop holds all
	// pins low for two resolution steps.
	AutoStop bool
	// ResolutionNs sizes the auto-stop instruction. Required when AutoStop
	// is set.
	ResolutionNs int64
}

// Write submits the program through the session and returns the device
// addresses assigned to each instruction, in order. The first driver error
// aborts the remaining sequence; nothing is retried.
func Write(ctx context.Context, s driver.Session, prog compile.Program, opts Options) ([]int, error) {
	logger := ctxlog.FromContext(ctx)

	if err := s.BeginProgram(ctx); err != nil {
		return nil, err
	}

	addrs := make([]int, 0, len(prog))
	for i, in := range prog {
		addr, err := s.Submit(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("submitting instruction %d: %w", i, err)
		}
		logger.Debug("Instruction submitted.", "index", i, "address", addr, "op", in.Op.String())
		addrs = append(addrs, addr)
	}

	if opts.AutoStop {
		stop := compile.Instruction{Op: compile.OpStop, DurationNs: 2 * opts.ResolutionNs}
		if _, err := s.Submit(ctx, stop); err != nil {
			return nil, fmt.Errorf("submitting stop trailer: %w", err)
		}
		logger.Debug("Stop trailer submitted.")
	}

	if err := s.EndProgram(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Program submission finished.", "instructions", len(prog))
	return addrs, nil
}
