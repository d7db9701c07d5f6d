// Package driver defines the contract between the instruction compiler and
// the hardware session that programs a sequencer board.
//
// Implementations decide where instructions go: a real board, a remote
// gateway, an in-memory simulator, or a debug listing. The core never
// retries a failed submission; retry policy, if any, belongs to the
// implementation.
package driver

import (
	"context"
	"fmt"

	"github.com/vk/pulsegridgo/internal/compile"
)

// Session accepts one compiled program per begin/end cycle. Submit must be
// called in program order: the device assigns monotonically increasing
// addresses that loop-back operands depend on.
type Session interface {
	// BeginProgram opens instruction programming. It must be called before
	// any Submit and fails if the device is not ready.
	BeginProgram(ctx context.Context) error

	// Submit transfers one instruction and returns the address the device
	// stored it at.
	Submit(ctx context.Context, in compile.Instruction) (int, error)

	// EndProgram finalizes submission. No further Submit calls are
	// permitted until a new BeginProgram.
	EndProgram(ctx context.Context) error
}

// Error is an opaque failure reported by a driver implementation.
type Error struct {
	Op  string
	Err error
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	return fmt.Sprintf("driver: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }
