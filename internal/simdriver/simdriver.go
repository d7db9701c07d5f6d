// Package simdriver provides an in-memory driver session that behaves like
// a sequencer board: it assigns monotonically increasing instruction
// addresses and enforces the begin/submit/end protocol. It backs tests and
// dry runs where no hardware is attached.
package simdriver

import (
	"context"
	"errors"

	"github.com/vk/pulsegridgo/internal/compile"
	"github.com/vk/pulsegridgo/internal/driver"
)

// Session is a simulated device. The zero value is ready to use.
type Session struct {
	open   bool
	memory compile.Program
}

// New creates an empty simulated device session.
func New() *Session {
	return &Session{}
}

// BeginProgram implements driver.Session. Reprogramming clears the previous
// instruction memory, as a board reset would.
func (s *Session) BeginProgram(ctx context.Context) error {
	if s.open {
		return &driver.Error{Op: "begin program", Err: errors.New("programming already in progress")}
	}
	s.open = true
	s.memory = nil
	return nil
}

// Submit implements driver.Session.
func (s *Session) Submit(ctx context.Context, in compile.Instruction) (int, error) {
	if !s.open {
		return 0, &driver.Error{Op: "submit", Err: errors.New("no programming in progress")}
	}
	s.memory = append(s.memory, in)
	return len(s.memory) - 1, nil
}

// EndProgram implements driver.Session.
func (s *Session) EndProgram(ctx context.Context) error {
	if !s.open {
		return &driver.Error{Op: "end program", Err: errors.New("no programming in progress")}
	}
	s.open = false
	return nil
}

// Memory returns a copy of the device instruction memory.
func (s *Session) Memory() compile.Program {
	out := make(compile.Program, len(s.memory))
	copy(out, s.memory)
	return out
}
