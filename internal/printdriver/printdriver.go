// Package printdriver implements a driver session that writes instructions
// as a human-readable listing instead of transmitting them. It replaces the
// debug-mode branch of the hardware path: the compiler output is identical,
// only the sink differs.
package printdriver

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/pulsegridgo/internal/compile"
	"github.com/vk/pulsegridgo/internal/driver"
)

// Session writes one line per submitted instruction to an io.Writer.
type Session struct {
	w    io.Writer
	next int
}

// New creates a listing session writing to w.
func New(w io.Writer) *Session {
	return &Session{w: w}
}

// BeginProgram implements driver.Session.
func (s *Session) BeginProgram(ctx context.Context) error {
	s.next = 0
	return nil
}

// Submit implements driver.Session.
func (s *Session) Submit(ctx context.Context, in compile.Instruction) (int, error) {
	if _, err := fmt.Fprintf(s.w, "%3d: %s\n", s.next, in); err != nil {
		return 0, &driver.Error{Op: "submit", Err: err}
	}
	addr := s.next
	s.next++
	return addr, nil
}

// EndProgram implements driver.Session.
func (s *Session) EndProgram(ctx context.Context) error {
	return nil
}
