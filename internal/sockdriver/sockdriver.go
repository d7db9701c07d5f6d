// Package sockdriver implements a driver session that forwards instructions
// to a remote sequencer gateway over socket.io. The gateway owns the actual
// board; this client only mirrors the begin/submit/end protocol onto events.
//
// Protocol: the client emits "begin_program", "instruction" and
// "end_program". The gateway acknowledges with "begun", "address" (carrying
// the device address of the last instruction) and "ended", or reports
// "gateway_error". Operations are strictly sequential, matching the
// single-writer submission contract.
package sockdriver

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/pulsegridgo/internal/compile"
	"github.com/vk/pulsegridgo/internal/ctxlog"
	"github.com/vk/pulsegridgo/internal/driver"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Config describes the gateway endpoint.
type Config struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// reply carries one gateway acknowledgement through the session's channel.
type reply struct {
	address int
	err     error
}

// Session is a connected gateway client implementing driver.Session.
type Session struct {
	cfg     Config
	manager *socket.Manager
	io      *socket.Socket
	replies chan reply
}

// Dial connects to the gateway and waits for the socket to come up.
func Dial(ctx context.Context, cfg Config) (*Session, error) {
	logger := ctxlog.FromContext(ctx).With("driver", "sockdriver", "url", cfg.URL)

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, &driver.Error{Op: "dial", Err: fmt.Errorf("failed to parse URL: %w", err)}
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	s := &Session{
		cfg:     cfg,
		manager: socket.NewManager(baseURL, opts),
		replies: make(chan reply, 1),
	}
	s.io = s.manager.Socket(cfg.Namespace, opts)

	connected := make(chan error, 1)
	s.io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to sequencer gateway", "sid", s.io.Id())
		connected <- nil
	})
	s.io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				connected <- err
				return
			}
		}
		connected <- fmt.Errorf("connection failed")
	})
	s.io.On(types.EventName("begun"), func(...any) {
		s.replies <- reply{address: -1}
	})
	s.io.On(types.EventName("ended"), func(...any) {
		s.replies <- reply{address: -1}
	})
	s.io.On(types.EventName("address"), func(data ...any) {
		addr, err := toAddress(data)
		s.replies <- reply{address: addr, err: err}
	})
	s.io.On(types.EventName("gateway_error"), func(data ...any) {
		msg := "unspecified gateway error"
		if len(data) > 0 {
			msg = fmt.Sprint(data[0])
		}
		s.replies <- reply{err: fmt.Errorf("%s", msg)}
	})

	s.io.Connect()
	select {
	case err := <-connected:
		if err != nil {
			s.io.Disconnect()
			return nil, &driver.Error{Op: "dial", Err: err}
		}
	case <-time.After(cfg.Timeout):
		s.io.Disconnect()
		return nil, &driver.Error{Op: "dial", Err: fmt.Errorf("timed out waiting for connection")}
	case <-ctx.Done():
		s.io.Disconnect()
		return nil, &driver.Error{Op: "dial", Err: ctx.Err()}
	}
	return s, nil
}

// BeginProgram implements driver.Session.
func (s *Session) BeginProgram(ctx context.Context) error {
	s.io.Emit("begin_program", nil)
	_, err := s.await(ctx)
	if err != nil {
		return &driver.Error{Op: "begin program", Err: err}
	}
	return nil
}

// Submit implements driver.Session.
func (s *Session) Submit(ctx context.Context, in compile.Instruction) (int, error) {
	s.io.Emit("instruction", map[string]any{
		"flags":       in.Flags,
		"op":          in.Op.String(),
		"operand":     in.Operand,
		"duration_ns": in.DurationNs,
	})
	addr, err := s.await(ctx)
	if err != nil {
		return 0, &driver.Error{Op: "submit", Err: err}
	}
	return addr, nil
}

// EndProgram implements driver.Session.
func (s *Session) EndProgram(ctx context.Context) error {
	s.io.Emit("end_program", nil)
	_, err := s.await(ctx)
	if err != nil {
		return &driver.Error{Op: "end program", Err: err}
	}
	return nil
}

// Close disconnects from the gateway.
func (s *Session) Close() {
	s.io.Disconnect()
}

// await blocks until the gateway acknowledges the outstanding operation.
func (s *Session) await(ctx context.Context) (int, error) {
	select {
	case r := <-s.replies:
		return r.address, r.err
	case <-time.After(s.cfg.Timeout):
		return 0, fmt.Errorf("timed out waiting for gateway acknowledgement")
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// toAddress extracts the numeric device address from an "address" event
// payload. JSON numbers arrive as float64.
func toAddress(data []any) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("address event carried no payload")
	}
	switch v := data[0].(type) {
	case float64:
		return int(v), nil
	case int64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("address event carried unexpected payload type %T", data[0])
	}
}
