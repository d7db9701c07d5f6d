package app

import (
	"context"
	"fmt"

	"github.com/vk/pulsegridgo/internal/compile"
	"github.com/vk/pulsegridgo/internal/ctxlog"
	"github.com/vk/pulsegridgo/internal/driver"
	"github.com/vk/pulsegridgo/internal/emit"
	"github.com/vk/pulsegridgo/internal/printdriver"
	"github.com/vk/pulsegridgo/internal/simdriver"
	"github.com/vk/pulsegridgo/internal/sockdriver"
	"github.com/vk/pulsegridgo/internal/validate"
)

// Run executes the full pipeline: paint, validate, compile, emit.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	tl, offsets, err := buildTimeline(a.model)
	if err != nil {
		return fmt.Errorf("failed to build timeline: %w", err)
	}
	a.logger.Debug("Timeline painted.",
		"channels", tl.NumChannels(), "samples", tl.SampleCount(), "shifted_pins", len(offsets))

	// Validation must complete before any instruction is compiled or
	// submitted. Shifted segments are re-validated individually by the
	// compiler after the split.
	if err := validate.Check(tl); err != nil {
		return fmt.Errorf("timeline rejected: %w", err)
	}
	a.logger.Debug("Timeline validated.")

	loops := compile.LoopCount(a.model.Cycle.Loops)
	var prog compile.Program
	if len(offsets) > 0 {
		prog, err = compile.CompileShifted(tl, offsets, loops)
	} else {
		prog, err = compile.Compile(tl, loops)
	}
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	a.logger.Info("Program compiled.",
		"instructions", len(prog), "loops", loops.String(), "pass_duration_ns", prog.TotalDurationNs())

	session, closeSession, err := a.newSession(ctx)
	if err != nil {
		return err
	}
	defer closeSession()

	autoStop := a.model.Cycle.StopAfter
	if autoStop && loops == compile.Infinite {
		a.logger.Warn("stop_after is unreachable behind an infinite loop; skipping the STOP trailer.")
		autoStop = false
	}

	if _, err := emit.Write(ctx, session, prog, emit.Options{
		AutoStop:     autoStop,
		ResolutionNs: a.model.Device.ResolutionNs,
	}); err != nil {
		return fmt.Errorf("emission failed: %w", err)
	}

	a.logger.Info("🏁 Program emitted.", "driver", a.config.Driver)
	return nil
}

// newSession opens the driver session named by the configuration.
func (a *App) newSession(ctx context.Context) (driver.Session, func(), error) {
	noop := func() {}
	switch a.config.Driver {
	case DriverPrint:
		return printdriver.New(a.outW), noop, nil
	case DriverSim:
		return simdriver.New(), noop, nil
	case DriverSocketIO:
		s, err := sockdriver.Dial(ctx, sockdriver.Config{
			URL:                a.config.DriverURL,
			Namespace:          a.config.DriverNamespace,
			Timeout:            a.config.DriverTimeout,
			InsecureSkipVerify: a.config.InsecureSkipVerify,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", a.config.Driver)
	}
}
