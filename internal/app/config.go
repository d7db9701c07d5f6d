package app

import (
	"errors"
	"fmt"
	"time"
)

// Driver names accepted by Config.Driver.
const (
	DriverPrint    = "print"
	DriverSim      = "sim"
	DriverSocketIO = "socketio"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProgramPath string // .hcl file or directory

	Driver             string // print, sim or socketio
	DriverURL          string // socketio only
	DriverNamespace    string // socketio only
	DriverTimeout      time.Duration
	InsecureSkipVerify bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProgramPath == "" {
		return nil, errors.New("ProgramPath is a required configuration field and cannot be empty")
	}
	switch cfg.Driver {
	case DriverPrint, DriverSim, DriverSocketIO:
	default:
		return nil, fmt.Errorf("unknown driver %q: must be %q, %q or %q", cfg.Driver, DriverPrint, DriverSim, DriverSocketIO)
	}
	if cfg.Driver == DriverSocketIO && cfg.DriverURL == "" {
		return nil, errors.New("the socketio driver requires a driver URL")
	}
	return &cfg, nil
}
