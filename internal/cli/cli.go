// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vk/pulsegridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("pulsegridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
pulsegridgo - compiles declarative pulse programs into sequencer instructions.

Usage:
  pulsegridgo [options] [PROGRAM_PATH]

Arguments:
  PROGRAM_PATH
    Path to a single .hcl program file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	programFlag := flagSet.String("program", "", "Path to the program file or directory.")
	pFlag := flagSet.String("p", "", "Path to the program file or directory (shorthand).")
	driverFlag := flagSet.String("driver", "print", "Instruction sink. Options: 'print', 'sim' or 'socketio'.")
	driverURLFlag := flagSet.String("driver-url", "", "Sequencer gateway URL for the socketio driver.")
	namespaceFlag := flagSet.String("driver-namespace", "/", "Socket.io namespace for the socketio driver.")
	timeoutFlag := flagSet.Duration("driver-timeout", 10*time.Second, "Per-operation timeout for the socketio driver.")
	insecureFlag := flagSet.Bool("insecure-skip-verify", false, "Skip TLS certificate verification for the socketio driver.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *programFlag != "" {
		path = *programFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ProgramPath:        path,
		Driver:             strings.ToLower(*driverFlag),
		DriverURL:          *driverURLFlag,
		DriverNamespace:    *namespaceFlag,
		DriverTimeout:      *timeoutFlag,
		InsecureSkipVerify: *insecureFlag,
		LogFormat:          logFormat,
		LogLevel:           logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
