package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/pulsegridgo/internal/config"
	"github.com/vk/pulsegridgo/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and the loaded
// program model.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// A failure to load the program is a fatal startup error.
	model, err := loader.Load(ctx, appConfig.ProgramPath)
	if err != nil {
		panic(fmt.Errorf("failed to load program: %w", err))
	}
	logger.Debug("Program loaded and translated into unified model.",
		"path", appConfig.ProgramPath, "channels", len(model.Channels))

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		model:  model,
	}
}

// Model returns the loaded program model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
