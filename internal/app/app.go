package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/rockerbuild/internal/config"
	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/executor"
	"github.com/specialistvlad/rockerbuild/internal/localexecutor"
	"github.com/specialistvlad/rockerbuild/internal/project"
	"github.com/specialistvlad/rockerbuild/internal/rocker"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	model    *config.Model
	project  *project.Project
	rocker   *rocker.Extension
	executor executor.Executor
}

// NewApp loads the build files named by cfg and returns an App whose project
// is fully configured. Command output goes to outW, logs to logW.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.BuildPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		model:    model,
		executor: localexecutor.New(cfg.WorkerCount, localexecutor.WithKeepGoing(cfg.KeepGoing)),
	}
	if err := a.configure(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Project configured.", "project", a.project.Name(), "tasks", a.project.Tasks.Len())
	return a, nil
}

// Project returns the configured project. This is primarily for testing.
func (a *App) Project() *project.Project { return a.project }

// Rocker returns the Rocker extension of the project.
func (a *App) Rocker() *rocker.Extension { return a.rocker }

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
