package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/vk/sweepgrid/internal/config"
	"github.com/vk/sweepgrid/internal/executor"
	"github.com/vk/sweepgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle for a single CLI invocation.
type App struct {
	config   *Config
	logger   *slog.Logger
	outW     io.Writer
	loader   config.Loader
	registry *registry.Registry
	launcher executor.Launcher
	tempfile executor.TempFiler
}

// Option overrides one of the App's ports, primarily for tests.
type Option func(*App)

// WithLoader replaces the file-extension-selected loader.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithLauncher replaces the subprocess launcher.
func WithLauncher(l executor.Launcher) Option {
	return func(a *App) { a.launcher = l }
}

// WithTempFiler replaces the submit parameter-file writer.
func WithTempFiler(t executor.TempFiler) Option {
	return func(a *App) { a.tempfile = t }
}

// WithOutput redirects plan and dry-run output away from stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.outW = w }
}

// New is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// logW receives log output; plan output goes to stdout unless WithOutput
// redirects it.
func New(cfg *Config, logW io.Writer, opts ...Option) *App {
	a := &App{
		config:   cfg,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		outW:     os.Stdout,
		registry: registry.New(),
		launcher: &executor.OSLauncher{},
		tempfile: executor.OSTempFiler{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("Logger configured successfully.")
	return a
}

// Registry returns the application's registry, so callers can register
// call-mode targets before running a job.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
