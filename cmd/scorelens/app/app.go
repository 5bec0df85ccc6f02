// Package app provides the application context and dependency management
// for the scorelens CLI. It centralizes configuration, logging, and the
// scanner instance behind one injectable type.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/fairwaylab/scorelens"
)

// App represents the scorelens application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Scanner instance (lazy-initialized, singleton)
	mu   sync.RWMutex
	lens scorelens.Scorelens
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Lens returns the scanner instance, creating it lazily. This is
// thread-safe and ensures only one instance is created.
func (a *App) Lens() (scorelens.Scorelens, error) {
	a.mu.RLock()
	if a.lens != nil {
		lens := a.lens
		a.mu.RUnlock()
		return lens, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lens != nil {
		return a.lens, nil
	}

	lens, err := scorelens.New(a.buildLensOptions()...)
	if err != nil {
		return nil, err
	}
	a.lens = lens
	return lens, nil
}

// buildLensOptions constructs scanner options from the app configuration.
func (a *App) buildLensOptions() []scorelens.Option {
	opts := []scorelens.Option{
		scorelens.WithLogger(a.logger),
	}
	if a.config.GeminiAPIKey != "" {
		opts = append(opts, scorelens.WithAPIKey(a.config.GeminiAPIKey))
	}
	if a.config.GeminiModel != "" {
		opts = append(opts, scorelens.WithModel(a.config.GeminiModel))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLens sets a custom scanner instance (useful for testing).
func WithLens(lens scorelens.Scorelens) Option {
	return func(a *App) error {
		a.lens = lens
		return nil
	}
}
