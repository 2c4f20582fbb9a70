// Package app provides the application context and dependency management
// for the grantmap CLI. It centralizes configuration, the persistence
// gateway and the pipeline so commands receive them through one interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/cmd/application"
	"github.com/agentstation/grantmap/internal/sources/registry"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
	"github.com/agentstation/grantmap/pkg/store"
)

// App represents the grantmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Gateway and pipeline (lazy-initialized, singleton)
	mu       sync.Mutex
	store    store.Store
	grantmap grantmap.Grantmap
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "load config", err)
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

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// SourceConfig returns the environment configuration of one source.
func (a *App) SourceConfig(id sources.ID) sources.Config {
	s := a.config.SourceSettings()
	switch id {
	case sources.BizinfoID:
		return s.Bizinfo
	case sources.KStartupID:
		return s.KStartup
	}
	return sources.Config{}
}

// Sources builds adapters for ids, or for every registered source.
func (a *App) Sources(ids ...sources.ID) ([]sources.Source, error) {
	s := a.config.SourceSettings()
	s.Logger = a.logger
	return registry.Build(s, ids...)
}

// Grantmap returns the pipeline, opening the gateway on first use.
func (a *App) Grantmap(ctx context.Context) (grantmap.Grantmap, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.grantmap != nil {
		return a.grantmap, nil
	}

	if a.store == nil {
		st, err := openStore(ctx, a.config)
		if err != nil {
			a.logger.Error().Err(err).Str("store", a.config.Store).Msg("Persistence gateway unavailable")
			return nil, err
		}
		a.store = st
	}

	srcs, err := a.Sources()
	if err != nil {
		return nil, err
	}

	gm, err := grantmap.New(a.store,
		grantmap.WithSources(srcs...),
		grantmap.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	a.grantmap = gm
	return gm, nil
}

// Shutdown closes the gateway if it was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.grantmap = nil
	if err != nil {
		return errors.WrapPersist("close", "", err)
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
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

// WithStore sets the persistence gateway (useful for testing).
func WithStore(st store.Store) Option {
	return func(a *App) error {
		a.store = st
		return nil
	}
}
