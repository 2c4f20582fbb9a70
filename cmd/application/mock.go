package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    GrantmapFunc: func(context.Context) (grantmap.Grantmap, error) {
//	        return gm, nil
//	    },
//	}
//	cmd := stats.NewCommand(mock)
type Mock struct {
	GrantmapFunc     func(ctx context.Context) (grantmap.Grantmap, error)
	SourcesFunc      func(ids ...sources.ID) ([]sources.Source, error)
	SourceConfigFunc func(id sources.ID) sources.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Grantmap returns a pipeline using the mock function or nil.
func (m *Mock) Grantmap(ctx context.Context) (grantmap.Grantmap, error) {
	if m.GrantmapFunc != nil {
		return m.GrantmapFunc(ctx)
	}
	return nil, nil
}

// Sources returns adapters using the mock function or none.
func (m *Mock) Sources(ids ...sources.ID) ([]sources.Source, error) {
	if m.SourcesFunc != nil {
		return m.SourcesFunc(ids...)
	}
	return nil, nil
}

// SourceConfig returns a source config using the mock function or the zero value.
func (m *Mock) SourceConfig(id sources.ID) sources.Config {
	if m.SourceConfigFunc != nil {
		return m.SourceConfigFunc(id)
	}
	return sources.Config{}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
