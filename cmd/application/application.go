// Package application provides the application interface for grantmap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            gm, err := app.Grantmap(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use gm
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Application provides the application interface that commands need.
// The App struct from cmd/grantmap/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Grantmap returns the pipeline bound to the configured gateway, opening
	// the gateway on first use. An unreachable gateway is a fatal error.
	Grantmap(ctx context.Context) (grantmap.Grantmap, error)

	// Sources builds adapters for ids, or for every registered source.
	Sources(ids ...sources.ID) ([]sources.Source, error)

	// SourceConfig returns the environment configuration of one source.
	SourceConfig(id sources.ID) sources.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
