package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/grantmap/cmd/grantmap/cmd/fetch"
	"github.com/agentstation/grantmap/cmd/grantmap/cmd/ingest"
	"github.com/agentstation/grantmap/cmd/grantmap/cmd/sources"
	"github.com/agentstation/grantmap/cmd/grantmap/cmd/stats"
	"github.com/agentstation/grantmap/cmd/grantmap/cmd/version"
	"github.com/agentstation/grantmap/internal/cmd/output"
	"github.com/agentstation/grantmap/pkg/errors"
)

// Execute runs the grantmap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "grantmap",
		Short:   "Korean government grant ingestion CLI",
		Version: a.version,
		Long: `Grantmap collects grant and startup-support announcements from public
Korean sources (기업마당, K-Startup), normalizes them into one program
schema, removes duplicates within and across sources and upserts the
result into a persistence gateway.

Sources are configured through environment variables, .env files or
~/.grantmap.yaml. Run "grantmap sources" to see what is set.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.grantmap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "output", "o", a.config.Format, "output format: table, wide, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.Store, "store", a.config.Store, "persistence gateway: memory, sqlite, postgres (env GRANTMAP_STORE)")
	rootCmd.PersistentFlags().StringVar(&a.config.DSN, "dsn", a.config.DSN, "gateway connection string (env GRANTMAP_DSN)")

	rootCmd.SetVersionTemplate("grantmap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "output")
	logLevel := mustGetString(cmd, "log-level")

	// LoadConfig ran before flags were parsed, so an explicit --config is read here.
	if cmd.Flags().Changed("config") {
		if err := a.config.ReadConfigFile(a.config.ConfigFile); err != nil {
			return err
		}
		for _, name := range []string{"store", "dsn"} {
			if cmd.Flags().Changed(name) {
				a.config.setFromFlag(name, mustGetString(cmd, name))
			}
		}
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)
	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}
	a.config.Store = strings.ToLower(a.config.Store)
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(ingest.NewCommand(a))
	rootCmd.AddCommand(fetch.NewCommand(a))
	rootCmd.AddCommand(stats.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(sources.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints an error and exits. A fatal pipeline error exits with
// status 2 so schedulers can tell it from a usage or configuration problem.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	//nolint:errcheck // Ignoring write error since we're exiting anyway
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(ExitCode(err))
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsFatal(err):
		return 2
	default:
		return 1
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
