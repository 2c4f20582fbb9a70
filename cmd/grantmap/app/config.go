package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/grantmap/internal/config"
	"github.com/agentstation/grantmap/internal/sources/registry"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Persistence gateway
	Store string
	DSN   string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.grantmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindKeys()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".grantmap")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		Store: strings.ToLower(config.GetString(config.KeyStore)),
		DSN:   config.GetString(config.KeyDSN),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if cfg.Store == "" {
		cfg.Store = StoreMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadConfigFile reads an explicitly named config file and refreshes the
// settings it can carry. Unlike the default ~/.grantmap.yaml, a named file
// must exist.
func (c *Config) ReadConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.NewConfigError("config", "cannot read "+path, err)
	}
	c.ConfigFile = viper.ConfigFileUsed()

	if v := config.GetString(config.KeyStore); v != "" {
		c.Store = strings.ToLower(v)
	}
	if v := config.GetString(config.KeyDSN); v != "" {
		c.DSN = v
	}
	if v := viper.GetString("output"); v != "" {
		c.Format = v
	}
	return nil
}

// setFromFlag restores a gateway setting given on the command line.
func (c *Config) setFromFlag(name, value string) {
	switch name {
	case "store":
		c.Store = value
	case "dsn":
		c.DSN = value
	}
}

// Validate checks the gateway settings.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
		return nil
	case StoreSQLite, StorePostgres:
		if c.DSN == "" {
			return fmt.Errorf("%s requires %s for the %s store", config.KeyStore, config.KeyDSN, c.Store)
		}
		return nil
	default:
		return fmt.Errorf("unknown %s %q: must be one of memory, sqlite, postgres", config.KeyStore, c.Store)
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// SourceSettings builds the adapter settings from the environment.
func (c *Config) SourceSettings() registry.Settings {
	return registry.Settings{
		Bizinfo:           config.Source(sources.BizinfoID),
		BizinfoViewsURL:   config.GetString(config.KeyBizinfoViewsURL),
		KStartup:          config.Source(sources.KStartupID),
		HTTPTimeout:       config.HTTPTimeout(),
		RequestsPerSecond: config.RequestsPerSecond(),
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindKeys explicitly binds every grantmap environment variable to Viper.
func bindKeys() {
	for _, key := range config.Keys() {
		if err := viper.BindEnv(key); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
