package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides both flags",
			config:   &Config{LogLevel: "info", Verbose: true, Quiet: true},
			expected: "info",
		},
		{
			name:     "both verbose and quiet prefers quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "invalid log level falls back to info",
			config:   &Config{LogLevel: "loud"},
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := determineLogLevel(tt.config)
			if result != tt.expected {
				t.Errorf("determineLogLevel() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests log level validation.
func TestValidateLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"warn", "warn"},
		{"error", "error"},
		{"DEBUG", "debug"},
		{" Warning ", "warn"},
		{"", "info"},
		{"invalid", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			result := validateLogLevel(tt.level)
			if result != tt.expected {
				t.Errorf("validateLogLevel(%q) = %q, expected %q", tt.level, result, tt.expected)
			}
		})
	}
}
