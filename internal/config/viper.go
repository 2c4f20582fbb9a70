// Package config reads grantmap settings from viper, which the CLI has
// already bound to the environment, .env files and ~/.grantmap.yaml.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/agentstation/grantmap/pkg/constants"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Environment keys.
const (
	KeyBizinfoViewsURL   = "BIZINFO_VIEWS_URL"
	KeyStore             = "GRANTMAP_STORE"
	KeyDSN               = "GRANTMAP_DSN"
	KeyPageSize          = "GRANTMAP_PAGE_SIZE"
	KeyMaxPages          = "GRANTMAP_MAX_PAGES"
	KeyHTTPTimeout       = "GRANTMAP_HTTP_TIMEOUT"
	KeyRequestsPerSecond = "GRANTMAP_REQUEST_RPS"
)

// envPrefix maps each source to the prefix of its URL and key variables.
var envPrefix = map[sources.ID]string{
	sources.BizinfoID:  "BIZINFO",
	sources.KStartupID: "K_STARTUP",
}

// Keys returns every environment key grantmap reads, for explicit binding.
func Keys() []string {
	keys := []string{
		KeyBizinfoViewsURL, KeyStore, KeyDSN, KeyPageSize, KeyMaxPages,
		KeyHTTPTimeout, KeyRequestsPerSecond,
	}
	for _, id := range sources.IDs() {
		keys = append(keys, URLKey(id), APIKeyKey(id))
	}
	return keys
}

// URLKey is the environment key holding the base URL of a source.
func URLKey(id sources.ID) string {
	return envPrefix[id] + "_API_URL"
}

// APIKeyKey is the environment key holding the API key of a source.
func APIKeyKey(id sources.ID) string {
	return envPrefix[id] + "_API_KEY"
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return strings.TrimSpace(osValue)
	}
	return strings.TrimSpace(viperValue)
}

// GetInt returns the integer at key, or def when it is unset or malformed.
func GetInt(key string, def int) int {
	s := GetString(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// GetFloat returns the float at key, or def when it is unset or malformed.
func GetFloat(key string, def float64) float64 {
	s := GetString(key)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// GetDuration reads a Go duration ("45s") or a bare number of seconds.
func GetDuration(key string, def time.Duration) time.Duration {
	s := GetString(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

// Source returns the adapter configuration for id. A missing URL or key
// leaves the source unconfigured; it is skipped, not failed.
func Source(id sources.ID) sources.Config {
	cfg := sources.Config{
		BaseURL:  GetString(URLKey(id)),
		APIKey:   GetString(APIKeyKey(id)),
		PageSize: GetInt(KeyPageSize, constants.DefaultPageSize),
		MaxPages: GetInt(KeyMaxPages, constants.DefaultMaxPages),
	}
	return cfg.WithDefaults()
}

// HTTPTimeout bounds a single upstream call.
func HTTPTimeout() time.Duration {
	return GetDuration(KeyHTTPTimeout, constants.DefaultHTTPTimeout)
}

// RequestsPerSecond paces calls to one upstream. Zero or less disables pacing.
func RequestsPerSecond() float64 {
	return GetFloat(KeyRequestsPerSecond, constants.DefaultRequestsPerSecond)
}
