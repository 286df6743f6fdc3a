// Package config reads bloggerdesk settings from the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Environment variables read by Load.
const (
	EnvCacheDir     = "BLOGGERDESK_CACHE_DIR"
	EnvTopicsFile   = "BLOGGERDESK_TOPICS_FILE"
	EnvLogLevel     = "BLOGGERDESK_LOG_LEVEL"
	EnvFetchTimeout = "BLOGGERDESK_FETCH_TIMEOUT"
	EnvRateLimit    = "BLOGGERDESK_RATE_LIMIT"
	EnvCacheTTL     = "BLOGGERDESK_CACHE_TTL"
)

// Defaults used when a variable is unset.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultRateLimit    = time.Second
	DefaultCacheTTL     = 24 * time.Hour
	DefaultLogLevel     = "info"
)

// Config holds runtime settings.
type Config struct {
	CacheDir     string        // Empty disables the on-disk page cache
	TopicsFile   string        // Optional topic catalog (YAML)
	LogLevel     string
	FetchTimeout time.Duration
	RateLimit    time.Duration // Minimum delay between requests to one host
	CacheTTL     time.Duration
}

// Load reads Config from the environment. Call LoadDotenvIfPresent first
// to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		CacheDir:   StringFromEnv(EnvCacheDir, defaultCacheDir()),
		TopicsFile: StringFromEnv(EnvTopicsFile, ""),
		LogLevel:   StringFromEnv(EnvLogLevel, DefaultLogLevel),
	}

	var errs []error
	var err error
	if cfg.FetchTimeout, err = DurationFromEnv(EnvFetchTimeout, DefaultFetchTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimit, err = DurationFromEnv(EnvRateLimit, DefaultRateLimit); err != nil {
		errs = append(errs, err)
	}
	if cfg.CacheTTL, err = DurationFromEnv(EnvCacheTTL, DefaultCacheTTL); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bloggerdesk")
}
