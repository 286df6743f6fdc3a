package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotenvIfPresent loads each existing dotenv file into the process
// environment. Missing files are skipped and variables that are already
// set are never overwritten. With no paths it tries ".env".
func LoadDotenvIfPresent(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat dotenv file %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load dotenv file %s: %w", path, err)
		}
	}
	return nil
}

// StringFromEnv returns the trimmed value of key, or def when it is unset or blank.
func StringFromEnv(key, def string) string {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	return v
}

// IntFromEnv reads an integer from key.
func IntFromEnv(key string, def int) (int, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int env %s=%q: %w", key, v, err)
	}
	return n, nil
}

// BoolFromEnv reads a boolean from key in any form strconv.ParseBool accepts.
func BoolFromEnv(key string, def bool) (bool, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid bool env %s=%q: %w", key, v, err)
	}
	return b, nil
}

// DurationFromEnv reads a duration from key. Values like "1m30s" are
// parsed with time.ParseDuration; a bare integer is a number of seconds.
// Negative durations are rejected.
func DurationFromEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	var d time.Duration
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		d, err = time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration env %s=%q: %w", key, v, err)
		}
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration env %s=%q: negative", key, v)
	}
	return d, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
