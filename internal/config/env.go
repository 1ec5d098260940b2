package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvSource        = "QUIZDECK_SOURCE"
	EnvAddr          = "QUIZDECK_ADDR"
	EnvLogLevel      = "QUIZDECK_LOG_LEVEL"
	EnvPassThreshold = "QUIZDECK_PASS_THRESHOLD"
)

// DotEnvFileName is loaded from the working directory when present.
const DotEnvFileName = ".env"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads dir/.env into the process environment without replacing
// variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, DotEnvFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any QUIZDECK_* variables found by lookup.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if value, ok := envOr(lookup, EnvSource); ok {
		cfg.Source = value
	}
	if value, ok := envOr(lookup, EnvAddr); ok {
		cfg.Serve.Addr = value
	}
	if value, ok := envOr(lookup, EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(value)
	}
	if value, ok := envOr(lookup, EnvPassThreshold); ok {
		threshold, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Issues: []Issue{{Field: EnvPassThreshold, Message: fmt.Sprintf("must be an integer, got %q", value)}}}
		}
		cfg.PassThreshold = threshold
	}
	return nil
}

func envOr(lookup LookupFunc, key string) (string, bool) {
	value, ok := lookup(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}
