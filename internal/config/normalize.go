package config

import (
	"strings"

	"quizdeck/internal/question"
	"quizdeck/internal/quiz"
	"quizdeck/internal/source"
)

// Defaults applied by Normalize.
const (
	DefaultUI       = "auto"
	DefaultLogLevel = "info"
	DefaultAddr     = "127.0.0.1:8080"
)

// Normalize trims values and fills unset fields with defaults.
func Normalize(cfg *Config) {
	cfg.Source = strings.TrimSpace(cfg.Source)
	if cfg.Delimiter == "" {
		cfg.Delimiter = string(question.DefaultDelimiter)
	}
	if cfg.PassThreshold == 0 {
		cfg.PassThreshold = quiz.DefaultPassThreshold
	}
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	if cfg.UI == "" {
		cfg.UI = DefaultUI
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = source.DefaultTimeout
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.Serve.Addr = strings.TrimSpace(cfg.Serve.Addr)
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultAddr
	}
	origins := cfg.Serve.CORSOrigins[:0]
	for _, origin := range cfg.Serve.CORSOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.Serve.CORSOrigins = origins
}

// DelimiterRune returns the configured field separator.
func (cfg Config) DelimiterRune() rune {
	for _, r := range cfg.Delimiter {
		return r
	}
	return question.DefaultDelimiter
}
