package config

import (
	"fmt"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// UI modes accepted by the ui key and the --ui flag.
var uiModes = map[string]struct{}{"auto": {}, "live": {}, "plain": {}}

// Validate checks every field and reports all problems at once.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	validateDelimiter(cfg.Delimiter, collector.add)

	if cfg.PassThreshold < 0 || cfg.PassThreshold > 100 {
		collector.add("pass_threshold", "must be between 0 and 100")
	}
	if _, ok := uiModes[cfg.UI]; !ok {
		collector.add("ui", fmt.Sprintf("unsupported mode %q (use auto, live or plain)", cfg.UI))
	}
	if cfg.FetchTimeout < 0 {
		collector.add("fetch_timeout", "must be >= 0")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		collector.add("log_level", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}
	if _, _, err := net.SplitHostPort(cfg.Serve.Addr); err != nil {
		collector.add("serve.addr", fmt.Sprintf("must be host:port, got %q", cfg.Serve.Addr))
	}
	for i, origin := range cfg.Serve.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			collector.add(fmt.Sprintf("serve.cors_origins[%d]", i), fmt.Sprintf("must be * or an http(s) origin, got %q", origin))
		}
	}

	return collector.result()
}

func validateDelimiter(delimiter string, add issueAdder) {
	if utf8.RuneCountInString(delimiter) != 1 {
		add("delimiter", fmt.Sprintf("must be a single character, got %q", delimiter))
		return
	}
	r, _ := utf8.DecodeRuneInString(delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		add("delimiter", fmt.Sprintf("invalid delimiter %q", delimiter))
	}
}

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error lists one issue per line under a summary line.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid config"
	}
	var b strings.Builder
	b.WriteString("invalid config:")
	for _, issue := range err.Issues {
		fmt.Fprintf(&b, "\n  %s: %s", issue.Field, issue.Message)
	}
	return b.String()
}

type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
