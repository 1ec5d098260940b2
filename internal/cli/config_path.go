package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"quizdeck/internal/config"
)

// resolveConfig loads an explicit config path, or searches upward from the
// working directory and falls back to defaults when nothing is found.
func resolveConfig(configPath string) (config.Config, string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.Resolve("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("resolve config path: %w", err)
	}
	return config.Resolve(abs)
}
