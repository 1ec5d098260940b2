package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"quizdeck/internal/source"
)

// Config is the contents of a .quizdeck.yml file after defaults and
// environment overrides are applied.
type Config struct {
	Version       int           `yaml:"version"`
	Source        string        `yaml:"source"`
	Delimiter     string        `yaml:"delimiter"`
	PassThreshold int           `yaml:"pass_threshold"`
	UI            string        `yaml:"ui"`
	NoColor       bool          `yaml:"no_color"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	LogLevel      string        `yaml:"log_level"`
	Serve         ServeConfig   `yaml:"serve"`
}

// ServeConfig holds the settings of the serve command.
type ServeConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	cfg := Config{Version: 1}
	Normalize(&cfg)
	return cfg
}

// Parse decodes a single YAML document and rejects unknown keys.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, errors.New("parse config: file is empty")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads, parses, normalizes, and validates a config file. A relative
// local source is resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if cfg.Source != "" && !source.IsRemote(cfg.Source) && !filepath.IsAbs(cfg.Source) {
		cfg.Source = filepath.Join(filepath.Dir(path), cfg.Source)
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
