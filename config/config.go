// Package config loads gqlsense settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Parser ParserConfig `yaml:"parser"`
	Loader LoaderConfig `yaml:"loader"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text" (colourised, for terminals) or "json".
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type ParserConfig struct {
	// Extensions are added to the built-in .graphql/.graphqls/.gql set.
	Extensions []string `yaml:"extensions,omitempty"`
}

type LoaderConfig struct {
	MaxFileSize int64    `yaml:"max_file_size"`
	SkipDirs    []string `yaml:"skip_dirs"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
		Server: ServerConfig{
			Name:    "gqlsense",
			Version: "0.1.0",
		},
		Loader: LoaderConfig{
			MaxFileSize: 10 * 1024 * 1024,
			SkipDirs:    []string{".git", "node_modules", "vendor", "dist", "build"},
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Server.Name == "" {
		return fmt.Errorf("%w: server name must not be empty", ErrInvalidConfig)
	}
	if c.Loader.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// SlogLevel parses Log.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// Marshal renders the configuration as YAML, e.g. for `config print`.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
