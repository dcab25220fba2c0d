// Package config provides configuration for Keynote.
//
// Configuration is layered from lowest to highest priority:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file chosen by extension
//  3. KEYNOTE_ environment variables
//
// Layers are plain maps merged with loader.DeepMerge and then decoded into
// Config. A missing file is not an error; the defaults apply.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/config/loader"
	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/engine/search"
	"github.com/dshills/keynote/internal/highlight"
)

// DefaultFileName is the config file looked up in the user config dir.
const DefaultFileName = "keynote.toml"

// Config is the complete Keynote configuration.
type Config struct {
	History   HistoryConfig       `toml:"history" yaml:"history"`
	Search    search.Options      `toml:"search" yaml:"search"`
	Languages map[string][]string `toml:"languages" yaml:"languages"`
	Theme     map[string]string   `toml:"theme" yaml:"theme"`
	Log       LogConfig           `toml:"log" yaml:"log"`
}

// HistoryConfig configures undo history.
type HistoryConfig struct {
	MaxSize int `toml:"max_size" yaml:"max_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{
		History:   HistoryConfig{MaxSize: engine.DefaultMaxHistory},
		Languages: make(map[string][]string, len(highlight.DefaultPatterns)),
		Theme:     make(map[string]string),
		Log:       LogConfig{Level: zerolog.InfoLevel.String()},
	}
	for kind, globs := range highlight.DefaultPatterns {
		c.Languages[kind.String()] = append([]string(nil), globs...)
	}
	theme := highlight.DefaultTheme()
	for _, cat := range highlight.Categories() {
		if hex := theme.Hex(cat); hex != "" {
			c.Theme[cat.String()] = hex
		}
	}
	return c
}

// DefaultPath returns the path of the per-user config file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "keynote", DefaultFileName), nil
}

// Load reads path from the OS file system. An empty path skips the file
// layer.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path, loader.NewEnvLoader(loader.EnvPrefix))
}

// LoadFS layers path from fsys and env over the defaults, decodes the
// result and validates it. path and env may be empty and nil.
func LoadFS(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	var layers []map[string]any

	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		layers = append(layers, m)
	}

	if env != nil {
		m, err := env.Load()
		if err != nil {
			return nil, errors.Errorf("loading environment: %w", err)
		}
		layers = append(layers, m)
	}

	return FromMaps(layers...)
}

// FromMaps merges layers over the defaults in order and decodes the result.
func FromMaps(layers ...map[string]any) (*Config, error) {
	merged, err := Default().toMap()
	if err != nil {
		return nil, err
	}
	for _, m := range layers {
		merged = loader.DeepMerge(merged, m)
	}

	data, err := toml.Marshal(merged)
	if err != nil {
		return nil, errors.Errorf("encoding merged config: %w", err)
	}

	var c Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Errorf("decoding config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) toMap() (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Errorf("decoding config: %w", err)
	}
	return m, nil
}

// Detector returns the language detector for the configured globs.
func (c *Config) Detector() (*highlight.Detector, error) {
	patterns := make(map[highlight.LanguageKind][]string, len(c.Languages))
	for name, globs := range c.Languages {
		kind, err := highlight.ParseLanguageKind(name)
		if err != nil {
			return nil, err
		}
		patterns[kind] = globs
	}
	return highlight.NewDetector(patterns)
}

// HighlightTheme returns the default theme with configured colors on top.
func (c *Config) HighlightTheme() (*highlight.Theme, error) {
	t, err := highlight.NewTheme("config", c.Theme)
	if err != nil {
		return nil, err
	}
	return highlight.DefaultTheme().Merge(t), nil
}

// LogLevel returns the configured zerolog level, or info if it is unset.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// SessionOptions returns the engine options described by c.
func (c *Config) SessionOptions() ([]engine.Option, error) {
	d, err := c.Detector()
	if err != nil {
		return nil, err
	}
	return []engine.Option{
		engine.WithMaxHistory(c.History.MaxSize),
		engine.WithDetector(d),
		engine.WithSearchDefaults(c.Search),
	}, nil
}
