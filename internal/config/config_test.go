package config

import (
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/highlight"
)

type staticLoader map[string]any

func (s staticLoader) Load() (map[string]any, error) {
	return s, nil
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate(), "defaults should validate")
	assert.Equal(t, 50, cfg.History.MaxSize, "max size should match")
	assert.False(t, cfg.Search.CaseSensitive, "case sensitivity should be off")
	assert.False(t, cfg.Search.WholeWord, "whole word should be off")
	assert.Equal(t, "info", cfg.Log.Level, "log level should match")
	assert.Equal(t, []string{"*.kt"}, cfg.Languages["kotlin"], "kotlin globs should match")
	assert.Equal(t, "#ff6b6b", cfg.Theme["keyword"], "keyword color should match")
}

func TestLoadFS(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		file    string
		env     map[string]any
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "toml_overrides",
			path: "keynote.toml",
			file: `
[history]
max_size = 10

[search]
whole_word = true

[theme]
keyword = "#112233"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.History.MaxSize, "max size should match")
				assert.True(t, cfg.Search.WholeWord, "whole word should be on")
				assert.False(t, cfg.Search.CaseSensitive, "case sensitivity should keep its default")
				assert.Equal(t, "#112233", cfg.Theme["keyword"], "keyword color should match")
				assert.Equal(t, "#4ecdc4", cfg.Theme["string"], "string color should keep its default")
			},
		},
		{
			name: "yaml_overrides",
			path: "keynote.yaml",
			file: `
languages:
  kotlin: ["*.kt", "*.kts"]
log:
  level: debug
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"*.kt", "*.kts"}, cfg.Languages["kotlin"], "kotlin globs should match")
				assert.Equal(t, []string{"*.java"}, cfg.Languages["java"], "java globs should keep their default")
				assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel(), "log level should match")
			},
		},
		{
			name: "missing_file_uses_defaults",
			path: "absent.toml",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg, "config should equal defaults")
			},
		},
		{
			name: "env_overrides_file",
			path: "keynote.toml",
			file: "[history]\nmax_size = 10\n",
			env: map[string]any{
				"history": map[string]any{"max_size": int64(7)},
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7, cfg.History.MaxSize, "env should win over the file")
			},
		},
		{
			name:    "zero_max_size",
			path:    "keynote.toml",
			file:    "[history]\nmax_size = 0\n",
			wantErr: ErrValidationFailed,
		},
		{
			name:    "unknown_language",
			path:    "keynote.toml",
			file:    "[languages]\ncobol = [\"*.cbl\"]\n",
			wantErr: ErrValidationFailed,
		},
		{
			name:    "bad_color",
			path:    "keynote.toml",
			file:    "[theme]\nkeyword = \"red\"\n",
			wantErr: ErrValidationFailed,
		},
		{
			name:    "unknown_category",
			path:    "keynote.toml",
			file:    "[theme]\nsparkle = \"#ffffff\"\n",
			wantErr: ErrValidationFailed,
		},
		{
			name:    "bad_log_level",
			path:    "keynote.toml",
			file:    "[log]\nlevel = \"loud\"\n",
			wantErr: ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			if tt.file != "" {
				fsys[tt.path] = &fstest.MapFile{Data: []byte(tt.file)}
			}
			var env staticLoader
			if tt.env != nil {
				env = tt.env
			}

			cfg, err := LoadFS(fsys, tt.path, env)
			if tt.wantErr != nil {
				require.Error(t, err, "load should fail")
				assert.ErrorIs(t, err, tt.wantErr, "error should match")
				return
			}
			require.NoError(t, err, "load should succeed")
			tt.check(t, cfg)
		})
	}
}

func TestLoadFSUnknownKey(t *testing.T) {
	fsys := fstest.MapFS{
		"keynote.toml": {Data: []byte("[history]\nmax_items = 3\n")},
	}

	_, err := LoadFS(fsys, "keynote.toml", nil)
	require.Error(t, err, "unknown keys should be rejected")
}

func TestLoadFSParseError(t *testing.T) {
	fsys := fstest.MapFS{
		"keynote.toml": {Data: []byte("[history\n")},
	}

	_, err := LoadFS(fsys, "keynote.toml", nil)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "error should be a parse error")
	assert.Equal(t, "keynote.toml", perr.Path, "path should match")
}

func TestLoadFSUnsupportedFormat(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{}, "keynote.json", nil)
	require.Error(t, err, "json is not a config format")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Path: "history.max_size", Value: 0, Message: "must be at least 1"}
	assert.Equal(t, "invalid history.max_size (0): must be at least 1", err.Error())
}

func TestSessionOptions(t *testing.T) {
	cfg, err := FromMaps(map[string]any{
		"history":   map[string]any{"max_size": int64(3)},
		"search":    map[string]any{"whole_word": true},
		"languages": map[string]any{"kotlin": []any{"*.kts"}},
	})
	require.NoError(t, err)

	opts, err := cfg.SessionOptions()
	require.NoError(t, err)

	s := engine.New(opts...)
	s.OpenDocument("val x = 1", "build.gradle.kts")
	assert.Equal(t, highlight.LanguageKotlin, s.Language(), "configured glob should select kotlin")
	assert.True(t, s.SearchDefaults().WholeWord, "search defaults should come from config")

	for i := 0; i < 10; i++ {
		s.ApplyEdit(string(rune('a' + i)))
	}
	assert.Equal(t, 3, s.HistoryLen(), "history should be bounded by config")
}

func TestHighlightTheme(t *testing.T) {
	cfg := Default()
	cfg.Theme["comment"] = "#000000"

	theme, err := cfg.HighlightTheme()
	require.NoError(t, err)
	assert.Equal(t, "#000000", theme.Hex(highlight.CategoryComment), "override should apply")
	assert.Equal(t, "#ff6b6b", theme.Hex(highlight.CategoryKeyword), "default should remain")
}

func TestLogLevelFallback(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = ""
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
}
