package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/config/loader"
	"github.com/dshills/keynote/internal/highlight"
)

// ErrValidationFailed is wrapped by every ValidationError.
var ErrValidationFailed = errors.Base("validation failed")

// ParseError is returned when a config file cannot be parsed.
type ParseError = loader.ParseError

// ValidationError describes an invalid setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "history.max_size".
	Path string
	// Message describes the problem.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Path, e.Value, e.Message)
}

// Unwrap returns ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.History.MaxSize < 1 {
		return &ValidationError{Path: "history.max_size", Value: c.History.MaxSize, Message: "must be at least 1"}
	}

	for name, globs := range c.Languages {
		kind, err := highlight.ParseLanguageKind(name)
		if err != nil || kind == highlight.LanguageNone {
			return &ValidationError{Path: "languages." + name, Value: name, Message: "unknown language"}
		}
		for _, g := range globs {
			if !doublestar.ValidatePattern(g) {
				return &ValidationError{Path: "languages." + name, Value: g, Message: "invalid glob"}
			}
		}
	}

	for name, hex := range c.Theme {
		if _, err := highlight.ParseCategory(name); err != nil {
			return &ValidationError{Path: "theme." + name, Value: name, Message: "unknown category"}
		}
		if _, err := colorful.Hex(hex); err != nil {
			return &ValidationError{Path: "theme." + name, Value: hex, Message: "invalid color"}
		}
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return &ValidationError{Path: "log.level", Value: c.Log.Level, Message: "unknown level"}
		}
	}
	return nil
}
