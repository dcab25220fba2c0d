package engine

import (
	"github.com/rs/zerolog"

	"github.com/dshills/keynote/internal/engine/history"
	"github.com/dshills/keynote/internal/engine/search"
	"github.com/dshills/keynote/internal/highlight"
)

// Default configuration values.
const (
	DefaultMaxHistory = history.DefaultMaxSize
	DefaultTitle      = "Keynote"
	UnknownFileName   = "Unknown File"
)

// Option configures a Session during creation.
type Option func(*Session)

// WithContent opens the session on content, as if by OpenDocument.
func WithContent(content, name string) Option {
	return func(s *Session) {
		s.initContent = content
		s.initName = name
	}
}

// WithMaxHistory sets the maximum number of history snapshots.
func WithMaxHistory(max int) Option {
	return func(s *Session) {
		if max > 0 {
			s.maxHistory = max
		}
	}
}

// WithLogger sets the logger for engine events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithDetector sets the file name → language detector.
func WithDetector(d *highlight.Detector) Option {
	return func(s *Session) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithSearchDefaults sets the options hosts use when none are given.
func WithSearchDefaults(opts search.Options) Option {
	return func(s *Session) {
		s.searchDefaults = opts
	}
}

// WithTitle sets the title shown when no file name is set.
func WithTitle(title string) Option {
	return func(s *Session) {
		if title != "" {
			s.title = title
		}
	}
}
