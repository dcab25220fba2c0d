package highlight

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// DefaultPatterns maps each kind to the file name globs that select it.
var DefaultPatterns = map[LanguageKind][]string{
	LanguageKotlin:   {"*.kt"},
	LanguageJava:     {"*.java"},
	LanguageXML:      {"*.xml"},
	LanguageJSON:     {"*.json"},
	LanguageMarkdown: {"*.md", "*.markdown"},
}

// Detector picks a LanguageKind from a file name.
type Detector struct {
	patterns map[LanguageKind][]string
}

// NewDetector creates a detector from kind→glob patterns. Globs are matched
// against the lower-cased base name. A nil map uses DefaultPatterns.
func NewDetector(patterns map[LanguageKind][]string) (*Detector, error) {
	if patterns == nil {
		patterns = DefaultPatterns
	}

	d := &Detector{patterns: make(map[LanguageKind][]string, len(patterns))}
	for kind, globs := range patterns {
		for _, g := range globs {
			if !doublestar.ValidatePattern(g) {
				return nil, errors.Errorf("invalid %s pattern %q", kind, g)
			}
		}
		d.patterns[kind] = append([]string(nil), globs...)
	}
	return d, nil
}

// DefaultDetector returns a detector using DefaultPatterns.
func DefaultDetector() *Detector {
	d, _ := NewDetector(nil)
	return d
}

// Detect returns the kind for name, or LanguageNone if nothing matches.
// Kinds are tried in LanguageKinds order so overlapping globs resolve the
// same way every time.
func (d *Detector) Detect(name string) LanguageKind {
	if name == "" {
		return LanguageNone
	}
	base := strings.ToLower(filepath.Base(name))

	for _, kind := range LanguageKinds() {
		for _, g := range d.patterns[kind] {
			if ok, _ := doublestar.Match(strings.ToLower(g), base); ok {
				return kind
			}
		}
	}
	return LanguageNone
}

// Extension returns the lower-cased extension of name without the dot, or
// "" if name has none.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}
