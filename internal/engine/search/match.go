package search

import (
	"unicode"

	"github.com/dshills/keynote/internal/engine/document"
)

// Options controls how a pattern matches.
type Options struct {
	CaseSensitive bool `json:"case_sensitive" toml:"case_sensitive" yaml:"case_sensitive"`
	WholeWord     bool `json:"whole_word" toml:"whole_word" yaml:"whole_word"`
}

// Query is a pattern with its match options.
type Query struct {
	Pattern string
	Options
}

// NewQuery creates a query for pattern.
func NewQuery(pattern string, opts Options) Query {
	return Query{Pattern: pattern, Options: opts}
}

// Len returns the pattern length in characters.
func (q Query) Len() int {
	return len([]rune(q.Pattern))
}

// IsEmpty returns true if the query cannot produce matches.
func (q Query) IsEmpty() bool {
	return q.Pattern == ""
}

// MatchSet is the ordered list of matches for a query against one text.
// Current is -1 when there are no matches.
type MatchSet struct {
	Query     Query
	Positions []document.Offset
	Current   int
}

// Empty returns a match set with no matches for q.
func Empty(q Query) MatchSet {
	return MatchSet{Query: q, Current: -1}
}

// Len returns the number of matches.
func (m MatchSet) Len() int {
	return len(m.Positions)
}

// IsEmpty returns true if there are no matches.
func (m MatchSet) IsEmpty() bool {
	return len(m.Positions) == 0
}

// HasCurrent returns true if Current names a match.
func (m MatchSet) HasCurrent() bool {
	return m.Current >= 0 && m.Current < len(m.Positions)
}

// CurrentRange returns the range of the current match.
func (m MatchSet) CurrentRange() (document.Range, bool) {
	if !m.HasCurrent() {
		return document.Range{}, false
	}
	start := m.Positions[m.Current]
	return document.NewRange(start, start+m.Query.Len()), true
}

// Ranges returns the range of every match.
func (m MatchSet) Ranges() []document.Range {
	n := m.Query.Len()
	out := make([]document.Range, len(m.Positions))
	for i, p := range m.Positions {
		out[i] = document.NewRange(p, p+n)
	}
	return out
}

// Next returns the set with the following match current, wrapping from the
// last match to the first.
func (m MatchSet) Next() MatchSet {
	if m.IsEmpty() {
		return m
	}
	if m.Current < len(m.Positions)-1 {
		m.Current++
	} else {
		m.Current = 0
	}
	return m
}

// Previous returns the set with the preceding match current, wrapping from
// the first match to the last.
func (m MatchSet) Previous() MatchSet {
	if m.IsEmpty() {
		return m
	}
	if m.Current > 0 {
		m.Current--
	} else {
		m.Current = len(m.Positions) - 1
	}
	return m
}

// WithCurrent returns the set with Current clamped into range.
func (m MatchSet) WithCurrent(i int) MatchSet {
	switch {
	case m.IsEmpty():
		m.Current = -1
	case i < 0:
		m.Current = 0
	case i >= len(m.Positions):
		m.Current = len(m.Positions) - 1
	default:
		m.Current = i
	}
	return m
}

// Find returns every match of q in text in ascending order. The first match
// is current. An empty pattern yields an empty set.
func Find(text string, q Query) MatchSet {
	positions := positionsOf([]rune(text), q)
	if len(positions) == 0 {
		return Empty(q)
	}
	return MatchSet{Query: q, Positions: positions, Current: 0}
}

func positionsOf(text []rune, q Query) []document.Offset {
	pat := []rune(q.Pattern)
	if len(pat) == 0 || len(pat) > len(text) {
		return nil
	}

	hay := text
	if !q.CaseSensitive {
		hay = lower(text)
		pat = lower(pat)
	}

	var out []document.Offset
	n, m := len(hay), len(pat)
	for i := 0; i+m <= n; {
		if !equalAt(hay, pat, i) {
			i++
			continue
		}
		if !q.WholeWord {
			out = append(out, i)
			i++
			continue
		}
		if isBoundary(text, i) && isBoundary(text, i+m) {
			out = append(out, i)
			i += m
			continue
		}
		i++
	}
	return out
}

func equalAt(hay, pat []rune, at int) bool {
	for j, r := range pat {
		if hay[at+j] != r {
			return false
		}
	}
	return true
}

func lower(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// isBoundary reports whether exactly one side of offset p is a word rune.
// Positions outside the text count as non-word.
func isBoundary(text []rune, p int) bool {
	before := p > 0 && isWordRune(text[p-1])
	after := p < len(text) && isWordRune(text[p])
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
