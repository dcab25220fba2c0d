package engine

import (
	"fmt"

	"github.com/dshills/keynote/internal/engine/search"
)

// Find searches the document for pattern and makes the first match current.
// The current match is selected. An empty pattern clears the active find.
func (s *Session) Find(pattern string, opts SearchOptions) MatchSet {
	q := search.NewQuery(pattern, opts)
	if q.IsEmpty() {
		s.ClearFind()
		return s.matches
	}

	s.matches = search.Find(s.doc.Text(), q)
	s.findActive = true
	s.selectCurrent()

	s.log.Debug().
		Str("pattern", pattern).
		Bool("case_sensitive", opts.CaseSensitive).
		Bool("whole_word", opts.WholeWord).
		Int("matches", s.matches.Len()).
		Msg("find")
	return s.matches
}

// FindNext advances to the following match, wrapping at the end.
// It returns false if there are no matches.
func (s *Session) FindNext() bool {
	if s.matches.IsEmpty() {
		return false
	}
	s.matches = s.matches.Next()
	s.selectCurrent()
	return true
}

// FindPrevious moves to the preceding match, wrapping at the start.
// It returns false if there are no matches.
func (s *Session) FindPrevious() bool {
	if s.matches.IsEmpty() {
		return false
	}
	s.matches = s.matches.Previous()
	s.selectCurrent()
	return true
}

// ReplaceCurrent replaces the current match with replacement and moves on to
// the following match. It returns false if there is no current match.
func (s *Session) ReplaceCurrent(replacement string) bool {
	next, ok := search.ReplaceCurrent(s.doc, s.matches, replacement)
	if !ok {
		return false
	}
	s.matches = next
	s.record()

	s.log.Debug().
		Str("pattern", next.Query.Pattern).
		Int("remaining", next.Len()).
		Msg("replaced current match")
	return true
}

// ReplaceAll replaces every match of pattern and returns the number of
// replacements. The edit is one history step and the active find is cleared.
func (s *Session) ReplaceAll(pattern, replacement string, opts SearchOptions) int {
	q := search.NewQuery(pattern, opts)
	text, n := search.ReplaceAll(s.doc.Text(), q, replacement)
	if n == 0 {
		return 0
	}

	sel := s.doc.Selection()
	s.doc.SetTextWithSelection(text, sel.Start, sel.End)
	s.record()
	s.ClearFind()

	s.log.Debug().
		Str("pattern", pattern).
		Int("count", n).
		Msg("replaced all matches")
	return n
}

// Matches returns the active match set.
func (s *Session) Matches() MatchSet {
	return s.matches
}

// MatchStatus describes the active match set for a status line.
func (s *Session) MatchStatus() string {
	if s.matches.IsEmpty() {
		return "No matches found"
	}
	return fmt.Sprintf("%d matches found (%d/%d)",
		s.matches.Len(), s.matches.Current+1, s.matches.Len())
}

// ClearFind drops the active query and its matches.
func (s *Session) ClearFind() {
	s.matches = search.Empty(search.Query{})
	s.findActive = false
}

// refreshMatches re-runs the active query after the text changed outside of
// the replace bookkeeping. The previous current index is clamped. The
// selection is left alone.
func (s *Session) refreshMatches() {
	if !s.findActive {
		return
	}
	prev := s.matches.Current
	s.matches = search.Find(s.doc.Text(), s.matches.Query).WithCurrent(prev)
}

func (s *Session) selectCurrent() {
	if r, ok := s.matches.CurrentRange(); ok {
		s.doc.Select(r.Start, r.End)
	}
}
