package search

import (
	"strings"

	"github.com/dshills/keynote/internal/engine/document"
)

// ReplaceCurrent replaces the current match in doc with replacement.
//
// It returns false, leaving doc untouched, when m has no current match or the
// match no longer fits the document. On success the returned set drops the
// replaced match, shifts later matches by the length difference and keeps
// Current pointing at the following match (or the last one). Matches that
// overlapped the replaced text are dropped because they no longer exist. If a
// match remains current it is selected in doc.
func ReplaceCurrent(doc *document.Document, m MatchSet, replacement string) (MatchSet, bool) {
	if !m.HasCurrent() {
		return m, false
	}

	plen := m.Query.Len()
	start := m.Positions[m.Current]
	end := start + plen
	if err := doc.ReplaceRange(start, end, replacement); err != nil {
		return m, false
	}

	delta := len([]rune(replacement)) - plen
	replaced := document.NewRange(start, end)

	positions := make([]document.Offset, 0, len(m.Positions)-1)
	current := 0
	for i, p := range m.Positions {
		if i == m.Current || replaced.Overlaps(document.NewRange(p, p+plen)) {
			continue
		}
		if i < m.Current {
			positions = append(positions, p)
			current++
			continue
		}
		positions = append(positions, p+delta)
	}

	next := MatchSet{Query: m.Query, Positions: positions}.WithCurrent(current)
	if r, ok := next.CurrentRange(); ok {
		doc.Select(r.Start, r.End)
	}
	return next, true
}

// ReplaceAll replaces every match of q in text and returns the new text and
// the number of replacements. Matches are computed against the original text
// and applied from last to first. A match overlapping one already replaced to
// its right is skipped.
func ReplaceAll(text string, q Query, replacement string) (string, int) {
	runes := []rune(text)
	positions := positionsOf(runes, q)
	if len(positions) == 0 {
		return text, 0
	}

	plen := q.Len()
	repl := []rune(replacement)

	// Walk backwards collecting untouched tails, then stitch them together.
	pieces := make([][]rune, 0, 2*len(positions)+1)
	limit := len(runes)
	count := 0
	for i := len(positions) - 1; i >= 0; i-- {
		p := positions[i]
		if p+plen > limit {
			continue
		}
		pieces = append(pieces, runes[p+plen:limit], repl)
		limit = p
		count++
	}
	pieces = append(pieces, runes[:limit])

	var b strings.Builder
	if n := len(text) + count*(len(replacement)-len(q.Pattern)); n > 0 {
		b.Grow(n)
	}
	for i := len(pieces) - 1; i >= 0; i-- {
		b.WriteString(string(pieces[i]))
	}
	return b.String(), count
}
