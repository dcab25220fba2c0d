package document

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Position describes an offset as a line/column pair.
// Line and Column are 0-indexed; Column counts characters from the line
// start and DisplayColumn counts terminal cells (wide runes take two).
type Position struct {
	Offset        Offset
	Line          int
	Column        int
	DisplayColumn int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// PositionOf converts an offset into a Position. The offset is clamped.
func (d *Document) PositionOf(offset Offset) Position {
	var w lineWalker
	return w.advance(d.text, clamp(offset, 0, len(d.text)))
}

// PositionsOf converts ascending offsets in one scan of the text. An offset
// smaller than its predecessor restarts the scan.
func (d *Document) PositionsOf(offsets []Offset) []Position {
	out := make([]Position, len(offsets))
	var w lineWalker
	for i, off := range offsets {
		off = clamp(off, 0, len(d.text))
		if off < w.pos {
			w = lineWalker{}
		}
		out[i] = w.advance(d.text, off)
	}
	return out
}

// lineWalker tracks the line containing pos while moving forward.
type lineWalker struct {
	pos, line, lineStart int
}

func (w *lineWalker) advance(text []rune, offset Offset) Position {
	for ; w.pos < offset; w.pos++ {
		if text[w.pos] == '\n' {
			w.line++
			w.lineStart = w.pos + 1
		}
	}
	return Position{
		Offset:        offset,
		Line:          w.line,
		Column:        offset - w.lineStart,
		DisplayColumn: runewidth.StringWidth(string(text[w.lineStart:offset])),
	}
}

// Cursor returns the position of the selection start.
func (d *Document) Cursor() Position {
	return d.PositionOf(d.selection.Start)
}
