package document

import (
	"gitlab.com/tozd/go/errors"
)

// ErrRange indicates replace or selection arguments outside the document.
var ErrRange = errors.Base("range out of bounds")

// Document holds the text buffer and the current selection.
type Document struct {
	text      []rune
	selection Range
}

// New creates a document with the given content and a collapsed selection at 0.
func New(text string) *Document {
	return &Document{text: []rune(text)}
}

// Text returns the full document content.
func (d *Document) Text() string {
	return string(d.text)
}

// Len returns the document length in characters.
func (d *Document) Len() int {
	return len(d.text)
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return len(d.text) == 0
}

// Selection returns the current selection range.
func (d *Document) Selection() Range {
	return d.selection
}

// HasSelection returns true if the selection is not collapsed.
func (d *Document) HasSelection() bool {
	return !d.selection.IsEmpty()
}

// SetText replaces the content and collapses the selection to 0.
func (d *Document) SetText(text string) {
	d.text = []rune(text)
	d.selection = Range{}
}

// SetTextWithSelection replaces the content and sets the selection,
// clamping it to the new content.
func (d *Document) SetTextWithSelection(text string, start, end Offset) {
	d.text = []rune(text)
	d.Select(start, end)
}

// Select sets the selection. Out-of-range bounds are clamped and a reversed
// range is normalized, so Select never fails.
func (d *Document) Select(start, end Offset) {
	d.selection = Range{Start: start, End: end}.Clamp(len(d.text))
}

// MoveCursor collapses the selection at offset.
func (d *Document) MoveCursor(offset Offset) {
	d.Select(offset, offset)
}

// SelectedText returns the text covered by the selection.
func (d *Document) SelectedText() string {
	sel := d.selection.Clamp(len(d.text))
	return string(d.text[sel.Start:sel.End])
}

// Slice returns the text in [start, end). Bounds are clamped.
func (d *Document) Slice(start, end Offset) string {
	r := Range{Start: start, End: end}.Clamp(len(d.text))
	return string(d.text[r.Start:r.End])
}

// ReplaceRange replaces the text in [start, end) with replacement.
// It requires 0 <= start <= end <= Len() and returns ErrRange otherwise,
// leaving the document unchanged. On success the selection collapses to the
// end of the inserted text.
func (d *Document) ReplaceRange(start, end Offset, replacement string) error {
	if start < 0 || start > end || end > len(d.text) {
		return errors.WithDetails(ErrRange, "start", start, "end", end, "length", len(d.text))
	}

	ins := []rune(replacement)
	next := make([]rune, 0, len(d.text)-(end-start)+len(ins))
	next = append(next, d.text[:start]...)
	next = append(next, ins...)
	next = append(next, d.text[end:]...)
	d.text = next

	d.MoveCursor(start + len(ins))
	return nil
}

// ReplaceSelection replaces the selected text with replacement.
func (d *Document) ReplaceSelection(replacement string) {
	sel := d.selection.Clamp(len(d.text))
	// The clamped selection is always in range.
	_ = d.ReplaceRange(sel.Start, sel.End, replacement)
}
