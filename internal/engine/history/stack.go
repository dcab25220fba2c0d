package history

import (
	"time"
)

// DefaultMaxSize is the default snapshot bound.
const DefaultMaxSize = 50

// Entry is an immutable full-text snapshot.
type Entry struct {
	Text      string
	Timestamp time.Time
}

// History manages undo/redo state as a bounded list of snapshots.
type History struct {
	entries []Entry
	current int

	maxSize int

	// evicted counts snapshots dropped by the bound since the last reset.
	evicted int
}

// New creates a history bounded to maxSize snapshots, seeded with the
// empty string. A non-positive maxSize uses DefaultMaxSize.
func New(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	h := &History{maxSize: maxSize}
	h.Reset()
	return h
}

// Record appends a snapshot of text after the current entry.
// It reports whether the oldest entry was evicted to honor the bound.
func (h *History) Record(text string) bool {
	// A new edit invalidates the undone future.
	if h.current < len(h.entries)-1 {
		clear(h.entries[h.current+1:])
		h.entries = h.entries[:h.current+1]
	}

	h.entries = append(h.entries, Entry{Text: text, Timestamp: time.Now()})

	if len(h.entries) > h.maxSize {
		// The slice shifts left by one, so current already names the
		// newest entry and must not advance.
		h.entries = h.entries[1:]
		h.evicted++
		return true
	}

	h.current++
	return false
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.current < len(h.entries)-1
}

// Undo moves back one snapshot and returns its text.
// It returns false and does nothing if there is nothing to undo.
func (h *History) Undo() (string, bool) {
	if !h.CanUndo() {
		return "", false
	}
	h.current--
	return h.entries[h.current].Text, true
}

// Redo moves forward one snapshot and returns its text.
// It returns false and does nothing if there is nothing to redo.
func (h *History) Redo() (string, bool) {
	if !h.CanRedo() {
		return "", false
	}
	h.current++
	return h.entries[h.current].Text, true
}

// Reset clears all history and records the empty string.
func (h *History) Reset() {
	h.ResetTo("")
}

// ResetTo clears all history and records text as the only snapshot.
func (h *History) ResetTo(text string) {
	h.entries = nil
	h.current = -1
	h.evicted = 0
	h.Record(text)
}

// Current returns the text of the current snapshot.
func (h *History) Current() string {
	if h.current < 0 || h.current >= len(h.entries) {
		return ""
	}
	return h.entries[h.current].Text
}

// CurrentIndex returns the index of the current snapshot.
func (h *History) CurrentIndex() int {
	return h.current
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	if h.current < 0 {
		return 0
	}
	return h.current
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	return len(h.entries) - 1 - h.current
}

// Evicted returns the number of snapshots dropped by the bound since the
// last reset.
func (h *History) Evicted() int {
	return h.evicted
}

// Entries returns a copy of the stored snapshots, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// MaxSize returns the snapshot bound.
func (h *History) MaxSize() int {
	return h.maxSize
}

// SetMaxSize changes the snapshot bound. If more snapshots are stored, the
// oldest are removed and the pointer moves with the shifted slice, stopping
// at the oldest remaining entry.
func (h *History) SetMaxSize(max int) {
	if max <= 0 {
		max = DefaultMaxSize
	}
	h.maxSize = max

	if excess := len(h.entries) - max; excess > 0 {
		h.entries = h.entries[excess:]
		h.evicted += excess
		h.current -= excess
		if h.current < 0 {
			h.current = 0
		}
	}
}
