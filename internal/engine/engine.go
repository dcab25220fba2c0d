package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/engine/document"
	"github.com/dshills/keynote/internal/engine/history"
	"github.com/dshills/keynote/internal/engine/search"
	"github.com/dshills/keynote/internal/engine/stats"
	"github.com/dshills/keynote/internal/highlight"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a character position in the document.
	Offset = document.Offset

	// Range is a character range in the document.
	Range = document.Range

	// Position is a line/column position.
	Position = document.Position

	// Summary holds the running text counts.
	Summary = stats.Summary

	// Detailed holds all text counts.
	Detailed = stats.Detailed

	// SearchOptions controls how find patterns match.
	SearchOptions = search.Options

	// MatchSet is the result of a find.
	MatchSet = search.MatchSet

	// LanguageKind selects a highlighting table.
	LanguageKind = highlight.LanguageKind

	// Span is a highlighted region.
	Span = highlight.Span
)

// Session is the editing engine for one open document.
// It holds the document, its undo history and the active find state.
//
// Session is not safe for concurrent use; hosts must serialize calls
// through a single writer.
type Session struct {
	doc  *document.Document
	hist *history.History

	// Active find state. findActive is false until Find is called with a
	// non-empty pattern, and again after ReplaceAll or ClearFind.
	matches    search.MatchSet
	findActive bool

	name     string
	kind     highlight.LanguageKind
	baseline string

	// Configuration
	maxHistory     int
	detector       *highlight.Detector
	searchDefaults search.Options
	title          string
	log            zerolog.Logger

	// Initialization
	initContent string
	initName    string
}

// New creates a new session with an empty document.
func New(opts ...Option) *Session {
	s := &Session{
		maxHistory: DefaultMaxHistory,
		detector:   highlight.DefaultDetector(),
		title:      DefaultTitle,
		log:        zerolog.Nop(),
		matches:    search.Empty(search.Query{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.doc = document.New("")
	s.hist = history.New(s.maxHistory)

	if s.initContent != "" || s.initName != "" {
		s.OpenDocument(s.initContent, s.initName)
	}
	return s
}

// Text returns the document content.
func (s *Session) Text() string {
	return s.doc.Text()
}

// Len returns the document length in characters.
func (s *Session) Len() int {
	return s.doc.Len()
}

// Selection returns the current selection.
func (s *Session) Selection() Range {
	return s.doc.Selection()
}

// SelectedText returns the selected text.
func (s *Session) SelectedText() string {
	return s.doc.SelectedText()
}

// Select sets the selection, clamped to the document.
func (s *Session) Select(start, end Offset) {
	s.doc.Select(start, end)
}

// CursorPosition returns the line/column of the selection start.
func (s *Session) CursorPosition() Position {
	return s.doc.Cursor()
}

// PositionsOf returns the line and column of each ascending offset in a
// single pass over the text.
func (s *Session) PositionsOf(offsets []Offset) []Position {
	return s.doc.PositionsOf(offsets)
}

// ApplyEdit replaces the document with newText after a host edit. The text
// is recorded in history, the selection is clamped and the active find is
// recomputed. It returns the running counts for the new text.
func (s *Session) ApplyEdit(newText string) Summary {
	if !utf8.ValidString(newText) {
		// the document stores runes, so compare in that form
		newText = string([]rune(newText))
	}
	if newText != s.doc.Text() {
		sel := s.doc.Selection()
		s.doc.SetTextWithSelection(newText, sel.Start, sel.End)
		s.record()
		s.refreshMatches()
	}
	return s.Statistics()
}

// ReplaceRange replaces [start, end) with replacement and records the edit.
func (s *Session) ReplaceRange(start, end Offset, replacement string) error {
	if err := s.doc.ReplaceRange(start, end, replacement); err != nil {
		return errors.Errorf("replace range: %w", err)
	}
	s.record()
	s.refreshMatches()
	return nil
}

// Statistics returns character, word and line counts.
func (s *Session) Statistics() Summary {
	return stats.Compute(s.doc.Text())
}

// DetailedStatistics returns all counts including paragraphs and sentences.
func (s *Session) DetailedStatistics() Detailed {
	return stats.ComputeDetailed(s.doc.Text())
}

// CanUndo returns true if undo is available.
func (s *Session) CanUndo() bool {
	return s.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (s *Session) CanRedo() bool {
	return s.hist.CanRedo()
}

// Undo restores the previous snapshot. The cursor moves to the end of the
// restored text. It returns false if there is nothing to undo.
func (s *Session) Undo() (string, bool) {
	text, ok := s.hist.Undo()
	if !ok {
		return s.doc.Text(), false
	}
	s.restore(text)
	return text, true
}

// Redo restores the next snapshot. It returns false if there is nothing to
// redo.
func (s *Session) Redo() (string, bool) {
	text, ok := s.hist.Redo()
	if !ok {
		return s.doc.Text(), false
	}
	s.restore(text)
	return text, true
}

func (s *Session) restore(text string) {
	n := len([]rune(text))
	s.doc.SetTextWithSelection(text, n, n)
	s.refreshMatches()
}

// HistoryLen returns the number of stored snapshots.
func (s *Session) HistoryLen() int {
	return s.hist.Len()
}

// Copy returns the selected text. It returns false if nothing is selected.
func (s *Session) Copy() (string, bool) {
	text := s.doc.SelectedText()
	return text, text != ""
}

// Cut removes the selected text and returns it. It returns false and leaves
// the document alone if nothing is selected.
func (s *Session) Cut() (string, bool) {
	text := s.doc.SelectedText()
	if text == "" {
		return "", false
	}
	s.doc.ReplaceSelection("")
	s.record()
	s.refreshMatches()
	return text, true
}

// Paste replaces the selection with clip and returns the resulting text.
// An empty clip is a no-op.
func (s *Session) Paste(clip string) string {
	if clip == "" {
		return s.doc.Text()
	}
	s.doc.ReplaceSelection(clip)
	s.record()
	s.refreshMatches()
	return s.doc.Text()
}

// OpenDocument replaces the session state with already-read file content.
// History restarts with content as its only snapshot and the language kind
// is detected from nameHint.
func (s *Session) OpenDocument(content, nameHint string) {
	s.doc.SetText(content)
	text := s.doc.Text()
	s.hist.ResetTo(text)
	s.name = nameHint
	s.kind = s.detector.Detect(nameHint)
	s.baseline = text
	s.ClearFind()

	s.log.Debug().
		Str("name", nameHint).
		Str("language", s.kind.String()).
		Int("length", s.doc.Len()).
		Msg("document opened")
}

// NewDocument discards the document and starts an empty, unnamed one.
func (s *Session) NewDocument() {
	s.doc.SetText("")
	s.hist.Reset()
	s.name = ""
	s.kind = highlight.LanguageNone
	s.baseline = ""
	s.ClearFind()
}

// Save records name as the document name. Nothing is written anywhere; the
// host owns storage. A name with an extension also updates the language kind.
func (s *Session) Save(name string) error {
	if s.doc.IsEmpty() {
		return ErrEmptyDocument
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	if highlight.Extension(name) != "" {
		s.kind = s.detector.Detect(name)
	}
	s.name = name
	s.baseline = s.doc.Text()
	return nil
}

// FileName returns the document name, or "" for an unnamed document.
func (s *Session) FileName() string {
	return s.name
}

// DisplayName returns the document name, or UnknownFileName.
func (s *Session) DisplayName() string {
	if s.name == "" {
		return UnknownFileName
	}
	return s.name
}

// Title returns "name (Kind)" for a named document and the session title
// otherwise.
func (s *Session) Title() string {
	if s.name == "" {
		return s.title
	}
	return fmt.Sprintf("%s (%s)", s.name, s.kind.Description())
}

// Language returns the current language kind.
func (s *Session) Language() LanguageKind {
	return s.kind
}

// SetLanguage overrides the detected language kind.
func (s *Session) SetLanguage(kind LanguageKind) {
	s.kind = kind
}

// Highlights returns the highlight spans for the current text and kind.
func (s *Session) Highlights() []Span {
	return highlight.Highlight(s.kind, s.doc.Text())
}

// SearchDefaults returns the configured default find options.
func (s *Session) SearchDefaults() SearchOptions {
	return s.searchDefaults
}

// record snapshots the current text.
func (s *Session) record() {
	if evicted := s.hist.Record(s.doc.Text()); evicted {
		s.log.Debug().
			Int("max", s.hist.MaxSize()).
			Int("evicted", s.hist.Evicted()).
			Msg("history bound reached, oldest snapshot dropped")
	}
}
