// Package engine provides the editing engine behind Keynote.
//
// A Session combines the document model, bounded snapshot history, text
// statistics and find/replace into one object per open document. Hosts feed
// user edits in as whole texts and read back counts, matches and highlight
// spans.
//
// # Architecture
//
// The session is built on several sub-packages:
//
//   - document: text plus a clamped selection, rune offsets throughout
//   - history: bounded linear list of full-text snapshots
//   - stats: character, word, line, paragraph and sentence counts
//   - search: substring and whole-word matching, replace and replace-all
//
// Highlighting and language detection live in internal/highlight.
//
// # Thread Safety
//
// A Session is not safe for concurrent use. Hosts route every call through a
// single writer; internal/app does this with an actor goroutine.
//
// # Basic Usage
//
//	s := engine.New(engine.WithContent("I have a cat", "pets.md"))
//
//	// Host edits arrive as the full new text
//	sum := s.ApplyEdit("I have a cat and a hat")
//	_ = sum.Words // 7
//
//	// Find selects the first match
//	s.Find("cat", engine.SearchOptions{})
//	s.ReplaceCurrent("dog") // "I have a dog and a hat"
//
//	s.Undo() // "I have a cat and a hat"
//
// # Replace All
//
// ReplaceAll computes matches on the original text and applies them from
// last to first, so earlier offsets stay valid:
//
//	s.ApplyEdit("ababab")
//	n := s.ReplaceAll("ab", "abcd", engine.SearchOptions{CaseSensitive: true})
//	// n == 3, s.Text() == "abcdabcdabcd"
//
// # History
//
// Every text-changing operation records one snapshot. The history keeps at
// most WithMaxHistory snapshots (50 by default) and drops the oldest beyond
// that. Opening a document makes its content the earliest reachable state.
//
// # Error Handling
//
// The package defines several sentinel errors:
//
//   - ErrRange: replace arguments outside the document
//   - ErrNoMatch: find or replace with nothing to act on
//   - ErrEmptyDocument: Save with no content
//   - ErrNameRequired: Save without a name
package engine
