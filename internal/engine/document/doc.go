// Package document provides the in-memory text document edited by a session.
//
// A Document owns the full text buffer and a single selection. It is the
// single source of truth that history, search and statistics read from.
//
// # Offsets
//
// All positions are zero-based character offsets (Unicode code points),
// never byte offsets. A selection is always clamped to [0, Len()] after any
// mutation, so callers can rely on Selection().Start <= Selection().End <= Len().
//
// # Basic Usage
//
//	doc := document.New("Hello, World!")
//
//	// Replace a range and leave the cursor after the inserted text
//	doc.ReplaceRange(7, 12, "Go") // "Hello, Go!"
//
//	// Select and read back
//	doc.Select(0, 5)
//	doc.SelectedText() // "Hello"
//
// Document is not safe for concurrent use. Sessions serialize access through
// a single writer.
package document
