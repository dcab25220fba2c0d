// Package history provides bounded undo/redo for the text editor engine.
//
// History stores immutable full-text snapshots in chronological order with a
// pointer to the current one. Key rules:
//
// # Recording
//
// Record appends a snapshot after the current one. Any snapshots after the
// current pointer (a previously undone future) are discarded first, so a new
// edit always invalidates redo.
//
//	h := history.New(50)
//	h.Record("a")
//	h.Record("ab")
//	h.Undo()       // "a", true
//	h.Record("ax") // redo of "ab" is gone
//
// # Bound
//
// The sequence never holds more than MaxSize snapshots. When a record pushes
// it past the bound, the oldest snapshot is evicted and the pointer is left
// where it is: the slice shifted left by one, so the pointer still names the
// newest snapshot.
//
// # Reset
//
// Reset clears everything and records the empty string, so a History is never
// empty once a document exists. ResetTo does the same with given content.
//
// History is not safe for concurrent use.
package history
