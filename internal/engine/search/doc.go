// Package search implements find and replace over document text.
//
// Find produces a MatchSet: the ascending start offsets of every match of a
// Query plus a current-match index used for next/previous navigation.
// MatchSet values are never mutated in place. Navigation and replacement
// return a new MatchSet, so a caller holding an older set is never surprised
// by shifted offsets.
//
// # Matching
//
// Substring mode scans left to right and resumes one character after each
// match start, so "aa" is found twice in "aaa". Whole-word mode requires a
// word boundary on both sides of the match and resumes after the match end.
// Without CaseSensitive, runes are compared in lower case; offsets always
// refer to the original text.
//
// # Replacing
//
// ReplaceCurrent edits the document at the current match and shifts the
// remaining matches by the length difference. ReplaceAll computes all matches
// up front and applies them from last to first so earlier offsets stay valid.
package search
