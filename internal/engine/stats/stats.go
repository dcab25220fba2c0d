// Package stats computes text statistics for a document.
//
// Every function is pure and recomputed from the full text on each call.
// Segment counts (paragraphs, sentences) are the number of pieces produced by
// splitting on the delimiter, including a trailing empty piece when the text
// ends with a delimiter: "One. Two. " has three sentences, "One. Two." has two.
package stats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	paragraphSep = regexp.MustCompile(`\n\s*\n`)
	sentenceSep  = regexp.MustCompile(`[.!?]+\s+`)
)

// Summary holds the counts shown while editing.
type Summary struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Lines      int `json:"lines"`
}

// Detailed extends Summary with paragraph and sentence counts.
type Detailed struct {
	Summary
	Paragraphs int `json:"paragraphs"`
	Sentences  int `json:"sentences"`
}

// Compute returns the summary counts for text.
func Compute(text string) Summary {
	return Summary{
		Characters: CharacterCount(text),
		Words:      WordCount(text),
		Lines:      LineCount(text),
	}
}

// ComputeDetailed returns all counts for text.
func ComputeDetailed(text string) Detailed {
	return Detailed{
		Summary:    Compute(text),
		Paragraphs: ParagraphCount(text),
		Sentences:  SentenceCount(text),
	}
}

// CharacterCount returns the number of characters (runes) in text.
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}

// WordCount returns the number of tokens separated by runs of ASCII
// whitespace after trimming. Other Unicode spaces, such as a no-break space,
// join the runes on either side into one word. Blank text has zero words.
func WordCount(text string) int {
	if IsBlank(text) {
		return 0
	}
	return len(strings.FieldsFunc(strings.TrimSpace(text), isASCIISpace))
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// LineCount returns the number of newlines plus one. Empty text is one line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// ParagraphCount returns the number of segments separated by blank lines.
// Blank text has zero paragraphs.
func ParagraphCount(text string) int {
	return segments(paragraphSep, text)
}

// SentenceCount returns the number of segments separated by runs of
// sentence terminators followed by whitespace. Blank text has zero sentences.
func SentenceCount(text string) int {
	return segments(sentenceSep, text)
}

func segments(sep *regexp.Regexp, text string) int {
	if IsBlank(text) {
		return 0
	}
	return len(sep.Split(text, -1))
}

// IsBlank returns true if text is empty or only whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
