// Package highlight provides regex-based syntax highlighting spans.
//
// Each LanguageKind maps to a fixed table of (category, pattern) rules.
// Highlight runs every rule of the table over the whole text and returns the
// matched spans as character offsets. Spans from different rules may
// overlap; hosts paint them in the order returned.
package highlight

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Category is the semantic class of a highlighted span.
type Category uint8

// Span categories.
const (
	CategoryNone Category = iota
	CategoryKeyword
	CategoryString
	CategoryComment
	CategoryNumber
	CategoryType
	CategoryTag
	CategoryAttribute
	CategoryKey
	CategoryBoolean
	CategoryHeader
	CategoryBold
	CategoryItalic
	CategoryCode
	CategoryLink

	categoryCount
)

var categoryNames = [...]string{
	CategoryNone:      "none",
	CategoryKeyword:   "keyword",
	CategoryString:    "string",
	CategoryComment:   "comment",
	CategoryNumber:    "number",
	CategoryType:      "type",
	CategoryTag:       "tag",
	CategoryAttribute: "attribute",
	CategoryKey:       "key",
	CategoryBoolean:   "boolean",
	CategoryHeader:    "header",
	CategoryBold:      "bold",
	CategoryItalic:    "italic",
	CategoryCode:      "code",
	CategoryLink:      "link",
}

// String returns the category name.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// ParseCategory returns the category with the given name.
func ParseCategory(name string) (Category, error) {
	for c := CategoryNone + 1; c < categoryCount; c++ {
		if categoryNames[c] == name {
			return c, nil
		}
	}
	return CategoryNone, errors.Errorf("unknown highlight category %q", name)
}

// Categories returns every category except CategoryNone.
func Categories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for c := CategoryNone + 1; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// Span is a highlighted region [Start, End) in character offsets.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Len returns the span length.
func (s Span) Len() int {
	return s.End - s.Start
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d)", s.Category, s.Start, s.End)
}
