package highlight

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// LanguageKind selects a highlighting rule table.
type LanguageKind uint8

// Supported language kinds.
const (
	LanguageNone LanguageKind = iota
	LanguageKotlin
	LanguageJava
	LanguageXML
	LanguageJSON
	LanguageMarkdown
)

var languageNames = [...]string{
	LanguageNone:     "none",
	LanguageKotlin:   "kotlin",
	LanguageJava:     "java",
	LanguageXML:      "xml",
	LanguageJSON:     "json",
	LanguageMarkdown: "markdown",
}

var languageDescriptions = [...]string{
	LanguageNone:     "Text",
	LanguageKotlin:   "Kotlin",
	LanguageJava:     "Java",
	LanguageXML:      "XML",
	LanguageJSON:     "JSON",
	LanguageMarkdown: "Markdown",
}

// String returns the configuration name of the kind.
func (k LanguageKind) String() string {
	if int(k) < len(languageNames) {
		return languageNames[k]
	}
	return "unknown"
}

// Description returns the display name of the kind.
func (k LanguageKind) Description() string {
	if int(k) < len(languageDescriptions) {
		return languageDescriptions[k]
	}
	return languageDescriptions[LanguageNone]
}

// ParseLanguageKind returns the kind with the given configuration name.
func ParseLanguageKind(name string) (LanguageKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range languageNames {
		if n == name {
			return LanguageKind(i), nil
		}
	}
	return LanguageNone, errors.Errorf("unknown language kind %q", name)
}

// LanguageKinds returns every kind that has a rule table.
func LanguageKinds() []LanguageKind {
	return []LanguageKind{LanguageKotlin, LanguageJava, LanguageXML, LanguageJSON, LanguageMarkdown}
}
