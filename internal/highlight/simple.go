package highlight

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// Rule defines a highlighting rule.
type Rule struct {
	// Category is assigned to every match of Pattern.
	Category Category

	// Pattern is the regex pattern to match.
	Pattern *regexp.Regexp
}

const (
	quotedString = `"(?:[^"\\\n]|\\.)*"`
	cComments    = `//.*|/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`
)

// Rule tables are resolved once per kind; order is paint order.
var tables = map[LanguageKind][]Rule{
	LanguageKotlin: {
		rule(CategoryKeyword, `\b(fun|val|var|if|else|when|for|while|class|object|interface|enum|data|sealed|open|abstract|override|private|public|protected|internal|companion|init|constructor|super|this|return|break|continue|throw|try|catch|finally|as|is|in|!in|by|get|set)\b`),
		rule(CategoryString, quotedString),
		rule(CategoryComment, cComments),
		rule(CategoryNumber, `\b\d+(\.\d+)?\b`),
		rule(CategoryType, `\b(String|Int|Long|Float|Double|Boolean|Char|Byte|Short|Unit|Any|Nothing|List|Set|Map|Array|MutableList|MutableSet|MutableMap)\b`),
	},
	LanguageJava: {
		rule(CategoryKeyword, `\b(public|private|protected|static|final|abstract|class|interface|extends|implements|import|package|new|return|if|else|switch|case|default|for|while|do|break|continue|try|catch|finally|throw|throws|synchronized|volatile|transient|native|strictfp|enum|assert|const|goto)\b`),
		rule(CategoryString, quotedString),
		rule(CategoryComment, cComments),
		rule(CategoryNumber, `\b\d+(\.\d+)?[lLfFdD]?\b`),
		rule(CategoryType, `\b(String|int|long|float|double|boolean|char|byte|short|void|Object|Integer|Long|Float|Double|Boolean|Character|Byte|Short|List|Set|Map|ArrayList|HashSet|HashMap)\b`),
	},
	LanguageXML: {
		rule(CategoryTag, `<[^>]+>`),
		rule(CategoryAttribute, `\w+\s*=\s*"[^"]*"`),
		rule(CategoryComment, `<!--[^-]*-->`),
		rule(CategoryString, quotedString),
	},
	LanguageJSON: {
		rule(CategoryKey, `"([^"]+)"\s*:`),
		rule(CategoryString, quotedString),
		rule(CategoryNumber, `\b\d+(\.\d+)?\b`),
		rule(CategoryBoolean, `\b(true|false|null)\b`),
	},
	LanguageMarkdown: {
		rule(CategoryHeader, `(?m)^#{1,6}\s+.+$`),
		rule(CategoryBold, `\*\*([^*]+)\*\*`),
		rule(CategoryItalic, `\*([^*]+)\*`),
		rule(CategoryCode, "`([^`]+)`"),
		rule(CategoryLink, `\[([^\]]+)\]\(([^\)]+)\)`),
	},
}

func rule(c Category, pattern string) Rule {
	return Rule{Category: c, Pattern: regexp.MustCompile(pattern)}
}

// Rules returns the rule table for kind. LanguageNone has no rules.
func Rules(kind LanguageKind) []Rule {
	return tables[kind]
}

// Highlight returns the spans for text under kind's rule table, ordered by
// start offset. Spans starting at the same offset keep rule order.
func Highlight(kind LanguageKind, text string) []Span {
	rules := Rules(kind)
	if len(rules) == 0 || text == "" {
		return nil
	}

	idx := newRuneIndex(text)
	var spans []Span
	for _, r := range rules {
		for _, loc := range r.Pattern.FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			spans = append(spans, Span{
				Start:    idx.runeOffset(loc[0]),
				End:      idx.runeOffset(loc[1]),
				Category: r.Category,
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans
}

// runeIndex converts byte offsets into rune offsets for one text.
type runeIndex struct {
	ascii bool
	runes []int // runes[b] is the rune offset of byte b
}

func newRuneIndex(text string) runeIndex {
	if len(text) == utf8.RuneCountInString(text) {
		return runeIndex{ascii: true}
	}
	runes := make([]int, len(text)+1)
	n := 0
	for b := range text {
		runes[b] = n
		n++
	}
	runes[len(text)] = n
	return runeIndex{runes: runes}
}

func (ri runeIndex) runeOffset(b int) int {
	if ri.ascii {
		return b
	}
	return ri.runes[b]
}
