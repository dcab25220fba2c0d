package search

import (
	"reflect"
	"testing"

	"github.com/dshills/keynote/internal/engine/document"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		opts    Options
		want    []int
	}{
		{"empty pattern", "abc", "", Options{}, nil},
		{"empty text", "", "a", Options{}, nil},
		{"pattern longer than text", "ab", "abc", Options{}, nil},
		{"overlap resumes at start+1", "aaa", "aa", Options{CaseSensitive: true}, []int{0, 1}},
		{"repeated characters", "aaaa", "a", Options{CaseSensitive: true}, []int{0, 1, 2, 3}},
		{"substring", "catcatalog", "cat", Options{}, []int{0, 3}},
		{"whole word needs an end boundary", "catcatalog", "cat", Options{WholeWord: true}, nil},
		{"whole word", "cat catalog", "cat", Options{WholeWord: true}, []int{0}},
		{"whole word no match inside", "concatenate", "cat", Options{WholeWord: true}, nil},
		{"whole word punctuation", "cat, cat.cat_", "cat", Options{WholeWord: true}, []int{0, 5}},
		{"case insensitive", "Cat cAt CAT", "cat", Options{}, []int{0, 4, 8}},
		{"case sensitive", "Cat cAt cat", "cat", Options{CaseSensitive: true}, []int{8}},
		{"whole word case insensitive", "The theme then THE", "the", Options{WholeWord: true}, []int{0, 15}},
		{"whole word does not overlap", "aa aa", "aa", Options{WholeWord: true, CaseSensitive: true}, []int{0, 3}},
		{"rune offsets", "héllo héllo", "llo", Options{}, []int{2, 8}},
		{"unicode case folding", "ÉCOLE école", "école", Options{}, []int{0, 6}},
		{"unicode word boundary", "naïve naïveté", "naïve", Options{WholeWord: true}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Find(tt.text, NewQuery(tt.pattern, tt.opts))
			if len(tt.want) == 0 {
				if !m.IsEmpty() || m.Current != -1 {
					t.Errorf("Find() = %+v, want empty with Current -1", m)
				}
				return
			}
			if !reflect.DeepEqual(m.Positions, tt.want) {
				t.Errorf("Find() positions = %v, want %v", m.Positions, tt.want)
			}
			if m.Current != 0 {
				t.Errorf("Find() Current = %d, want 0", m.Current)
			}
		})
	}
}

func TestWholeWordPatternWithNonWordEdges(t *testing.T) {
	// A boundary needs a word rune on exactly one side, so a pattern that
	// starts with punctuation only matches after a word rune.
	m := Find("a-b -b", NewQuery("-b", Options{WholeWord: true}))
	if !reflect.DeepEqual(m.Positions, []int{1}) {
		t.Errorf("positions = %v, want [1]", m.Positions)
	}
}

func TestNextPreviousWrap(t *testing.T) {
	m := Find("x x x", NewQuery("x", Options{}))
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}

	m = m.Next()
	if m.Current != 1 {
		t.Errorf("Next() Current = %d, want 1", m.Current)
	}
	m = m.Next().Next()
	if m.Current != 0 {
		t.Errorf("Next() should wrap to 0, got %d", m.Current)
	}
	m = m.Previous()
	if m.Current != 2 {
		t.Errorf("Previous() should wrap to 2, got %d", m.Current)
	}
}

func TestNextDoesNotMutateReceiver(t *testing.T) {
	m := Find("x x", NewQuery("x", Options{}))
	_ = m.Next()
	if m.Current != 0 {
		t.Errorf("receiver Current changed to %d", m.Current)
	}
}

func TestNavigationOnEmptySet(t *testing.T) {
	m := Find("abc", NewQuery("z", Options{}))
	if m.Next().Current != -1 || m.Previous().Current != -1 {
		t.Error("navigation on an empty set must stay at -1")
	}
	if _, ok := m.CurrentRange(); ok {
		t.Error("empty set has no current range")
	}
}

func TestCurrentRange(t *testing.T) {
	m := Find("say héllo", NewQuery("héllo", Options{}))
	r, ok := m.CurrentRange()
	if !ok || r != document.NewRange(4, 9) {
		t.Errorf("CurrentRange() = %v, %v; want [4:9), true", r, ok)
	}
}

func TestReplaceCurrentCaseInsensitive(t *testing.T) {
	doc := document.New("I have a cat")
	m := Find(doc.Text(), NewQuery("Cat", Options{}))

	next, ok := ReplaceCurrent(doc, m, "dog")
	if !ok {
		t.Fatal("ReplaceCurrent() failed")
	}
	if doc.Text() != "I have a dog" {
		t.Errorf("Text() = %q, want %q", doc.Text(), "I have a dog")
	}
	if !next.IsEmpty() || next.Current != -1 {
		t.Errorf("next = %+v, want empty with Current -1", next)
	}
}

func TestReplaceCurrentShiftsLaterMatches(t *testing.T) {
	doc := document.New("ab ab ab")
	m := Find(doc.Text(), NewQuery("ab", Options{})).Next()

	next, ok := ReplaceCurrent(doc, m, "xyz1")
	if !ok {
		t.Fatal("ReplaceCurrent() failed")
	}
	if doc.Text() != "ab xyz1 ab" {
		t.Fatalf("Text() = %q", doc.Text())
	}
	if !reflect.DeepEqual(next.Positions, []int{0, 8}) {
		t.Errorf("positions = %v, want [0 8]", next.Positions)
	}
	if next.Current != 1 {
		t.Errorf("Current = %d, want 1", next.Current)
	}
	if sel := doc.Selection(); sel != document.NewRange(8, 10) {
		t.Errorf("Selection() = %v, want [8:10)", sel)
	}

	// Every remaining position must still point at the pattern.
	for _, r := range next.Ranges() {
		if got := doc.Slice(r.Start, r.End); got != "ab" {
			t.Errorf("match at %v = %q, want %q", r, got, "ab")
		}
	}
}

func TestReplaceCurrentClampsIndex(t *testing.T) {
	doc := document.New("a a a")
	m := Find(doc.Text(), NewQuery("a", Options{})).Previous()

	next, ok := ReplaceCurrent(doc, m, "bb")
	if !ok {
		t.Fatal("ReplaceCurrent() failed")
	}
	if doc.Text() != "a a bb" {
		t.Errorf("Text() = %q", doc.Text())
	}
	if next.Current != 1 {
		t.Errorf("Current = %d, want clamped to 1", next.Current)
	}
	if sel := doc.Selection(); sel != document.NewRange(2, 3) {
		t.Errorf("Selection() = %v, want [2:3)", sel)
	}
}

func TestReplaceCurrentDropsOverlappedMatches(t *testing.T) {
	doc := document.New("aaa")
	m := Find(doc.Text(), NewQuery("aa", Options{CaseSensitive: true}))

	next, ok := ReplaceCurrent(doc, m, "b")
	if !ok {
		t.Fatal("ReplaceCurrent() failed")
	}
	if doc.Text() != "ba" {
		t.Errorf("Text() = %q, want %q", doc.Text(), "ba")
	}
	if !next.IsEmpty() {
		t.Errorf("overlapping match should be dropped, got %v", next.Positions)
	}
}

func TestReplaceCurrentWithoutCurrent(t *testing.T) {
	doc := document.New("abc")
	m := Find(doc.Text(), NewQuery("z", Options{}))

	if _, ok := ReplaceCurrent(doc, m, "y"); ok {
		t.Error("ReplaceCurrent() should fail with no current match")
	}
	if doc.Text() != "abc" {
		t.Errorf("text modified: %q", doc.Text())
	}
}

func TestReplaceCurrentStaleSet(t *testing.T) {
	doc := document.New("hello world")
	m := Find(doc.Text(), NewQuery("world", Options{}))
	doc.SetText("hi")

	if _, ok := ReplaceCurrent(doc, m, "x"); ok {
		t.Error("ReplaceCurrent() should fail when the match is out of range")
	}
	if doc.Text() != "hi" {
		t.Errorf("text modified: %q", doc.Text())
	}
}

func TestReplaceCurrentUntilEmpty(t *testing.T) {
	doc := document.New("one two one two one")
	m := Find(doc.Text(), NewQuery("one", Options{}))

	var ok bool
	for i := 0; i < 3; i++ {
		m, ok = ReplaceCurrent(doc, m, "1")
		if !ok {
			t.Fatalf("replace %d failed", i)
		}
	}
	if doc.Text() != "1 two 1 two 1" {
		t.Errorf("Text() = %q", doc.Text())
	}
	if m.Current != -1 {
		t.Errorf("Current = %d, want -1", m.Current)
	}
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		pattern     string
		opts        Options
		replacement string
		want        string
		count       int
	}{
		{"growing replacement", "ababab", "ab", Options{}, "abcd", "abcdabcdabcd", 3},
		{"shrinking replacement", "hello hello", "hello", Options{}, "hi", "hi hi", 2},
		{"delete", "a-b-c", "-", Options{}, "", "abc", 2},
		{"no match", "abc", "z", Options{}, "y", "abc", 0},
		{"empty pattern", "abc", "", Options{}, "y", "abc", 0},
		{"whole word", "cat catalog cat", "cat", Options{WholeWord: true}, "dog", "dog catalog dog", 2},
		{"case insensitive keeps offsets", "Straße STRASSE", "straße", Options{}, "road", "road STRASSE", 1},
		{"overlapping matches", "aaa", "aa", Options{CaseSensitive: true}, "b", "ab", 1},
		{"replacement contains pattern", "xx", "x", Options{}, "xx", "xxxx", 2},
		{"multibyte", "世界 世界", "界", Options{}, "x", "世x 世x", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := ReplaceAll(tt.text, NewQuery(tt.pattern, tt.opts), tt.replacement)
			if got != tt.want || count != tt.count {
				t.Errorf("ReplaceAll() = %q, %d; want %q, %d", got, count, tt.want, tt.count)
			}
		})
	}
}

func TestReplaceAllMatchesSequentialReplaceCurrent(t *testing.T) {
	text := "the cat sat on the cat mat"
	q := NewQuery("cat", Options{})

	want, count := ReplaceAll(text, q, "tiger")

	doc := document.New(text)
	m := Find(text, q)
	n := 0
	for m.HasCurrent() {
		var ok bool
		m, ok = ReplaceCurrent(doc, m, "tiger")
		if !ok {
			t.Fatal("ReplaceCurrent() failed")
		}
		n++
	}

	if doc.Text() != want || n != count {
		t.Errorf("sequential = %q (%d), ReplaceAll = %q (%d)", doc.Text(), n, want, count)
	}
}
