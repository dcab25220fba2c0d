package stats

import "testing"

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"\n\t ", 0},
		{"a b  c", 3},
		{"  leading and trailing  ", 3},
		{"one\ntwo\tthree", 3},
		{"hyphen-ated words", 2},
		{"a\u00a0b", 1},
		{"\u00a0 a \u00a0", 1},
		{"a \u00a0 b", 3},
		{"tab\vseparated", 2},
	}

	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 1},
		{"a", 1},
		{"a\nb", 2},
		{"a\n", 2},
		{"\n\n", 3},
	}

	for _, tt := range tests {
		if got := LineCount(tt.text); got != tt.want {
			t.Errorf("LineCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCharacterCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"世界\n", 3},
	}

	for _, tt := range tests {
		if got := CharacterCount(tt.text); got != tt.want {
			t.Errorf("CharacterCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestParagraphCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"blank", " \n\n ", 0},
		{"single", "one paragraph\nstill one", 1},
		{"two", "first\n\nsecond", 2},
		{"whitespace separator", "first\n   \nsecond", 2},
		{"many newlines", "first\n\n\n\nsecond", 2},
		{"trailing separator keeps empty segment", "first\n\nsecond\n\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParagraphCount(tt.text); got != tt.want {
				t.Errorf("ParagraphCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"blank", "   ", 0},
		{"no terminator", "just words", 1},
		{"ends on terminator", "One. Two.", 2},
		{"ends on terminator and space", "One. Two. ", 3},
		{"mixed terminators", "What? Yes! Fine.", 3},
		{"run of terminators", "Really?!  Yes...  ok", 3},
		{"terminator without space", "v1.2 is out", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SentenceCount(tt.text); got != tt.want {
				t.Errorf("SentenceCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestComputeDetailed(t *testing.T) {
	text := "Hello world. Bye now.\n\nNew para"
	d := ComputeDetailed(text)

	want := Detailed{
		Summary:    Summary{Characters: 31, Words: 6, Lines: 3},
		Paragraphs: 2,
		Sentences:  3,
	}
	if d != want {
		t.Errorf("ComputeDetailed() = %+v, want %+v", d, want)
	}
	if Compute(text) != want.Summary {
		t.Errorf("Compute() = %+v, want %+v", Compute(text), want.Summary)
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("") || !IsBlank(" \t\n") {
		t.Error("empty and whitespace text should be blank")
	}
	if IsBlank(" x ") {
		t.Error("text with content is not blank")
	}
}
