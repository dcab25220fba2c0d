package engine

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestPropertyUndoRedoRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(WithContent(rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "initial"), ""))

		edits := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,20}`), 1, 80).Draw(t, "edits")
		for _, e := range edits {
			s.ApplyEdit(e)
		}
		before := s.Text()

		undos := 0
		for n, k := 0, rapid.IntRange(0, 60).Draw(t, "k"); n < k; n++ {
			if _, ok := s.Undo(); !ok {
				break
			}
			undos++
		}
		for n := 0; n < undos; n++ {
			if _, ok := s.Redo(); !ok {
				t.Fatalf("redo failed after %d undos", undos)
			}
		}

		if s.Text() != before {
			t.Fatalf("text = %q, want %q", s.Text(), before)
		}
		if s.HistoryLen() > DefaultMaxHistory {
			t.Fatalf("history holds %d snapshots", s.HistoryLen())
		}
	})
}

func TestPropertyReplaceAllMatchesStrings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[ab ]{0,40}`).Draw(t, "text")
		repl := rapid.StringMatching(`[abcd]{0,6}`).Draw(t, "replacement")

		s := New(WithContent(text, ""))
		n := s.ReplaceAll("ab", repl, SearchOptions{CaseSensitive: true})

		if want := strings.Count(text, "ab"); n != want {
			t.Fatalf("count = %d, want %d", n, want)
		}
		if want := strings.ReplaceAll(text, "ab", repl); s.Text() != want {
			t.Fatalf("text = %q, want %q", s.Text(), want)
		}
	})
}

func TestPropertyReplaceRangeClampsSelection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zé\n ]{0,30}`).Draw(t, "text")
		s := New(WithContent(text, ""))

		n := s.Len()
		start := rapid.IntRange(0, n).Draw(t, "start")
		end := rapid.IntRange(start, n).Draw(t, "end")
		repl := rapid.StringMatching(`[xyé]{0,5}`).Draw(t, "replacement")

		if err := s.ReplaceRange(start, end, repl); err != nil {
			t.Fatalf("ReplaceRange(%d, %d) error = %v", start, end, err)
		}

		sel := s.Selection()
		if sel.Start < 0 || sel.Start > sel.End || sel.End > s.Len() {
			t.Fatalf("selection %v outside [0, %d]", sel, s.Len())
		}
		if err := s.ReplaceRange(0, s.Len()+1, ""); err == nil {
			t.Fatal("ReplaceRange past the end should fail")
		}
	})
}
