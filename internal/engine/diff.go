package engine

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeSummary counts the characters inserted and deleted since the
// document was opened or last saved.
type ChangeSummary struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// IsModified returns true if the text differs from the opened or saved text.
func (s *Session) IsModified() bool {
	return s.doc.Text() != s.baseline
}

// Diff returns a unified-style patch from the baseline to the current text.
// It returns "" when the document is unmodified.
func (s *Session) Diff() string {
	if !s.IsModified() {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := s.diffs(dmp)
	patches := dmp.PatchMake(s.baseline, diffs)
	return dmp.PatchToText(patches)
}

// Changes summarizes the difference between the baseline and current text.
func (s *Session) Changes() ChangeSummary {
	var cs ChangeSummary
	if !s.IsModified() {
		return cs
	}
	for _, d := range s.diffs(diffmatchpatch.New()) {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			cs.Inserted += n
		case diffmatchpatch.DiffDelete:
			cs.Deleted += n
		}
	}
	return cs
}

func (s *Session) diffs(dmp *diffmatchpatch.DiffMatchPatch) []diffmatchpatch.Diff {
	diffs := dmp.DiffMain(s.baseline, s.doc.Text(), false)
	return dmp.DiffCleanupSemantic(diffs)
}
