package order

import (
	"sort"
	"strings"
)

// ApplyFixes applies every fix that does not overlap an earlier one, in
// order of position. It returns the new text and the number of fixes
// applied; skipped fixes are expected to be picked up by a later pass.
func ApplyFixes(text string, fixes []*Fix) (string, int) {
	type span struct {
		start, end int
		fix        *Fix
	}
	var spans []span
	for _, f := range fixes {
		if f == nil || len(f.TextEdits) == 0 {
			continue
		}
		start, end := f.Span()
		spans = append(spans, span{start: start, end: end, fix: f})
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var edits []TextEdit
	applied := 0
	last := -1
	for _, s := range spans {
		if s.start <= last {
			continue
		}
		edits = append(edits, s.fix.TextEdits...)
		last = s.end
		applied++
	}
	return applyEdits(text, edits), applied
}

// applyEdits splices non-overlapping edits into text.
func applyEdits(text string, edits []TextEdit) string {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].Pos.Offset < edits[j].Pos.Offset })

	var b strings.Builder
	cursor := 0
	for _, e := range edits {
		b.WriteString(text[cursor:e.Pos.Offset])
		b.WriteString(e.NewText)
		cursor = e.EndPos.Offset
	}
	b.WriteString(text[cursor:])
	return b.String()
}
