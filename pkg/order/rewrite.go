package order

import (
	"regexp"
	"strings"
)

// blankRun matches a line break followed by one or more blank lines.
var blankRun = regexp.MustCompile(`(\r?\n)(?:[ \t]*\r?\n)+`)

// collapseBlankLines keeps the first line break of each run and drops the
// blank lines after it.
func collapseBlankLines(s string) string {
	return blankRun.ReplaceAllString(s, "$1")
}

// SwapFix moves next in front of prev. The separator between them keeps its
// original style with at most one line break. It returns nil when the swap
// could move or orphan a comment or any other token.
func SwapFix(doc Document, prev, next Node) *Fix {
	if len(doc.TokensBetween(prev, next)) > 0 ||
		len(doc.CommentsBetween(prev, next)) > 0 ||
		len(doc.LeadingComments(prev)) > 0 ||
		len(doc.TrailingComments(next)) > 0 {
		return nil
	}

	text := doc.Text()
	separator := collapseBlankLines(text[prev.End.Offset:next.Pos.Offset])
	moved := text[next.Pos.Offset:next.End.Offset]

	return &Fix{
		Description: "Move " + quote(next.Source) + " before " + quote(prev.Source),
		TextEdits: []TextEdit{
			{Pos: prev.Pos, EndPos: prev.Pos, NewText: moved + separator},
			{Pos: prev.End, EndPos: next.End, NewText: ""},
		},
	}
}

// CollapseBlankLinesFix removes blank lines between prev and next while
// leaving comments in the gap untouched. It returns nil when code lies
// between the statements or nothing would change.
func CollapseBlankLinesFix(doc Document, prev, next Node) *Fix {
	if len(doc.TokensBetween(prev, next)) > 0 {
		return nil
	}

	text := doc.Text()
	var b strings.Builder
	cursor := prev.End.Offset
	for _, c := range doc.CommentsBetween(prev, next) {
		b.WriteString(collapseBlankLines(text[cursor:c.Pos.Offset]))
		b.WriteString(text[c.Pos.Offset:c.End.Offset])
		cursor = c.End.Offset
	}
	b.WriteString(collapseBlankLines(text[cursor:next.Pos.Offset]))

	replacement := b.String()
	if replacement == text[prev.End.Offset:next.Pos.Offset] {
		return nil
	}
	return &Fix{
		Description: "Remove blank lines between imports",
		TextEdits: []TextEdit{
			{Pos: prev.End, EndPos: next.Pos, NewText: replacement},
		},
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
