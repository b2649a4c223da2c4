package order

import "strings"

// CheckBlankLines looks for a line between prev and next that no comment
// accounts for. Lines taken up by a comment ending on that line, or lying
// inside a block comment, are fine; empty lines and lines holding code are
// not. It returns the span of the first such line.
func CheckBlankLines(doc Document, prev, next Node) (start, end Position, found bool) {
	text := doc.Text()
	for line := prev.End.Line + 1; line < next.Pos.Line; line++ {
		lineStart := doc.OffsetOf(line, 0)
		lineEnd := doc.OffsetOf(line+1, 0)

		first := lineStart
		if rest := strings.TrimLeft(text[lineStart:lineEnd], " \t\r\n"); rest != "" {
			first = lineEnd - len(rest)
		}
		if tok, ok := doc.TokenAt(first); ok && commentOccupies(tok, line) {
			continue
		}
		return Position{Line: line, Offset: lineStart},
			Position{Line: line + 1, Offset: lineEnd},
			true
	}
	return Position{}, Position{}, false
}

// commentOccupies reports whether tok is a comment accounting for line. A
// line comment only does so on the line it ends on.
func commentOccupies(tok Token, line int) bool {
	switch tok.Kind {
	case TokenLineComment:
		return tok.End.Line == line
	case TokenBlockComment:
		return true
	default:
		return false
	}
}
