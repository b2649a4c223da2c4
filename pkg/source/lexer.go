package source

import (
	"sort"
	"strings"

	"github.com/siyuan-infoblox/js-imports-order/pkg/order"
)

const byteOrderMark = "\uFEFF"

// regexKeywords are identifiers after which a "/" starts a regular expression.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

// lexer splits JavaScript or TypeScript text into tokens and comments. It
// knows enough of the grammar to skip strings, templates, regular
// expressions and comments, and nothing more.
type lexer struct {
	src        string
	pos        int
	lineStarts []int
	tokens     []order.Token

	// braces tracks open "{" and "${"; true marks a template substitution.
	braces []bool
	// last is the index of the last non-comment token, -1 if none.
	last int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:        src,
		lineStarts: computeLineStarts(src),
		last:       -1,
	}
}

func computeLineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// position converts a byte offset to a Position.
func position(lineStarts []int, offset int) order.Position {
	line := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > offset })
	return order.Position{
		Line:   line,
		Column: offset - lineStarts[line-1],
		Offset: offset,
	}
}

func (l *lexer) run() []order.Token {
	if strings.HasPrefix(l.src, byteOrderMark) {
		l.pos = len(byteOrderMark)
	}
	if strings.HasPrefix(l.src[l.pos:], "#!") {
		l.lineComment()
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isWhiteSpace(c):
			l.pos++
		case c == '/' && l.peek(1) == '/':
			l.lineComment()
		case c == '/' && l.peek(1) == '*':
			l.blockComment()
		case c == '\'' || c == '"':
			l.stringLiteral(c)
		case c == '`':
			l.template(l.pos + 1)
		case c == '}' && len(l.braces) > 0 && l.braces[len(l.braces)-1]:
			l.braces = l.braces[:len(l.braces)-1]
			l.template(l.pos + 1)
		case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
			l.number()
		case isIdentStart(c):
			l.identifier()
		case c == '/' && l.regexAllowed():
			l.regexp()
		default:
			l.punct()
		}
	}
	return l.tokens
}

func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *lexer) emit(kind order.TokenKind, start, end int) {
	l.tokens = append(l.tokens, order.Token{
		Kind:  kind,
		Value: l.src[start:end],
		Pos:   position(l.lineStarts, start),
		End:   position(l.lineStarts, end),
	})
	if !kind.IsComment() {
		l.last = len(l.tokens) - 1
	}
	l.pos = end
}

func (l *lexer) lineComment() {
	end := strings.IndexByte(l.src[l.pos:], '\n')
	if end < 0 {
		end = len(l.src)
	} else {
		end += l.pos
	}
	if end > l.pos && l.src[end-1] == '\r' {
		end--
	}
	l.emit(order.TokenLineComment, l.pos, end)
}

func (l *lexer) blockComment() {
	end := strings.Index(l.src[l.pos+2:], "*/")
	if end < 0 {
		end = len(l.src)
	} else {
		end += l.pos + 4
	}
	l.emit(order.TokenBlockComment, l.pos, end)
}

func (l *lexer) stringLiteral(quote byte) {
	i := l.pos + 1
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			l.emit(order.TokenString, l.pos, i+1)
			return
		case '\n':
			// Unterminated; stop at the line break.
			l.emit(order.TokenString, l.pos, i)
			return
		}
		i++
	}
	l.emit(order.TokenString, l.pos, len(l.src))
}

// template scans a template chunk whose body starts at i. The chunk ends at
// the closing backtick or at a "${", which opens a substitution.
func (l *lexer) template(i int) {
	for i < len(l.src) {
		switch {
		case l.src[i] == '\\':
			i += 2
			continue
		case l.src[i] == '`':
			l.emit(order.TokenTemplate, l.pos, i+1)
			return
		case l.src[i] == '$' && i+1 < len(l.src) && l.src[i+1] == '{':
			l.braces = append(l.braces, true)
			l.emit(order.TokenTemplate, l.pos, i+2)
			return
		}
		i++
	}
	l.emit(order.TokenTemplate, l.pos, len(l.src))
}

func (l *lexer) number() {
	i := l.pos
	for i < len(l.src) {
		c := l.src[i]
		switch {
		case isIdentPart(c) || c == '.':
			i++
		case (c == '+' || c == '-') && (l.src[i-1] == 'e' || l.src[i-1] == 'E') && !isHexLiteral(l.src[l.pos:i]):
			i++
		default:
			l.emit(order.TokenNumber, l.pos, i)
			return
		}
	}
	l.emit(order.TokenNumber, l.pos, i)
}

func isHexLiteral(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func (l *lexer) identifier() {
	i := l.pos
	for i < len(l.src) && isIdentPart(l.src[i]) {
		if l.src[i] == '\\' {
			i++
		}
		i++
	}
	l.emit(order.TokenIdent, l.pos, min(i, len(l.src)))
}

// regexAllowed reports whether a "/" at the current position starts a
// regular expression rather than a division.
func (l *lexer) regexAllowed() bool {
	if l.last < 0 {
		return true
	}
	prev := l.tokens[l.last]
	switch prev.Kind {
	case order.TokenPunct:
		switch prev.Value {
		case ")", "]", "}", "++", "--":
			return false
		}
		return true
	case order.TokenIdent:
		return regexKeywords[prev.Value]
	default:
		return false
	}
}

func (l *lexer) regexp() {
	i := l.pos + 1
	inClass := false
	for i < len(l.src) {
		switch c := l.src[i]; {
		case c == '\\':
			i += 2
			continue
		case c == '\n':
			l.punct()
			return
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			i++
			for i < len(l.src) && isIdentPart(l.src[i]) {
				i++
			}
			l.emit(order.TokenRegExp, l.pos, i)
			return
		}
		i++
	}
	l.punct()
}

func (l *lexer) punct() {
	c := l.src[l.pos]
	switch c {
	case '{':
		l.braces = append(l.braces, false)
	case '}':
		if len(l.braces) > 0 {
			l.braces = l.braces[:len(l.braces)-1]
		}
	case '+', '-':
		if l.peek(1) == c {
			l.emit(order.TokenPunct, l.pos, l.pos+2)
			return
		}
	}
	l.emit(order.TokenPunct, l.pos, l.pos+1)
}

func isWhiteSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$' || c == '\\' || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
