// Package source is a JavaScript and TypeScript front-end for the order
// package. It tokenizes a file, finds its top-level import and require
// statements and answers the token and comment queries the scanner makes.
package source

import (
	"sort"

	"github.com/siyuan-infoblox/js-imports-order/pkg/order"
)

// Document is a tokenized source file. It implements order.Document.
type Document struct {
	text       string
	lineStarts []int
	tokens     []order.Token // every token and comment in order
	statements []order.Node
	bounds     [][2]int // per statement, first and last index into tokens
}

var _ order.Document = (*Document)(nil)

// Parse tokenizes text and locates its import-like statements. It never
// fails: text it cannot make sense of simply yields fewer statements.
func Parse(text string) *Document {
	lex := newLexer(text)
	tokens := lex.run()

	// Map significant tokens back to their index in the full list.
	var significant []order.Token
	var index []int
	for i, tok := range tokens {
		if !tok.Kind.IsComment() {
			significant = append(significant, tok)
			index = append(index, i)
		}
	}

	doc := &Document{
		text:       text,
		lineStarts: lex.lineStarts,
		tokens:     tokens,
	}
	for n, stmt := range findStatements(significant) {
		first, last := significant[stmt.first], significant[stmt.last]
		doc.statements = append(doc.statements, order.Node{
			Index:  n,
			Source: stmt.source,
			Pos:    first.Pos,
			End:    last.End,
		})
		doc.bounds = append(doc.bounds, [2]int{index[stmt.first], index[stmt.last]})
	}
	return doc
}

// Text returns the source text.
func (d *Document) Text() string {
	return d.text
}

// Statements returns the import-like statements in document order.
func (d *Document) Statements() []order.Node {
	return d.statements
}

// Tokens returns every token and comment of the document.
func (d *Document) Tokens() []order.Token {
	return d.tokens
}

// between returns the tokens and comments lying in [a.End, b.Pos).
func (d *Document) between(a, b order.Node) []order.Token {
	lo := sort.Search(len(d.tokens), func(i int) bool { return d.tokens[i].Pos.Offset >= a.End.Offset })
	hi := lo
	for hi < len(d.tokens) && d.tokens[hi].End.Offset <= b.Pos.Offset {
		hi++
	}
	return d.tokens[lo:hi]
}

// TokensBetween returns the non-comment tokens between a and b.
func (d *Document) TokensBetween(a, b order.Node) []order.Token {
	return filter(d.between(a, b), false)
}

// CommentsBetween returns the comments between a and b.
func (d *Document) CommentsBetween(a, b order.Node) []order.Token {
	return filter(d.between(a, b), true)
}

// LeadingComments returns the comments between the previous token and n.
func (d *Document) LeadingComments(n order.Node) []order.Token {
	first := d.bounds[n.Index][0]
	i := first
	for i > 0 && d.tokens[i-1].Kind.IsComment() {
		i--
	}
	return d.tokens[i:first]
}

// TrailingComments returns the comments between n and the next token.
func (d *Document) TrailingComments(n order.Node) []order.Token {
	last := d.bounds[n.Index][1]
	i := last + 1
	for i < len(d.tokens) && d.tokens[i].Kind.IsComment() {
		i++
	}
	return d.tokens[last+1 : i]
}

// TokenAt returns the token or comment whose range contains offset.
func (d *Document) TokenAt(offset int) (order.Token, bool) {
	i := sort.Search(len(d.tokens), func(i int) bool { return d.tokens[i].End.Offset > offset })
	if i < len(d.tokens) && d.tokens[i].Pos.Offset <= offset {
		return d.tokens[i], true
	}
	return order.Token{}, false
}

// OffsetOf converts a 1-based line and 0-based column to a byte offset.
func (d *Document) OffsetOf(line, column int) int {
	switch {
	case line < 1:
		return 0
	case line > len(d.lineStarts):
		return len(d.text)
	}
	return min(d.lineStarts[line-1]+column, len(d.text))
}

// Position converts a byte offset to a Position.
func (d *Document) Position(offset int) order.Position {
	return position(d.lineStarts, min(max(offset, 0), len(d.text)))
}

func filter(tokens []order.Token, comments bool) []order.Token {
	var out []order.Token
	for _, tok := range tokens {
		if tok.Kind.IsComment() == comments {
			out = append(out, tok)
		}
	}
	return out
}
