package order

// Position is a location in source text.
type Position struct {
	Line   int // 1-based
	Column int // 0-based, in bytes
	Offset int // 0-based byte offset
}

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenPunct TokenKind = iota
	TokenIdent
	TokenString
	TokenTemplate
	TokenNumber
	TokenRegExp
	TokenLineComment
	TokenBlockComment
)

// IsComment reports whether the kind is a line or block comment.
func (k TokenKind) IsComment() bool {
	return k == TokenLineComment || k == TokenBlockComment
}

// Token is a lexical token or a comment.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   Position
	End   Position
}

// Node is a top-level import-like statement as seen by the scanner.
type Node struct {
	Index  int    // position in document order
	Source string // the import source as written, without quotes
	Pos    Position
	End    Position
}

// Document is the set of source queries the scanner and the rewriter need
// from a front-end. The order package never tokenizes text itself.
type Document interface {
	// Text returns the full source text.
	Text() string

	// Statements returns the top-level import-like statements in document order.
	Statements() []Node

	// TokensBetween returns the non-comment tokens strictly between a and b.
	TokensBetween(a, b Node) []Token

	// CommentsBetween returns the comments strictly between a and b.
	CommentsBetween(a, b Node) []Token

	// LeadingComments returns the comments attached before n.
	LeadingComments(n Node) []Token

	// TrailingComments returns the comments attached after n.
	TrailingComments(n Node) []Token

	// TokenAt returns the token or comment whose range contains offset.
	TokenAt(offset int) (Token, bool)

	// OffsetOf converts a line and column to a byte offset. Lines past the
	// end of the text map to len(Text()).
	OffsetOf(line, column int) int
}
