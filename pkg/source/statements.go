package source

import "github.com/siyuan-infoblox/js-imports-order/pkg/order"

// statement is a recognised import-like statement as a range of
// significant tokens.
type statement struct {
	source      string
	first, last int // indices into the significant token list
}

// finder locates top-level import-like statements in a list of
// significant (non-comment) tokens.
type finder struct {
	toks []order.Token
}

func findStatements(toks []order.Token) []statement {
	f := finder{toks: toks}
	var found []statement
	depth := 0
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind == order.TokenPunct {
			switch tok.Value {
			case "{", "(", "[":
				depth++
			case "}", ")", "]":
				depth = max(depth-1, 0)
			}
			continue
		}
		if depth != 0 || tok.Kind != order.TokenIdent || !f.startsStatement(i) {
			continue
		}

		var stmt statement
		var ok bool
		switch tok.Value {
		case "import":
			stmt, ok = f.importDeclaration(i)
		case "const", "let", "var":
			stmt, ok = f.requireDeclaration(i)
		case "require":
			stmt, ok = f.requireCall(i, i)
		}
		if ok {
			found = append(found, stmt)
			i = stmt.last
		}
	}
	return found
}

// startsStatement reports whether the token at i begins a statement: it is
// the first token, follows ";" or "}", or sits on a new line after a token
// that cannot continue an expression.
func (f *finder) startsStatement(i int) bool {
	if i == 0 {
		return true
	}
	prev := f.toks[i-1]
	if prev.Kind == order.TokenPunct && (prev.Value == ";" || prev.Value == "}") {
		return true
	}
	if prev.End.Line == f.toks[i].Pos.Line {
		return false
	}
	switch prev.Kind {
	case order.TokenPunct:
		return prev.Value == ")" || prev.Value == "]" || prev.Value == "++" || prev.Value == "--"
	case order.TokenTemplate:
		return prev.Value[len(prev.Value)-1] == '`'
	default:
		return true
	}
}

func (f *finder) at(i int) (order.Token, bool) {
	if i < 0 || i >= len(f.toks) {
		return order.Token{}, false
	}
	return f.toks[i], true
}

func (f *finder) isPunct(i int, value string) bool {
	tok, ok := f.at(i)
	return ok && tok.Kind == order.TokenPunct && tok.Value == value
}

func (f *finder) isIdent(i int, value string) bool {
	tok, ok := f.at(i)
	return ok && tok.Kind == order.TokenIdent && tok.Value == value
}

func (f *finder) isString(i int) bool {
	tok, ok := f.at(i)
	return ok && tok.Kind == order.TokenString && len(tok.Value) >= 2 && tok.Value[0] == tok.Value[len(tok.Value)-1]
}

// importDeclaration matches `import 'x'`, `import <clause> from 'x'` and
// `import x = require('x')`, with optional import attributes.
func (f *finder) importDeclaration(i int) (statement, bool) {
	j := i + 1
	if f.isPunct(j, "(") || f.isPunct(j, ".") {
		return statement{}, false // dynamic import or import.meta
	}
	if f.isString(j) {
		return f.finish(i, j, j)
	}

	depth := 0
	for ; j < len(f.toks); j++ {
		tok := f.toks[j]
		if tok.Kind == order.TokenPunct {
			switch tok.Value {
			case "{", "[", "(":
				depth++
			case "}", "]", ")":
				depth--
				if depth < 0 {
					return statement{}, false
				}
			case ";":
				return statement{}, false
			case "=":
				if depth == 0 && f.isIdent(j+1, "require") {
					return f.requireCall(i, j+1)
				}
			}
			continue
		}
		if depth == 0 && tok.Kind == order.TokenIdent && tok.Value == "from" && f.isString(j+1) {
			return f.finish(i, j+1, j+1)
		}
	}
	return statement{}, false
}

// requireDeclaration matches `const|let|var <binding> = require('x')`.
func (f *finder) requireDeclaration(i int) (statement, bool) {
	j := i + 1
	tok, ok := f.at(j)
	if !ok {
		return statement{}, false
	}
	switch {
	case tok.Kind == order.TokenIdent:
		j++
	case tok.Kind == order.TokenPunct && (tok.Value == "{" || tok.Value == "["):
		j, ok = f.skipBalanced(j)
		if !ok {
			return statement{}, false
		}
	default:
		return statement{}, false
	}
	// TypeScript annotation: const x: Foo = require('x')
	if f.isPunct(j, ":") {
		for j < len(f.toks) && !f.isPunct(j, "=") && !f.isPunct(j, ";") {
			j++
		}
	}
	if !f.isPunct(j, "=") {
		return statement{}, false
	}
	return f.requireCall(i, j+1)
}

// requireCall matches `require('x')` at j, the statement starting at i.
func (f *finder) requireCall(i, j int) (statement, bool) {
	if !f.isIdent(j, "require") || !f.isPunct(j+1, "(") || !f.isString(j+2) || !f.isPunct(j+3, ")") {
		return statement{}, false
	}
	return f.finish(i, j+2, j+3)
}

// finish completes a statement whose source string is at src and whose
// body ends at last: it takes import attributes and a closing ";", and
// rejects the match when the expression continues.
func (f *finder) finish(i, src, last int) (statement, bool) {
	if (f.isIdent(last+1, "with") || f.isIdent(last+1, "assert")) && f.isPunct(last+2, "{") && f.isIdent(i, "import") {
		end, ok := f.skipBalanced(last + 2)
		if !ok {
			return statement{}, false
		}
		last = end - 1
	}
	if f.isPunct(last+1, ";") {
		last++
	} else if next, ok := f.at(last + 1); ok && !f.endsBefore(last, next) {
		return statement{}, false
	}

	raw := f.toks[src].Value
	return statement{
		source: raw[1 : len(raw)-1],
		first:  i,
		last:   last,
	}, true
}

// endsBefore reports whether the token after last begins a new statement.
func (f *finder) endsBefore(last int, next order.Token) bool {
	if next.Pos.Line == f.toks[last].End.Line {
		return next.Kind == order.TokenPunct && next.Value == "}"
	}
	switch next.Kind {
	case order.TokenPunct:
		return next.Value == "}" || next.Value == "++" || next.Value == "--"
	case order.TokenTemplate, order.TokenRegExp:
		return false
	default:
		return true
	}
}

// skipBalanced returns the index after the bracket that closes the one at j.
func (f *finder) skipBalanced(j int) (int, bool) {
	depth := 0
	for ; j < len(f.toks); j++ {
		tok := f.toks[j]
		if tok.Kind != order.TokenPunct {
			continue
		}
		switch tok.Value {
		case "{", "[", "(":
			depth++
		case "}", "]", ")":
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
	}
	return j, false
}
