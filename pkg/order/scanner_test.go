package order_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/js-imports-order/pkg/order"
	"github.com/siyuan-infoblox/js-imports-order/pkg/source"
	"github.com/siyuan-infoblox/js-imports-order/pkg/testutil"
)

func scan(t *testing.T, text string, opts order.Options) []order.Diagnostic {
	t.Helper()
	return order.Scan(source.Parse(text), opts, testutil.NewTestLogger(t))
}

// fixAll applies fixes until the text stops changing.
func fixAll(t *testing.T, text string, opts order.Options) string {
	t.Helper()
	for range 10 {
		var fixes []*order.Fix
		for _, d := range scan(t, text, opts) {
			fixes = append(fixes, d.Fix)
		}
		fixed, applied := order.ApplyFixes(text, fixes)
		if applied == 0 {
			return fixed
		}
		text = fixed
	}
	t.Fatalf("fixes did not converge")
	return ""
}

func kinds(diags []order.Diagnostic) []order.Kind {
	var out []order.Kind
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}

func TestScan_alphabeticalSwap(t *testing.T) {
	req := require.New(t)
	text := "require('./b');\nrequire('./a');\n"

	diags := scan(t, text, order.DefaultOptions())
	req.Len(diags, 1)
	d := diags[0]
	req.Equal(order.KindAlphabeticalOrder, d.Kind)
	req.Equal(order.RuleID, d.RuleID)
	req.Equal(2, d.Pos.Line)
	req.Equal(`"./a" should occur before "./b"`, d.Message)
	req.True(d.Fixable())

	fixed, applied := order.ApplyFixes(text, []*order.Fix{d.Fix})
	req.Equal(1, applied)
	req.Equal("require('./a');\nrequire('./b');\n", fixed)
	req.Empty(scan(t, fixed, order.DefaultOptions()), "fixed text must not be flagged again")
}

func TestScan_groups(t *testing.T) {
	t.Run("builtin before sibling", func(t *testing.T) {
		req := require.New(t)
		req.Empty(scan(t, "require('fs');\nrequire('./a');\n", order.DefaultOptions()))
	})

	t.Run("sibling before builtin", func(t *testing.T) {
		req := require.New(t)
		diags := scan(t, "require('./a');\nrequire('fs');\n", order.DefaultOptions())
		req.Len(diags, 1)
		req.Equal(order.KindGroupOrder, diags[0].Kind)
		req.Equal("builtin import should occur before sibling import", diags[0].Message)
	})

	t.Run("parent depth", func(t *testing.T) {
		req := require.New(t)
		diags := scan(t, "import a from '../a';\nimport b from '../../b';\n", order.DefaultOptions())
		req.Equal([]order.Kind{order.KindDepthOrder}, kinds(diags))
		req.Empty(scan(t, "import b from '../../b';\nimport a from '../a';\n", order.DefaultOptions()))
	})
}

func TestScan_alphabetizeModes(t *testing.T) {
	text := "const b = require('./b');\nconst a = require('./A');\n"

	tests := []struct {
		alpha order.Alphabetize
		want  int
	}{
		{order.CaseSensitive, 1},
		{order.CaseInsensitive, 1},
		{order.Off, 0},
	}
	for _, tt := range tests {
		t.Run(tt.alpha.String(), func(t *testing.T) {
			req := require.New(t)
			diags := scan(t, text, order.Options{Alphabetize: tt.alpha})
			req.Len(diags, tt.want)
		})
	}
}

func TestScan_partsFirstSeen(t *testing.T) {
	req := require.New(t)
	opts := order.Options{Alphabetize: order.Parts}

	inOrder := "require('a-z');\nrequire('a-b');\nrequire('a-m');\nrequire('a-m');\n"
	req.Empty(scan(t, inOrder, opts))

	outOfOrder := "require('a-z');\nrequire('a-b');\nrequire('a-m');\nrequire('a-b');\n"
	diags := scan(t, outOfOrder, opts)
	req.Len(diags, 1)
	req.Equal(order.KindAlphabeticalOrder, diags[0].Kind)
	req.Equal(4, diags[0].Pos.Line)

	req.Len(scan(t, inOrder, order.DefaultOptions()), 1, "case-sensitive flags a-z before a-b")
}

func TestScan_partsIndependentScans(t *testing.T) {
	req := require.New(t)
	opts := order.Options{Alphabetize: order.Parts}

	req.Empty(scan(t, "require('a-z');\nrequire('a-b');\n", opts))
	req.Empty(scan(t, "require('a-b');\nrequire('a-z');\n", opts), "ranks must not leak between scans")
}

func TestScan_blankLines(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		allow     bool
		wantLine  int
		wantFixed string
	}{
		{
			name: "adjacent lines",
			text: "require('a');\nrequire('b');\n",
		},
		{
			name:      "blank line",
			text:      "require('a');\n\nrequire('b');\n",
			wantLine:  2,
			wantFixed: "require('a');\nrequire('b');\n",
		},
		{
			name:      "whitespace only lines",
			text:      "require('a');\n  \n\t\nrequire('b');\n",
			wantLine:  2,
			wantFixed: "require('a');\nrequire('b');\n",
		},
		{
			name: "line comment fills the gap",
			text: "require('a');\n// note\nrequire('b');\n",
		},
		{
			name: "block comment fills the gap",
			text: "require('a');\n/*\n\n*/\nrequire('b');\n",
		},
		{
			name:      "blank line after a comment",
			text:      "require('a');\n// note\n\nrequire('b');\n",
			wantLine:  3,
			wantFixed: "require('a');\n// note\nrequire('b');\n",
		},
		{
			name:      "crlf",
			text:      "require('a');\r\n\r\nrequire('b');\r\n",
			wantLine:  2,
			wantFixed: "require('a');\r\nrequire('b');\r\n",
		},
		{
			name:      "code line between",
			text:      "require('a');\nfoo();\nrequire('b');\n",
			wantLine:  2,
			wantFixed: "require('a');\nfoo();\nrequire('b');\n",
		},
		{
			name:      "indented code line between",
			text:      "require('a');\n  foo();\nrequire('b');\n",
			wantLine:  2,
			wantFixed: "require('a');\n  foo();\nrequire('b');\n",
		},
		{
			name:      "code after a comment",
			text:      "require('a');\n// note\nfoo(); // trailing\nrequire('b');\n",
			wantLine:  3,
			wantFixed: "require('a');\n// note\nfoo(); // trailing\nrequire('b');\n",
		},
		{
			name:  "allowed",
			text:  "require('a');\n\n\nrequire('b');\n",
			allow: true,
		},
		{
			name:  "allowed with code between",
			text:  "require('a');\nfoo();\nrequire('b');\n",
			allow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			opts := order.Options{AllowBlankLines: tt.allow}
			diags := scan(t, tt.text, opts)
			if tt.wantLine == 0 {
				req.Empty(diags)
				return
			}
			req.Len(diags, 1)
			req.Equal(order.KindBlankLines, diags[0].Kind)
			req.Equal(tt.wantLine, diags[0].Pos.Line)
			req.Equal(tt.wantLine+1, diags[0].EndPos.Line)
			req.Equal(tt.wantFixed, fixAll(t, tt.text, opts))
		})
	}
}

func TestScan_blankLinesAroundCode(t *testing.T) {
	req := require.New(t)
	text := "require('a');\n\nfoo();\n\nrequire('b');\n"

	diags := scan(t, text, order.DefaultOptions())
	req.Len(diags, 1)
	req.Equal(order.KindBlankLines, diags[0].Kind)
	req.Equal(2, diags[0].Pos.Line, "the first line not taken by a comment is reported")
	req.False(diags[0].Fixable(), "code between the statements blocks the fix")
}

func TestSwapFix_refusals(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"leading comment on the earlier statement", "// header\nrequire('./b');\nrequire('./a');\n"},
		{"trailing comment on the later statement", "require('./b');\nrequire('./a'); // a\n"},
		{"comment between", "require('./b'); /* b */\nrequire('./a');\n"},
		{"code between", "require('./b');\nfoo();\nrequire('./a');\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			diags := scan(t, tt.text, order.Options{AllowBlankLines: true})
			req.Len(diags, 1)
			req.Equal(order.KindAlphabeticalOrder, diags[0].Kind)
			req.Nil(diags[0].Fix)
			req.False(diags[0].Fixable())
		})
	}
}

func TestSwapFix_separators(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "same line",
			text: "require('./b'); require('./a');",
			want: "require('./a'); require('./b');",
		},
		{
			name: "blank lines collapse to one line break",
			text: "require('./b');\n\n\nrequire('./a');\n",
			want: "require('./a');\nrequire('./b');\n",
		},
		{
			name: "indentation is kept",
			text: "  import b from './b'\n  import a from './a'\n",
			want: "  import a from './a'\n  import b from './b'\n",
		},
		{
			name: "three statements",
			text: "import c from './c';\nimport b from './b';\nimport a from './a';\nrun(a, b, c);\n",
			want: "import a from './a';\nimport b from './b';\nimport c from './c';\nrun(a, b, c);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			opts := order.Options{AllowBlankLines: true}
			fixed := fixAll(t, tt.text, opts)
			req.Equal(tt.want, fixed)
			req.Empty(scan(t, fixed, opts))
			req.Equal(fixed, fixAll(t, fixed, opts), "fixing is idempotent")
		})
	}
}

func TestScan_oneDiagnosticPerKindPerPair(t *testing.T) {
	req := require.New(t)
	text := "require('./b');\n\nrequire('fs');\n"

	diags := scan(t, text, order.DefaultOptions())
	req.Equal([]order.Kind{order.KindGroupOrder, order.KindBlankLines}, kinds(diags))
	req.Equal("require('fs');\nrequire('./b');\n", fixAll(t, text, order.DefaultOptions()))
}

func TestScanner_Visit(t *testing.T) {
	req := require.New(t)
	doc := source.Parse("require('./a');\nrequire('fs');\n")
	s := order.NewScanner(doc, order.DefaultOptions(), nil)

	nodes := doc.Statements()
	req.Len(nodes, 2)
	req.Empty(s.Visit(nodes[0]), "the first statement has nothing to compare with")
	req.Len(s.Visit(nodes[1]), 1)
}
