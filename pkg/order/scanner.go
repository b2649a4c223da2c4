package order

import (
	"fmt"
	"log/slog"
)

// Options configures a scan.
type Options struct {
	AllowBlankLines bool        // skip the blank line check
	Alphabetize     Alphabetize // comparator for names in the same group and depth
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Alphabetize: CaseSensitive}
}

// Scanner walks the import statements of one document keeping only the
// previous statement as state. A Scanner must not be reused across documents.
type Scanner struct {
	doc    Document
	opts   Options
	ranks  *RankTable
	logger *slog.Logger

	prevKey  *Key
	prevNode *Node
}

// NewScanner creates a scanner for doc. A nil logger discards output.
func NewScanner(doc Document, opts Options, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scanner{
		doc:    doc,
		opts:   opts,
		logger: logger,
	}
	if opts.Alphabetize == Parts {
		s.ranks = NewRankTable()
	}
	return s
}

// Visit checks n against the previous statement and advances the state.
func (s *Scanner) Visit(n Node) []Diagnostic {
	key := Classify(n.Source)
	if s.ranks != nil {
		s.ranks.Observe(key.Parts)
	}

	var diags []Diagnostic
	if kind := CheckSequence(s.prevKey, key, s.opts.Alphabetize, s.ranks); kind != KindNone {
		diags = append(diags, Diagnostic{
			RuleID:   RuleID,
			Kind:     kind,
			Severity: SeverityError,
			Message:  orderMessage(kind, *s.prevKey, key),
			Pos:      n.Pos,
			EndPos:   n.End,
			Fix:      SwapFix(s.doc, *s.prevNode, n),
		})
		s.logger.Debug("import out of order",
			slog.String("kind", kind.String()),
			slog.String("prev", s.prevKey.Name),
			slog.String("next", key.Name),
			slog.Int("line", n.Pos.Line))
	}

	if !s.opts.AllowBlankLines && s.prevNode != nil {
		if start, end, found := CheckBlankLines(s.doc, *s.prevNode, n); found {
			diags = append(diags, Diagnostic{
				RuleID:   RuleID,
				Kind:     KindBlankLines,
				Severity: SeverityError,
				Message:  "Unexpected blank line between imports",
				Pos:      start,
				EndPos:   end,
				Fix:      CollapseBlankLinesFix(s.doc, *s.prevNode, n),
			})
			s.logger.Debug("blank line between imports", slog.Int("line", start.Line))
		}
	}

	s.prevKey = &key
	s.prevNode = &n
	return diags
}

// Run scans every statement of doc in order.
func (s *Scanner) Run() []Diagnostic {
	var diags []Diagnostic
	for _, n := range s.doc.Statements() {
		diags = append(diags, s.Visit(n)...)
	}
	return diags
}

// Scan is a shorthand for NewScanner(doc, opts, logger).Run().
func Scan(doc Document, opts Options, logger *slog.Logger) []Diagnostic {
	return NewScanner(doc, opts, logger).Run()
}

func orderMessage(kind Kind, prev, next Key) string {
	switch kind {
	case KindGroupOrder:
		return fmt.Sprintf("%s import should occur before %s import", next.Group, prev.Group)
	case KindDepthOrder:
		return fmt.Sprintf("%q should occur before %q: imports from further up the tree come first", next.Name, prev.Name)
	default:
		return fmt.Sprintf("%q should occur before %q", next.Name, prev.Name)
	}
}
