package order

// RuleID identifies diagnostics produced by the scanner.
const RuleID = "import-order"

// Kind is the violation category of a diagnostic.
type Kind int

const (
	KindNone Kind = iota
	KindGroupOrder
	KindDepthOrder
	KindAlphabeticalOrder
	KindBlankLines
)

var kindNames = [...]string{
	KindNone:              "none",
	KindGroupOrder:        "group-order",
	KindDepthOrder:        "depth-order",
	KindAlphabeticalOrder: "alphabetical-order",
	KindBlankLines:        "ungrouped-blank-lines",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Severity indicates how serious a diagnostic is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported violation.
type Diagnostic struct {
	RuleID   string
	Kind     Kind
	Severity Severity
	Message  string
	Pos      Position
	EndPos   Position
	Fix      *Fix // nil when no safe fix exists
}

// Fixable reports whether the diagnostic carries a fix.
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil && len(d.Fix.TextEdits) > 0
}

// Fix is a set of text edits that resolve one diagnostic together.
type Fix struct {
	Description string
	TextEdits   []TextEdit
}

// TextEdit replaces the text between Pos and EndPos with NewText.
type TextEdit struct {
	Pos     Position
	EndPos  Position
	NewText string
}

// Span returns the smallest offset range covering every edit of the fix.
func (f *Fix) Span() (start, end int) {
	for i, e := range f.TextEdits {
		if i == 0 || e.Pos.Offset < start {
			start = e.Pos.Offset
		}
		if i == 0 || e.EndPos.Offset > end {
			end = e.EndPos.Offset
		}
	}
	return start, end
}
