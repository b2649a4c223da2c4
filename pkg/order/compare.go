package order

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlphabetize is returned for an unrecognised alphabetize value.
var ErrUnknownAlphabetize = errors.New("unknown alphabetize value")

// Alphabetize selects how names within one group and depth are compared.
type Alphabetize int

const (
	CaseSensitive Alphabetize = iota
	CaseInsensitive
	Parts
	Off
)

var alphabetizeNames = map[Alphabetize]string{
	CaseSensitive:   "case-sensitive",
	CaseInsensitive: "case-insensitive",
	Parts:           "parts",
	Off:             "off",
}

func (a Alphabetize) String() string {
	if name, ok := alphabetizeNames[a]; ok {
		return name
	}
	return "unknown"
}

// AlphabetizeValues lists the accepted configuration values.
func AlphabetizeValues() []string {
	return []string{"case-sensitive", "case-insensitive", "parts", "off"}
}

// ParseAlphabetize maps a configuration value to a comparator.
func ParseAlphabetize(s string) (Alphabetize, error) {
	for a, name := range alphabetizeNames {
		if name == s {
			return a, nil
		}
	}
	return CaseSensitive, fmt.Errorf("%w %q (want one of %s)", ErrUnknownAlphabetize, s, strings.Join(AlphabetizeValues(), ", "))
}

// Compare returns -1 when x sorts before y, +1 when after and 0 when the
// comparator considers them equal. The ranks table is only consulted by
// Parts and may be nil for the other comparators.
func (a Alphabetize) Compare(x, y Key, ranks *RankTable) int {
	switch a {
	case CaseSensitive:
		return strings.Compare(x.Name, y.Name)
	case CaseInsensitive:
		return strings.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name))
	case Parts:
		if ranks == nil {
			ranks = NewRankTable()
		}
		return compareParts(x.Parts, y.Parts, ranks)
	default:
		return 0
	}
}

// compareParts compares two token sequences by the first-seen rank of the
// first differing token. Sequences equal over their common length are equal.
func compareParts(x, y []string, ranks *RankTable) int {
	for i := range min(len(x), len(y)) {
		if x[i] == y[i] {
			continue
		}
		return cmp.Compare(ranks.Rank(i, x[i]), ranks.Rank(i, y[i]))
	}
	return 0
}

// RankTable records, per token position, the order in which each distinct
// token value was first seen during one scan. Ranks never change once given.
type RankTable struct {
	positions []map[string]int
}

// NewRankTable returns an empty table.
func NewRankTable() *RankTable {
	return &RankTable{}
}

// Observe records every token of parts at its position.
func (t *RankTable) Observe(parts []string) {
	for i, token := range parts {
		t.Rank(i, token)
	}
}

// Rank returns the first-seen rank of token at position pos, assigning the
// next free rank when the token has not been seen there yet.
func (t *RankTable) Rank(pos int, token string) int {
	for len(t.positions) <= pos {
		t.positions = append(t.positions, make(map[string]int))
	}
	seen := t.positions[pos]
	if rank, ok := seen[token]; ok {
		return rank
	}
	rank := len(seen)
	seen[token] = rank
	return rank
}
