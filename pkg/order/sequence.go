package order

// CheckSequence decides whether next may follow prev. prev is nil for the
// first statement of a file. At most one kind is reported per pair.
func CheckSequence(prev *Key, next Key, alpha Alphabetize, ranks *RankTable) Kind {
	switch {
	case prev == nil:
		return KindNone
	case prev.Group != next.Group:
		if prev.Group > next.Group {
			return KindGroupOrder
		}
		return KindNone
	case prev.Depth != next.Depth:
		// More "../" segments sort first.
		if prev.Depth < next.Depth {
			return KindDepthOrder
		}
		return KindNone
	case alpha.Compare(next, *prev, ranks) < 0:
		return KindAlphabeticalOrder
	default:
		return KindNone
	}
}
