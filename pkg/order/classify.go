package order

import (
	"strings"

	"github.com/siyuan-infoblox/js-imports-order/pkg/std"
)

// Group is the origin rank of an import source. Lower groups sort first.
type Group int

const (
	GroupBuiltin Group = iota
	GroupAbsolute
	GroupParent
	GroupSibling
)

var groupNames = [...]string{
	GroupBuiltin:  "builtin",
	GroupAbsolute: "absolute",
	GroupParent:   "parent",
	GroupSibling:  "sibling",
}

func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return "unknown"
	}
	return groupNames[g]
}

const (
	siblingPrefix  = "./"
	parentSegment  = "../"
	partsDelimiter = "-"
)

// Key is the ordering key derived from one import source.
type Key struct {
	Name  string   // the raw source, used for display and comparison
	Group Group    // origin group
	Depth int      // number of leading "../" segments, zero outside GroupParent
	Parts []string // Name split on "-", used by the parts comparator
}

// Classify derives the ordering key for an import source. Built-in modules
// are recognised before any relative pattern is tried.
func Classify(source string) Key {
	key := Key{
		Name:  source,
		Group: GroupAbsolute,
		Parts: strings.Split(source, partsDelimiter),
	}

	switch {
	case std.IsBuiltinModule(source):
		key.Group = GroupBuiltin
	case strings.HasPrefix(source, siblingPrefix):
		key.Group = GroupSibling
	default:
		if depth := parentDepth(source); depth > 0 {
			key.Group = GroupParent
			key.Depth = depth
		}
	}
	return key
}

// parentDepth counts the leading "../" segments of source.
func parentDepth(source string) int {
	depth := 0
	for strings.HasPrefix(source, parentSegment) {
		source = source[len(parentSegment):]
		depth++
	}
	return depth
}
