package filter

import (
	"pkg.world.dev/lazyecs/types"
)

type exact struct {
	names []string
}

// Exact matches entities that carry exactly the components specified, no
// more and no fewer.
func Exact(components ...types.Component) ComponentFilter {
	return exact{names: namesOf(components)}
}

func (f exact) MatchesComponents(components []string) bool {
	if len(components) != len(f.names) {
		return false
	}
	for _, name := range components {
		if !MatchComponentName(f.names, name) {
			return false
		}
	}
	return true
}
