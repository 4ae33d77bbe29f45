package filter

import (
	"pkg.world.dev/lazyecs/types"
)

type contains struct {
	names []string
}

// Contains matches entities that carry all the components specified, and
// possibly others.
func Contains(components ...types.Component) ComponentFilter {
	return &contains{names: namesOf(components)}
}

func (f *contains) MatchesComponents(components []string) bool {
	for _, name := range f.names {
		if !MatchComponentName(components, name) {
			return false
		}
	}
	return true
}
