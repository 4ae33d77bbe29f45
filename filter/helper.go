package filter

import (
	"pkg.world.dev/lazyecs/types"
)

// MatchComponentName returns true if the given slice of component names
// contains the given name.
func MatchComponentName(components []string, name string) bool {
	for _, c := range components {
		if c == name {
			return true
		}
	}
	return false
}

func namesOf(components []types.Component) []string {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name()
	}
	return names
}
