// Package filter declares composable predicates over the set of component
// types attached to an entity. Filters drive the diagnostics search path and
// CQL; the typed query functions in the root package do not use them.
package filter

import (
	"pkg.world.dev/lazyecs/types"
)

// ComponentFilter is a filter that filters entities based on their components.
type ComponentFilter interface {
	// MatchesComponents returns true if an entity carrying exactly the named
	// component types matches the filter.
	MatchesComponents(components []string) bool
}

// Component returns a zero value of T for use as a component type tag in
// filter constructors, for callers that prefer naming the type over writing
// a composite literal.
func Component[T types.Component]() types.Component {
	var x T
	return x
}
