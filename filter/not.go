package filter

// Not matches entities that do not match the given filter.
func Not(filter ComponentFilter) ComponentFilter {
	return &not{filter: filter}
}

type not struct {
	filter ComponentFilter
}

func (f *not) MatchesComponents(components []string) bool {
	return !f.filter.MatchesComponents(components)
}
