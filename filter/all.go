package filter

type all struct {
}

// All matches every entity, whatever its components.
func All() ComponentFilter {
	return &all{}
}

func (f *all) MatchesComponents(_ []string) bool {
	return true
}
