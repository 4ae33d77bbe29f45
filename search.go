package lazyecs

import (
	"sort"

	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs/filter"
	"pkg.world.dev/lazyecs/types"
)

// ErrNoEntitiesMatch is returned by Search.First when the search has no
// results.
var ErrNoEntitiesMatch = eris.New("no entities match the search")

// Search allows the querying of entities within a World by a component
// filter. Unlike the typed Each functions it can express negation and
// disjunction, at the cost of scanning the whole alive set; it backs the CQL
// and debug surfaces. Conjunctive hot paths should use Each/Each2/Each3/
// Each4 instead.
type Search struct {
	world  *World
	filter filter.ComponentFilter
}

// SearchCallBackFn represents a function that can operate on a single
// EntityID, and returns whether the next EntityID should be processed.
type SearchCallBackFn func(types.EntityID) bool

// NewSearch creates a Search over the world's entities for the given filter.
func NewSearch(w *World, f filter.ComponentFilter) *Search {
	return &Search{world: w, filter: f}
}

// Each executes the given callback on every entity that matches the search,
// in ascending ID order. If any call to callback returns false, no more
// entities are processed. The alive set is snapshotted when Each starts;
// entities destroyed mid-walk are skipped and entities created mid-walk are
// not visited.
func (s *Search) Each(callback SearchCallBackFn) error {
	for _, id := range s.world.aliveSorted() {
		if !s.world.Alive(id) {
			continue
		}
		if !s.filter.MatchesComponents(s.world.componentNamesOf(id)) {
			continue
		}
		if !callback(id) {
			return nil
		}
	}
	return nil
}

// Count returns the number of entities that match this search.
func (s *Search) Count() (int, error) {
	count := 0
	err := s.Each(func(types.EntityID) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// First returns the first entity that matches this search, in ascending ID
// order. It fails with ErrNoEntitiesMatch when nothing matches.
func (s *Search) First() (types.EntityID, error) {
	found := types.BadID
	err := s.Each(func(id types.EntityID) bool {
		found = id
		return false
	})
	if err != nil {
		return types.BadID, err
	}
	if found == types.BadID {
		return types.BadID, ErrNoEntitiesMatch
	}
	return found, nil
}

// MustFirst returns the first entity that matches this search or panics if
// nothing matches.
func (s *Search) MustFirst() types.EntityID {
	id, err := s.First()
	if err != nil {
		panic("no entity matches the search")
	}
	return id
}

// Collect returns all entities that match this search, in ascending ID
// order.
func (s *Search) Collect() ([]types.EntityID, error) {
	var ids []types.EntityID
	err := s.Each(func(id types.EntityID) bool {
		ids = append(ids, id)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// aliveSorted returns the alive set as a sorted snapshot.
func (w *World) aliveSorted() []types.EntityID {
	ids := make([]types.EntityID, 0, len(w.alive))
	for id := range w.alive {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// componentNamesOf returns the names of every component type the entity
// currently carries. Order is unspecified.
func (w *World) componentNamesOf(e types.EntityID) []string {
	names := make([]string, 0, len(w.registry.stores))
	for _, st := range w.registry.stores {
		if st.Has(e) {
			names = append(names, st.Name())
		}
	}
	return names
}
