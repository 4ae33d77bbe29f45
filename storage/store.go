// Package storage implements the dense per-type component tables a World is
// built on. Each component type gets one Store: component values live in a
// dense slice, a parallel slice records the owning entity of every slot, and
// an index map points each entity at its slot. Removal swaps the last slot
// into the vacated one, so the arrays never hold holes but iteration order is
// not stable across removals.
package storage

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs/internal/assert"
	"pkg.world.dev/lazyecs/types"
)

var (
	// ErrComponentNotOnEntity is returned by strict getters when the store
	// exists but holds no entry for the requested entity.
	ErrComponentNotOnEntity = eris.New("entity does not have this component")

	// ErrComponentMismatchWithStore is returned by SetAbstract when the
	// dynamic type of the component does not match the store's type.
	ErrComponentMismatchWithStore = eris.New("component type does not match store")

	// ErrIterationInvalidated is returned by an in-flight iteration when the
	// store underneath it was structurally modified (an entry added or
	// removed). Overwriting a value in place does not invalidate iteration.
	ErrIterationInvalidated = eris.New("store was structurally modified during iteration")
)

const initialCapacity = 16

// Store is a dense table of component values of a single type, keyed by
// entity. Add, remove, get, and membership checks are all O(1).
type Store[T types.Component] struct {
	compName string
	comps    []T
	entities []types.EntityID
	index    map[types.EntityID]int

	// version increments on every structural change. Iterations snapshot it
	// to detect mutation underneath them.
	version uint64
}

// NewStore creates an empty store for component type T.
func NewStore[T types.Component]() *Store[T] {
	var zero T
	return &Store[T]{
		compName: zero.Name(),
		comps:    make([]T, 0, initialCapacity),
		entities: make([]types.EntityID, 0, initialCapacity),
		index:    make(map[types.EntityID]int, initialCapacity),
	}
}

// Name returns the name of the component type this store holds.
func (s *Store[T]) Name() string {
	return s.compName
}

// Len returns the number of live entries.
func (s *Store[T]) Len() int {
	return len(s.comps)
}

// Has reports whether the entity has an entry in this store.
func (s *Store[T]) Has(e types.EntityID) bool {
	_, ok := s.index[e]
	return ok
}

// Set attaches a component value to the entity. If the entity already has an
// entry its value is overwritten in place, keeping the same slot. Overwrites
// are not structural changes and do not disturb in-flight iteration.
func (s *Store[T]) Set(e types.EntityID, c T) {
	if i, ok := s.index[e]; ok {
		s.comps[i] = c
		return
	}
	s.index[e] = len(s.comps)
	s.comps = append(s.comps, c)
	s.entities = append(s.entities, e)
	s.version++
}

// Get returns the entity's component value. It fails with
// ErrComponentNotOnEntity if the entity has no entry.
func (s *Store[T]) Get(e types.EntityID) (T, error) {
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, eris.Wrapf(ErrComponentNotOnEntity, "cannot get %s for entity %d", s.compName, e)
	}
	return s.comps[i], nil
}

// TryGet returns the entity's component value, or the zero value and false if
// the entity has no entry. It never fails.
func (s *Store[T]) TryGet(e types.EntityID) (T, bool) {
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.comps[i], true
}

// Ref returns a pointer to the entity's live slot, or nil and false if the
// entity has no entry. The pointer is only valid until the next structural
// change to the store; writes through it are in-place overwrites.
func (s *Store[T]) Ref(e types.EntityID) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return &s.comps[i], true
}

// Remove deletes the entity's entry by swapping the last slot into its place
// and shrinking by one. Density is preserved; positional order is not. It
// reports whether an entry was actually removed.
func (s *Store[T]) Remove(e types.EntityID) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	assert.That(i < len(s.comps), "index for entity %d is out of range in store %s", e, s.compName)

	last := len(s.comps) - 1
	moved := s.entities[last]
	s.comps[i] = s.comps[last]
	s.entities[i] = moved
	s.index[moved] = i

	s.comps = s.comps[:last]
	s.entities = s.entities[:last]
	delete(s.index, e)
	s.version++
	return true
}

// Each walks the store's entries in dense order, handing the callback each
// entity and a pointer to its live slot. Returning false from the callback
// stops the walk early. Every call starts a fresh walk. If the store is
// structurally modified while the walk is in flight, Each stops and returns
// ErrIterationInvalidated; in-place writes through the yielded pointer are
// fine.
func (s *Store[T]) Each(fn func(types.EntityID, *T) bool) error {
	v := s.version
	for i := 0; i < len(s.entities); i++ {
		cont := fn(s.entities[i], &s.comps[i])
		if s.version != v {
			return eris.Wrapf(ErrIterationInvalidated, "store %s", s.compName)
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// EntityIDs returns a snapshot copy of the entities currently in the store,
// in dense order.
func (s *Store[T]) EntityIDs() []types.EntityID {
	ids := make([]types.EntityID, len(s.entities))
	copy(ids, s.entities)
	return ids
}

// Values returns a snapshot copy of the component values currently in the
// store, in dense order.
func (s *Store[T]) Values() []T {
	vals := make([]T, len(s.comps))
	copy(vals, s.comps)
	return vals
}

// SetAbstract is the type-erased counterpart of Set. It fails with
// ErrComponentMismatchWithStore if the dynamic type of c is not T.
func (s *Store[T]) SetAbstract(e types.EntityID, c types.Component) error {
	concrete, ok := c.(T)
	if !ok {
		return eris.Wrapf(ErrComponentMismatchWithStore, "cannot store %s in store %s", c.Name(), s.compName)
	}
	s.Set(e, concrete)
	return nil
}

// GetAbstract is the type-erased counterpart of Get.
func (s *Store[T]) GetAbstract(e types.EntityID) (types.Component, error) {
	return s.Get(e)
}
