package lazyecs

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs/types"
)

func componentName[T types.Component]() string {
	var zero T
	return zero.Name()
}

// Set attaches a component value to the entity, overwriting any existing
// value of the same type in place. T is registered with the world on first
// use. Set fails with ErrEntityNotAlive for dead or never-created entities.
func Set[T types.Component](w *World, e types.EntityID, c T) error {
	if !w.Alive(e) {
		return eris.Wrapf(ErrEntityNotAlive, "cannot set component %q on entity %d", componentName[T](), e)
	}
	st, err := storeFor[T](w)
	if err != nil {
		return err
	}
	st.Set(e, c)

	w.logger.Debug().
		Uint64("entity_id", uint64(e)).
		Str("component_name", st.Name()).
		Msg("component set")
	return nil
}

// Get returns the entity's component of type T. It fails with
// ErrComponentNotRegistered if the world has never seen T, and with
// ErrComponentNotOnEntity if the store exists but the entity has no entry.
func Get[T types.Component](w *World, e types.EntityID) (T, error) {
	st, ok, err := lookupStore[T](w)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, eris.Wrapf(ErrComponentNotRegistered, "cannot get component %q", componentName[T]())
	}
	return st.Get(e)
}

// TryGet returns the entity's component of type T, or the zero value and
// false when the type was never registered or the entity has no entry. It
// never fails.
func TryGet[T types.Component](w *World, e types.EntityID) (T, bool) {
	st, ok, err := lookupStore[T](w)
	if err != nil || !ok {
		var zero T
		return zero, false
	}
	return st.TryGet(e)
}

// Has reports whether the entity has a component of type T.
func Has[T types.Component](w *World, e types.EntityID) bool {
	st, ok, err := lookupStore[T](w)
	if err != nil || !ok {
		return false
	}
	return st.Has(e)
}

// Remove detaches the entity's component of type T. Missing types and
// missing entries are silently ignored; it reports whether an entry was
// actually removed.
func Remove[T types.Component](w *World, e types.EntityID) bool {
	st, ok, err := lookupStore[T](w)
	if err != nil || !ok {
		return false
	}
	if !st.Remove(e) {
		return false
	}

	w.logger.Debug().
		Uint64("entity_id", uint64(e)).
		Str("component_name", st.Name()).
		Msg("component removed")
	return true
}

// Update applies fn to the entity's component of type T in place. fn may
// mutate the value through the pointer, or return a replacement; returning
// nil keeps the (possibly mutated) current value. Update fails like Get when
// the type or the entry is missing.
func Update[T types.Component](w *World, e types.EntityID, fn func(*T) *T) error {
	st, ok, err := lookupStore[T](w)
	if err != nil {
		return err
	}
	if !ok {
		return eris.Wrapf(ErrComponentNotRegistered, "cannot update component %q", componentName[T]())
	}
	ref, ok := st.Ref(e)
	if !ok {
		return eris.Wrapf(ErrComponentNotOnEntity, "cannot update %q for entity %d", st.Name(), e)
	}
	if updated := fn(ref); updated != nil {
		*ref = *updated
	}

	w.logger.Debug().
		Uint64("entity_id", uint64(e)).
		Str("component_name", st.Name()).
		Msg("component updated")
	return nil
}
