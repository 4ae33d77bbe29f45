package lazyecs

import (
	"pkg.world.dev/lazyecs/types"
)

// Queries walk the smallest requested store (the driver) and probe the other
// requested stores for each of its entities, so cost scales with the rarest
// component, not the world size. If any requested type has never been used
// in the world the result is empty: a store that does not exist and a store
// with zero entries both contribute nothing.
//
// Callback pointers alias live store slots in the order the type parameters
// were requested, never in driver order. Writes through them are in-place
// overwrites and are legal mid-walk. Structurally changing a store a walk is
// driving (adding or removing entries, destroying entities that hold the
// driver's component) fails fast with ErrIterationInvalidated; collect IDs
// and mutate after the walk instead. Probed stores are read per entity as
// the walk reaches it, so the callback sees their latest state.

// Each calls fn for every alive entity that has a component of type A.
func Each[A types.Component](w *World, fn func(types.EntityID, *A) bool) error {
	st, ok, err := lookupStore[A](w)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return st.Each(func(id types.EntityID, a *A) bool {
		if !w.Alive(id) {
			return true
		}
		return fn(id, a)
	})
}

// Each2 calls fn for every alive entity that has components of both type A
// and type B.
func Each2[A, B types.Component](w *World, fn func(types.EntityID, *A, *B) bool) error {
	stA, okA, err := lookupStore[A](w)
	if err != nil {
		return err
	}
	stB, okB, err := lookupStore[B](w)
	if err != nil {
		return err
	}
	if !okA || !okB {
		return nil
	}

	if stA.Len() <= stB.Len() {
		return stA.Each(func(id types.EntityID, a *A) bool {
			if !w.Alive(id) {
				return true
			}
			b, ok := stB.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b)
		})
	}
	return stB.Each(func(id types.EntityID, b *B) bool {
		if !w.Alive(id) {
			return true
		}
		a, ok := stA.Ref(id)
		if !ok {
			return true
		}
		return fn(id, a, b)
	})
}

// Each3 calls fn for every alive entity that has components of types A, B,
// and C.
func Each3[A, B, C types.Component](w *World, fn func(types.EntityID, *A, *B, *C) bool) error {
	stA, okA, err := lookupStore[A](w)
	if err != nil {
		return err
	}
	stB, okB, err := lookupStore[B](w)
	if err != nil {
		return err
	}
	stC, okC, err := lookupStore[C](w)
	if err != nil {
		return err
	}
	if !okA || !okB || !okC {
		return nil
	}

	la, lb, lc := stA.Len(), stB.Len(), stC.Len()
	switch {
	case la <= lb && la <= lc:
		return stA.Each(func(id types.EntityID, a *A) bool {
			if !w.Alive(id) {
				return true
			}
			b, ok := stB.Ref(id)
			if !ok {
				return true
			}
			c, ok := stC.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b, c)
		})
	case lb <= lc:
		return stB.Each(func(id types.EntityID, b *B) bool {
			if !w.Alive(id) {
				return true
			}
			a, ok := stA.Ref(id)
			if !ok {
				return true
			}
			c, ok := stC.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b, c)
		})
	default:
		return stC.Each(func(id types.EntityID, c *C) bool {
			if !w.Alive(id) {
				return true
			}
			a, ok := stA.Ref(id)
			if !ok {
				return true
			}
			b, ok := stB.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b, c)
		})
	}
}

// Each4 calls fn for every alive entity that has components of types A, B,
// C, and D.
func Each4[A, B, C, D types.Component](w *World, fn func(types.EntityID, *A, *B, *C, *D) bool) error {
	stA, okA, err := lookupStore[A](w)
	if err != nil {
		return err
	}
	stB, okB, err := lookupStore[B](w)
	if err != nil {
		return err
	}
	stC, okC, err := lookupStore[C](w)
	if err != nil {
		return err
	}
	stD, okD, err := lookupStore[D](w)
	if err != nil {
		return err
	}
	if !okA || !okB || !okC || !okD {
		return nil
	}

	la, lb, lc, ld := stA.Len(), stB.Len(), stC.Len(), stD.Len()
	switch {
	case la <= lb && la <= lc && la <= ld:
		return stA.Each(func(id types.EntityID, a *A) bool {
			if !w.Alive(id) {
				return true
			}
			b, ok := stB.Ref(id)
			if !ok {
				return true
			}
			c, ok := stC.Ref(id)
			if !ok {
				return true
			}
			d, ok := stD.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b, c, d)
		})
	case lb <= lc && lb <= ld:
		return stB.Each(func(id types.EntityID, b *B) bool {
			if !w.Alive(id) {
				return true
			}
			a, ok := stA.Ref(id)
			if !ok {
				return true
			}
			c, ok := stC.Ref(id)
			if !ok {
				return true
			}
			d, ok := stD.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b, c, d)
		})
	case lc <= ld:
		return stC.Each(func(id types.EntityID, c *C) bool {
			if !w.Alive(id) {
				return true
			}
			a, ok := stA.Ref(id)
			if !ok {
				return true
			}
			b, ok := stB.Ref(id)
			if !ok {
				return true
			}
			d, ok := stD.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b, c, d)
		})
	default:
		return stD.Each(func(id types.EntityID, d *D) bool {
			if !w.Alive(id) {
				return true
			}
			a, ok := stA.Ref(id)
			if !ok {
				return true
			}
			b, ok := stB.Ref(id)
			if !ok {
				return true
			}
			c, ok := stC.Ref(id)
			if !ok {
				return true
			}
			return fn(id, a, b, c, d)
		})
	}
}

// QueryEntities returns the IDs of every alive entity that has an entry in
// each named component type's store. The values of the given components are
// ignored; only their names matter. With no components given, or when any
// named type was never used in this world, the result is empty.
func (w *World) QueryEntities(comps ...types.Component) []types.EntityID {
	if len(comps) == 0 {
		return nil
	}
	stores, ok := w.storesFor(comps)
	if !ok {
		return nil
	}

	driver := stores[0]
	for _, st := range stores[1:] {
		if st.Len() < driver.Len() {
			driver = st
		}
	}

	var ids []types.EntityID
	for _, id := range driver.EntityIDs() {
		if !w.Alive(id) {
			continue
		}
		match := true
		for _, st := range stores {
			if st == driver {
				continue
			}
			if !st.Has(id) {
				match = false
				break
			}
		}
		if match {
			ids = append(ids, id)
		}
	}
	return ids
}
