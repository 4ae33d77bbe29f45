package lazyecs

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs/storage"
	"pkg.world.dev/lazyecs/types"
)

// componentRegistry tracks every component type a World has seen. Each name
// maps to a ComponentID (assigned from 1 in registration order) and to the
// dense store holding that type's values. Names are the one identity shared
// by the typed API, the dynamic API, CQL, and the debug state dump, so a name
// can never be claimed by two structurally different Go types.
type componentRegistry struct {
	ids     map[string]types.ComponentID
	stores  map[types.ComponentID]storage.AnyStore
	schemas map[string][]byte
	// tags holds the zero value of each registered type, for callers that
	// need a types.Component for a name (filters built from CQL, mostly).
	tags   map[string]types.Component
	nextID types.ComponentID
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		ids:     make(map[string]types.ComponentID),
		stores:  make(map[types.ComponentID]storage.AnyStore),
		schemas: make(map[string][]byte),
		tags:    make(map[string]types.Component),
		nextID:  1,
	}
}

func (r *componentRegistry) storeByName(name string) (storage.AnyStore, bool) {
	id, ok := r.ids[name]
	if !ok {
		return nil, false
	}
	return r.stores[id], true
}

// RegisterComponent registers component type T with the world, creating its
// store. Registering the same type again is a no-op; registering a different
// type under an already-taken name fails with ErrComponentSchemaMismatch.
// Registration also happens lazily on the first Set[T], so calling this up
// front is only required before using the dynamic (value-based) API, which
// cannot create typed stores on its own.
func RegisterComponent[T types.Component](w *World) error {
	_, err := storeFor[T](w)
	return err
}

// MustRegisterComponent is like RegisterComponent but panics on failure.
// Intended for program setup.
func MustRegisterComponent[T types.Component](w *World) {
	if err := RegisterComponent[T](w); err != nil {
		panic(err)
	}
}

// storeFor returns the store for T, creating and registering it if this is
// the first time the world sees T.
func storeFor[T types.Component](w *World) (*storage.Store[T], error) {
	var zero T
	name := zero.Name()

	if id, ok := w.registry.ids[name]; ok {
		st, ok := w.registry.stores[id].(*storage.Store[T])
		if ok {
			return st, nil
		}
		// The name is taken by another Go type. Compare schemas so the error
		// says whether the caller has a true layout conflict or two distinct
		// types that merely share a shape.
		schema, err := types.SerializeComponentSchema(zero)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to serialize schema for component %q", name)
		}
		valid, err := types.IsSchemaValid(schema, w.registry.schemas[name])
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, eris.Wrapf(ErrComponentSchemaMismatch,
				"component name %q is already registered with a different schema", name)
		}
		return nil, eris.Wrapf(ErrComponentSchemaMismatch,
			"component name %q is already registered to a different type", name)
	}

	schema, err := types.SerializeComponentSchema(zero)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to serialize schema for component %q", name)
	}

	st := storage.NewStore[T]()
	id := w.registry.nextID
	w.registry.nextID++
	w.registry.ids[name] = id
	w.registry.stores[id] = st
	w.registry.schemas[name] = schema
	w.registry.tags[name] = zero

	w.logger.Debug().
		Str("component_name", name).
		Int("component_id", int(id)).
		Msg("component registered")
	return st, nil
}

// ComponentByName returns the zero value of the registered component type
// with the given name, usable as a tag for filter constructors.
func (w *World) ComponentByName(name string) (types.Component, error) {
	tag, ok := w.registry.tags[name]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "component %q is not registered", name)
	}
	return tag, nil
}

// lookupStore returns the store for T without creating one. ok is false when
// T was never registered. err is non-nil when T's name is registered to a
// different Go type.
func lookupStore[T types.Component](w *World) (*storage.Store[T], bool, error) {
	var zero T
	id, ok := w.registry.ids[zero.Name()]
	if !ok {
		return nil, false, nil
	}
	st, ok := w.registry.stores[id].(*storage.Store[T])
	if !ok {
		return nil, false, eris.Wrapf(ErrComponentSchemaMismatch,
			"component name %q is already registered to a different type", zero.Name())
	}
	return st, true, nil
}
