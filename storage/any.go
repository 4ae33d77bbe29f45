package storage

import "pkg.world.dev/lazyecs/types"

// AnyStore is the type-erased capability a World needs from every component
// store it owns, regardless of the component type inside. It is how the world
// sweeps all stores on entity destruction and serves queries whose component
// types are only known at runtime (CQL, the debug state dump).
type AnyStore interface {
	// Name returns the name of the component type this store holds.
	Name() string
	// Len returns the number of live entries.
	Len() int
	// Has reports whether the entity has an entry in this store.
	Has(e types.EntityID) bool
	// Remove deletes the entity's entry if present and reports whether it did.
	Remove(e types.EntityID) bool
	// SetAbstract attaches a component whose concrete type is only known at
	// runtime. It fails if the component's type does not match the store.
	SetAbstract(e types.EntityID, c types.Component) error
	// GetAbstract returns the entity's component value, boxed.
	GetAbstract(e types.EntityID) (types.Component, error)
	// EntityIDs returns a snapshot copy of the entities currently stored.
	EntityIDs() []types.EntityID
}

var _ AnyStore = &Store[types.Component]{}
