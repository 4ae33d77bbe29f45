package lazyecs

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs/storage"
)

var (
	// ErrEntityNotAlive is returned by mutation entry points that target a
	// dead or never-created entity.
	ErrEntityNotAlive = eris.New("entity is not alive")

	// ErrComponentNotRegistered is returned by strict getters when no store
	// for the component type has ever been created in this world. This is
	// distinct from ErrComponentNotOnEntity, where the store exists but the
	// entity has no entry in it.
	ErrComponentNotRegistered = eris.New("component type was never registered with this world")

	// ErrResourceNotFound is returned by GetResource when no value of the
	// requested type was ever published to the world.
	ErrResourceNotFound = eris.New("resource type was never set on this world")

	// ErrComponentSchemaMismatch is returned when a component registers under
	// a name that is already taken by a structurally different type.
	ErrComponentSchemaMismatch = eris.New("component schema does not match target schema")

	// ErrDuplicateSystemName is returned when two systems register under the
	// same name on one scheduler.
	ErrDuplicateSystemName = eris.New("system names must be unique")
)

// Store-level sentinels, re-exported so callers of the world API don't need
// to import the storage package to match them.
var (
	ErrComponentNotOnEntity = storage.ErrComponentNotOnEntity
	ErrIterationInvalidated = storage.ErrIterationInvalidated
)
