package lazyecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// resourceTable holds at most one value per Go type: world-global singletons
// like bounds, RNG sources, or shared configuration that systems need but no
// single entity owns.
type resourceTable struct {
	values map[reflect.Type]any
}

func newResourceTable() *resourceTable {
	return &resourceTable{values: make(map[reflect.Type]any)}
}

func resourceType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// SetResource publishes a value of type T to the world. At most one value
// per type is kept; the last write wins.
func SetResource[T any](w *World, value T) {
	t := resourceType[T]()
	w.resources.values[t] = value

	w.logger.Debug().
		Str("resource_type", t.String()).
		Msg("resource set")
}

// GetResource returns the world's value of type T. It fails with
// ErrResourceNotFound if no value of that type was ever published.
func GetResource[T any](w *World) (T, error) {
	t := resourceType[T]()
	v, ok := w.resources.values[t]
	if !ok {
		var zero T
		return zero, eris.Wrapf(ErrResourceNotFound, "no resource of type %s", t.String())
	}
	return v.(T), nil
}

// TryGetResource returns the world's value of type T, or the zero value and
// false if no value of that type was ever published. It never fails.
func TryGetResource[T any](w *World) (T, bool) {
	v, ok := w.resources.values[resourceType[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}
