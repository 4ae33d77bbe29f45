// Package log enriches zerolog events with entity, component, and system
// details in a consistent shape.
package log

import (
	"sort"

	"github.com/rs/zerolog"

	"pkg.world.dev/lazyecs/types"
)

// Components appends the component names, sorted for stable output, to the
// event as an array plus a count.
func Components(evt *zerolog.Event, names []string) *zerolog.Event {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	evt.Int("total_components", len(sorted))
	arr := zerolog.Arr()
	for _, name := range sorted {
		arr = arr.Str(name)
	}
	return evt.Array("components", arr)
}

// Systems appends system names to the event in the order given, which for a
// scheduler is execution order.
func Systems(evt *zerolog.Event, names []string) *zerolog.Event {
	evt.Int("total_systems", len(names))
	arr := zerolog.Arr()
	for _, name := range names {
		arr = arr.Str(name)
	}
	return evt.Array("systems", arr)
}

// Entity appends an entity's id and component names to the event.
func Entity(evt *zerolog.Event, id types.EntityID, components []string) *zerolog.Event {
	arr := zerolog.Arr()
	for _, name := range components {
		arr = arr.Str(name)
	}
	evt.Array("components", arr)
	return evt.Uint64("entity_id", uint64(id))
}

// SystemLogger returns a sub-logger with the entry {"system": systemName}.
func SystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	sub := logger.With().Str("system", systemName).Logger()
	return &sub
}

// TraceLogger returns a sub-logger with the entry {"trace_id": traceID}.
// Using a single id you can follow one data path across several systems.
func TraceLogger(logger *zerolog.Logger, traceID string) *zerolog.Logger {
	sub := logger.With().Str("trace_id", traceID).Logger()
	return &sub
}
