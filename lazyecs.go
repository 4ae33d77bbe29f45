// Package lazyecs is a minimal Entity-Component-System runtime. A World
// creates entities, attaches typed components to them in dense per-type
// stores, and answers multi-component queries; a Scheduler runs registered
// systems against the World in a fixed, phase-ordered sequence once per tick.
//
// The runtime is single-threaded by design: one tick is one synchronous call
// to Scheduler.Run, and all World state is owned by the calling goroutine for
// its duration. Structural changes to a store while a query over it is being
// consumed are detected and fail fast with ErrIterationInvalidated; callers
// that need to destroy entities mid-sweep should collect IDs first and
// destroy after the walk.
package lazyecs

// Version is the release of the lazyecs runtime.
const Version = "0.1.0"
