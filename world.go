package lazyecs

import (
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/lazyecs/log"
	"pkg.world.dev/lazyecs/statsd"
	"pkg.world.dev/lazyecs/storage"
	"pkg.world.dev/lazyecs/telemetry"
	"pkg.world.dev/lazyecs/types"
)

// World owns all ECS state: the alive entity set, one dense component store
// per registered component type, and the resource table. A World is not safe
// for concurrent use; all access is expected to happen on the goroutine
// driving the tick loop.
type World struct {
	instanceID string
	namespace  types.Namespace
	cfg        WorldConfig
	logger     zerolog.Logger

	// hasCustomLogger is set by WithLogger so NewWorld doesn't clobber an
	// injected logger with the config-built one.
	hasCustomLogger bool

	nextID types.EntityID
	alive  map[types.EntityID]struct{}

	registry  *componentRegistry
	resources *resourceTable

	telemetry *telemetry.Manager
}

// NewWorld creates a World configured from the environment (see WorldConfig)
// and any given options.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg, err := loadWorldConfig()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load world config")
	}

	w := &World{
		instanceID: uuid.New().String(),
		cfg:        *cfg,
		nextID:     1,
		alive:      make(map[types.EntityID]struct{}),
		registry:   newComponentRegistry(),
		resources:  newResourceTable(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid world config")
	}
	w.namespace = types.Namespace(w.cfg.Namespace)
	if !w.hasCustomLogger {
		w.logger = newWorldLogger(w.cfg, w.instanceID)
	}

	if w.cfg.StatsdAddress != "" {
		if err := statsd.Init(w.cfg.StatsdAddress, []string{"namespace:" + w.cfg.Namespace}); err != nil {
			return nil, eris.Wrap(err, "failed to init statsd")
		}
	}

	if w.cfg.TraceEnabled || w.cfg.ProfilerEnabled {
		tm, err := telemetry.New(w.cfg.TraceEnabled, w.cfg.ProfilerEnabled)
		if err != nil {
			return nil, eris.Wrap(err, "failed to create telemetry manager")
		}
		w.telemetry = tm
	}

	w.logger.Info().Msg("world created")
	return w, nil
}

// Shutdown flushes and stops the world's telemetry: buffered statsd metrics,
// the tracer, and the profiler. The world itself holds no other external
// resources, so it remains usable afterwards; only its metrics go dark.
// Long-running drivers should defer this after NewWorld.
func (w *World) Shutdown() error {
	if w.telemetry != nil {
		w.telemetry.Shutdown()
		w.telemetry = nil
	}
	err := statsd.Close()
	w.logger.Info().Msg("world shut down")
	return err
}

func newWorldLogger(cfg WorldConfig, instanceID string) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogPretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("namespace", cfg.Namespace).
		Str("world_id", instanceID).
		Logger()
}

// Logger returns the world's logger. Systems should derive their own
// sub-loggers from it rather than logging through a global.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// InstanceID returns the unique id assigned to this world at creation.
func (w *World) InstanceID() string {
	return w.instanceID
}

// Namespace returns the world's namespace label.
func (w *World) Namespace() string {
	return w.namespace.String()
}

// Create allocates a fresh entity with no components and marks it alive.
// Entity IDs are monotonically increasing and never reused. Create never
// fails.
func (w *World) Create() types.EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}

	w.logger.Debug().
		Uint64("entity_id", uint64(id)).
		Msg("entity created")
	return id
}

// Spawn creates an entity and attaches the given components to it in one
// call. Component types must already be registered (see RegisterComponent);
// on failure the half-built entity is destroyed and BadID is returned.
func (w *World) Spawn(comps ...types.Component) (types.EntityID, error) {
	id := w.Create()
	if err := w.AddComponents(id, comps...); err != nil {
		w.Destroy(id)
		return types.BadID, eris.Wrapf(err, "failed to spawn entity %d", id)
	}

	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = c.Name()
	}
	log.Entity(w.logger.Debug(), id, names).Msg("entity spawned")
	return id, nil
}

// Destroy removes the entity from the alive set and sweeps its entries out
// of every component store, synchronously, in this call. Destroying a dead
// or never-created entity is a no-op. It reports whether the entity was
// alive.
func (w *World) Destroy(e types.EntityID) bool {
	if _, ok := w.alive[e]; !ok {
		return false
	}
	delete(w.alive, e)
	for _, st := range w.registry.stores {
		st.Remove(e)
	}

	w.logger.Debug().
		Uint64("entity_id", uint64(e)).
		Msg("entity destroyed")
	return true
}

// Alive reports whether the entity is currently alive in this world.
func (w *World) Alive(e types.EntityID) bool {
	_, ok := w.alive[e]
	return ok
}

// AddComponents attaches each given component value to the entity, resolving
// every value's store by its Name. An existing component of the same type is
// overwritten. It fails with ErrEntityNotAlive for dead or never-created
// entities, and with ErrComponentNotRegistered for component types the world
// has not seen; this dynamic entry point cannot create typed stores itself.
func (w *World) AddComponents(e types.EntityID, comps ...types.Component) error {
	if !w.Alive(e) {
		return eris.Wrapf(ErrEntityNotAlive, "cannot add components to entity %d", e)
	}
	for _, c := range comps {
		st, ok := w.registry.storeByName(c.Name())
		if !ok {
			return eris.Wrapf(ErrComponentNotRegistered,
				"component %q must be registered before it can be added by value", c.Name())
		}
		if err := st.SetAbstract(e, c); err != nil {
			return eris.Wrapf(err, "failed to add component %q to entity %d", c.Name(), e)
		}
		w.logger.Debug().
			Uint64("entity_id", uint64(e)).
			Str("component_name", c.Name()).
			Msg("component set")
	}
	return nil
}

// RemoveComponents detaches the named component types from the entity. The
// values of the given components are ignored; only their names matter.
// Missing types and missing entries are silently ignored. It returns how
// many components were actually removed.
func (w *World) RemoveComponents(e types.EntityID, comps ...types.Component) int {
	removed := 0
	for _, c := range comps {
		st, ok := w.registry.storeByName(c.Name())
		if !ok {
			continue
		}
		if st.Remove(e) {
			removed++
			w.logger.Debug().
				Uint64("entity_id", uint64(e)).
				Str("component_name", c.Name()).
				Msg("component removed")
		}
	}
	return removed
}

// HasComponents reports whether the entity has an entry in every named
// component type's store. With no components given it is vacuously true,
// even for dead entities; callers iterating over variadic arguments should
// be aware of the empty case.
func (w *World) HasComponents(e types.EntityID, comps ...types.Component) bool {
	for _, c := range comps {
		st, ok := w.registry.storeByName(c.Name())
		if !ok {
			return false
		}
		if !st.Has(e) {
			return false
		}
	}
	return true
}

// RegisteredComponents returns the names of every component type the world
// has seen, in registration (ComponentID) order.
func (w *World) RegisteredComponents() []string {
	names := make([]string, 0, len(w.registry.ids))
	for name := range w.registry.ids {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return w.registry.ids[names[i]] < w.registry.ids[names[j]]
	})
	return names
}

// storesFor resolves the set of stores backing the named component types.
// ok is false if any name was never registered, which short-circuits queries
// to an empty result.
func (w *World) storesFor(comps []types.Component) ([]storage.AnyStore, bool) {
	stores := make([]storage.AnyStore, len(comps))
	for i, c := range comps {
		st, ok := w.registry.storeByName(c.Name())
		if !ok {
			return nil, false
		}
		stores[i] = st
	}
	return stores, true
}
