package lazyecs

import (
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"pkg.world.dev/lazyecs/log"
	"pkg.world.dev/lazyecs/statsd"
)

// Suggested phase names. Phases are plain strings and run in the order they
// are first registered, so these are a convention, not a restriction.
const (
	PreUpdate   = "pre_update"
	UpdatePhase = "update"
	PostUpdate  = "post_update"
	Render      = "render"
)

// System is a unit of per-tick behavior. Run is invoked once per tick with
// the world and the seconds elapsed since the previous tick; dt is supplied
// by the driver loop and is never negative. Returning an error aborts the
// remainder of the tick.
type System interface {
	Run(w *World, dt float64) error
}

// SystemFunc adapts a bare function to the System interface.
type SystemFunc func(w *World, dt float64) error

func (f SystemFunc) Run(w *World, dt float64) error {
	return f(w, dt)
}

type systemEntry struct {
	name     string
	priority int
	system   System
}

// Scheduler owns the ordered collection of systems to run against a World
// each tick. Phases run in the order they were first registered; within a
// phase, systems run in ascending priority order, with ties keeping their
// registration order. Like the World, a Scheduler is single-threaded.
type Scheduler struct {
	phases     map[string][]systemEntry
	phaseOrder []string
	names      map[string]struct{}

	tick uint64
	// currentSystem is the name of the system being run, recorded so a
	// panicking tick can report where it died.
	currentSystem string
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		phases: make(map[string][]systemEntry),
		names:  make(map[string]struct{}),
	}
}

// AddSystem registers a system in the given phase. An unseen phase name is
// appended to the phase run order. The system's name is derived from its
// type (override with WithSystemName) and must be unique in this scheduler.
func (s *Scheduler) AddSystem(phase string, sys System, opts ...SystemOption) error {
	entry := systemEntry{
		name:   deriveSystemName(sys),
		system: sys,
	}
	for _, opt := range opts {
		opt(&entry)
	}

	if _, exists := s.names[entry.name]; exists {
		return eris.Wrapf(ErrDuplicateSystemName, "system %q is already registered", entry.name)
	}

	if _, seen := s.phases[phase]; !seen {
		s.phaseOrder = append(s.phaseOrder, phase)
	}
	s.phases[phase] = append(s.phases[phase], entry)
	entries := s.phases[phase]
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})
	s.names[entry.name] = struct{}{}
	return nil
}

// MustAddSystem is like AddSystem but panics on failure. Intended for
// program setup.
func (s *Scheduler) MustAddSystem(phase string, sys System, opts ...SystemOption) {
	if err := s.AddSystem(phase, sys, opts...); err != nil {
		panic(err)
	}
}

// AddFunc registers a bare function as a system in the given phase. The name
// is derived from the function's symbol, which for closures is a generated
// one like "main.run.func1"; pass WithSystemName when that matters.
func (s *Scheduler) AddFunc(phase string, fn SystemFunc, opts ...SystemOption) error {
	name := filepath.Base(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name())
	return s.AddSystem(phase, fn, append([]SystemOption{WithSystemName(name)}, opts...)...)
}

// MustAddFunc is like AddFunc but panics on failure.
func (s *Scheduler) MustAddFunc(phase string, fn SystemFunc, opts ...SystemOption) {
	if err := s.AddFunc(phase, fn, opts...); err != nil {
		panic(err)
	}
}

// Run executes one tick: every phase in first-registration order, every
// system within a phase in priority order, synchronously on the calling
// goroutine. The first error aborts the remainder of the tick and is
// returned wrapped with the failing system's name; the tick counter only
// advances on success. dt is handed through to every system unchanged.
func (s *Scheduler) Run(w *World, dt float64) error {
	defer s.handleTickPanic(w)

	if w.cfg.TraceEnabled {
		span := tracer.StartSpan("lazyecs.span.tick", tracer.Tag("tick", s.tick))
		defer span.Finish()
	}

	if s.tick == 0 {
		evt := log.Systems(w.logger.Info(), s.Systems())
		log.Components(evt, w.RegisteredComponents()).Msg("starting first tick")
	}
	w.logger.Debug().
		Uint64("tick", s.tick).
		Float64("dt", dt).
		Msg("tick started")

	start := time.Now()
	for _, phase := range s.phaseOrder {
		for _, entry := range s.phases[phase] {
			s.currentSystem = entry.name
			sysStart := time.Now()

			if err := entry.system.Run(w, dt); err != nil {
				w.logger.Error().
					Uint64("tick", s.tick).
					Str("phase", phase).
					Str("system", entry.name).
					Msg("tick aborted by system error")
				s.currentSystem = ""
				return eris.Wrapf(err, "system %s generated an error", entry.name)
			}
			statsd.EmitTickStat(sysStart, entry.name)
		}
	}
	s.currentSystem = ""
	statsd.EmitTickStat(start, "full_tick")

	w.logger.Debug().
		Uint64("tick", s.tick).
		Msg("tick completed")
	s.tick++
	return nil
}

// handleTickPanic logs the tick number and the system that was running so
// panics inside systems can be traced, then re-panics.
func (s *Scheduler) handleTickPanic(w *World) {
	if r := recover(); r != nil {
		w.logger.Error().
			Uint64("tick", s.tick).
			Str("system", s.currentSystem).
			Msg("tick panicked")
		panic(r)
	}
}

// Tick returns the number of fully completed ticks.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Systems returns the names of all registered systems in execution order.
func (s *Scheduler) Systems() []string {
	names := make([]string, 0, len(s.names))
	for _, phase := range s.phaseOrder {
		for _, entry := range s.phases[phase] {
			names = append(names, entry.name)
		}
	}
	return names
}

// Phases returns the phase names in their run order.
func (s *Scheduler) Phases() []string {
	phases := make([]string, len(s.phaseOrder))
	copy(phases, s.phaseOrder)
	return phases
}

// deriveSystemName names a system after its concrete type, or after its
// function symbol when it is a SystemFunc.
func deriveSystemName(sys System) string {
	if fn, ok := sys.(SystemFunc); ok {
		return filepath.Base(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name())
	}
	t := reflect.TypeOf(sys)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
