package lazyecs

import (
	"github.com/rs/zerolog"
)

// WorldOption represents an option that can be used to augment how a World
// is created. Options are applied after the environment config is loaded and
// before it is validated, so they can override any of its fields.
type WorldOption func(*World)

// WithConfig replaces the environment-derived config entirely.
func WithConfig(cfg WorldConfig) WorldOption {
	return func(w *World) {
		w.cfg = cfg
	}
}

// WithNamespace sets the World's namespace. The default is "lazyecs". The
// namespace shows up in logs, metric tags, and the diagnostics server.
func WithNamespace(namespace string) WorldOption {
	return func(w *World) {
		w.cfg.Namespace = namespace
	}
}

// WithLogger injects a custom logger, replacing the config-built one.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
		w.hasCustomLogger = true
	}
}

// WithPrettyLog enables human-friendly console log output instead of the
// default structured JSON.
func WithPrettyLog() WorldOption {
	return func(w *World) {
		w.cfg.LogPretty = true
	}
}

// SystemOption augments how a system is registered with a scheduler.
type SystemOption func(*systemEntry)

// WithPriority sets the system's priority within its phase. Systems in a
// phase run in ascending priority order; systems with equal priority run in
// registration order. The default priority is 0.
func WithPriority(priority int) SystemOption {
	return func(e *systemEntry) {
		e.priority = priority
	}
}

// WithSystemName overrides the name derived from the system's type or
// function. Names must be unique per scheduler, so registering two instances
// of the same system type requires naming at least one of them.
func WithSystemName(name string) SystemOption {
	return func(e *systemEntry) {
		e.name = name
	}
}
