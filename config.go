package lazyecs

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/lazyecs/types"
)

// WorldConfig holds the environment-driven settings of a World. Every field
// can also be set programmatically through WorldOptions, which win over the
// environment.
type WorldConfig struct {
	// Namespace labels this world in logs, metric tags, and the diagnostics
	// server.
	Namespace string `config:"LAZYECS_NAMESPACE"`
	// LogLevel is a zerolog level name (trace, debug, info, warn, error).
	LogLevel string `config:"LAZYECS_LOG_LEVEL"`
	// LogPretty switches from structured JSON to console-formatted output.
	LogPretty bool `config:"LAZYECS_LOG_PRETTY"`
	// TraceEnabled starts the Datadog tracer and wraps every tick in a
	// trace span.
	TraceEnabled bool `config:"LAZYECS_TRACE_ENABLED"`
	// ProfilerEnabled starts the Datadog continuous profiler (CPU and heap).
	ProfilerEnabled bool `config:"LAZYECS_PROFILER_ENABLED"`
	// StatsdAddress is the address of a statsd agent to emit tick timings
	// to. Leave empty to disable metrics.
	StatsdAddress string `config:"LAZYECS_STATSD_ADDRESS"`
}

var defaultConfig = WorldConfig{
	Namespace: "lazyecs",
	LogLevel:  "info",
}

// loadWorldConfig returns the default config overlaid with whatever matching
// environment variables are set.
func loadWorldConfig() (*WorldConfig, error) {
	cfg := defaultConfig
	if err := config.FromEnv().To(&cfg); err != nil {
		return nil, eris.Wrap(err, "failed to read config from environment")
	}
	return &cfg, nil
}

// Validate rejects configs that would produce a broken world: bad namespace
// characters or an unknown log level.
func (c *WorldConfig) Validate() error {
	if err := types.Namespace(c.Namespace).Validate(); err != nil {
		return err
	}
	if c.LogLevel == "" {
		return eris.New("log level must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "log level %q is invalid", c.LogLevel)
	}
	return nil
}
