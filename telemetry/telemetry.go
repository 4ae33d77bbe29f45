// Package telemetry owns the lifecycle of the Datadog tracer and profiler.
// The scheduler emits its tick spans through dd-trace's native API, so all
// this package has to do is start and stop the global tracer; spans created
// while the tracer is stopped are silently dropped.
package telemetry

import (
	"github.com/rotisserie/eris"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

// Manager tracks which telemetry subsystems were started so Shutdown can
// stop exactly those.
type Manager struct {
	tracerStopFunc   func()
	profilerStopFunc func()
}

// New starts the requested telemetry subsystems. When the profiler fails to
// start, anything already started is shut down before returning.
func New(enableTrace bool, enableProfiler bool) (*Manager, error) {
	tm := Manager{}

	// Set up the tracer used for tick and system spans
	if enableTrace {
		tm.setupTrace()
	}

	// Set up profiler
	if enableProfiler {
		if err := tm.setupProfiler(); err != nil {
			tm.Shutdown()
			return nil, err
		}
	}

	return &tm, nil
}

// Shutdown stops every subsystem this manager started, flushing buffered
// traces and profiles. It is safe to call more than once.
func (tm *Manager) Shutdown() {
	if tm.tracerStopFunc != nil {
		tm.tracerStopFunc()
		tm.tracerStopFunc = nil
	}

	if tm.profilerStopFunc != nil {
		tm.profilerStopFunc()
		tm.profilerStopFunc = nil
	}
}

func (tm *Manager) setupTrace() {
	tracer.Start(tracer.WithRuntimeMetrics())
	tm.tracerStopFunc = tracer.Stop
}

func (tm *Manager) setupProfiler() error {
	err := profiler.Start(
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
			// The profiles below are disabled by default to keep overhead
			// low, but can be enabled as needed.
			// profiler.BlockProfile,
			// profiler.MutexProfile,
			// profiler.GoroutineProfile,
		),
	)
	if err != nil {
		return eris.Wrap(err, "failed to start profiler")
	}

	tm.profilerStopFunc = profiler.Stop

	return nil
}
