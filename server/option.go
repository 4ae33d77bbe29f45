package server

import (
	"pkg.world.dev/lazyecs"
)

type Option func(s *Server)

// WithPort overrides the listen port. Without it the server uses the
// LAZYECS_PORT environment variable, falling back to 4040.
func WithPort(port string) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithScheduler lets the health endpoint report tick progress.
func WithScheduler(sched *lazyecs.Scheduler) Option {
	return func(s *Server) {
		s.sched = sched
	}
}
