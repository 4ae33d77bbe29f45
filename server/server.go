// Package server exposes a world's diagnostics over HTTP: health, world
// stats, a full entity state dump, and CQL queries. It serves reads only;
// mutating a world stays in Go, inside systems.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs"
)

const (
	defaultPort     = "4040"
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	app   *fiber.App
	world *lazyecs.World
	sched *lazyecs.Scheduler
	port  string
}

// New returns an HTTP server with the diagnostic routes registered. The
// scheduler is optional; without one the health endpoint reports zero
// completed ticks.
func New(w *lazyecs.World, opts ...Option) (*Server, error) {
	if w == nil {
		return nil, eris.New("server requires a non-nil world")
	}

	app := fiber.New(fiber.Config{
		Network:               "tcp", // Enable server listening on both ipv4 & ipv6 (default: ipv4 only)
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})
	app.Use(cors.New())

	s := &Server{
		app:   app,
		world: w,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.port == "" {
		s.port = os.Getenv("LAZYECS_PORT")
		if s.port == "" {
			s.port = defaultPort
		}
	}
	s.setupRoutes()

	return s, nil
}

// Serve serves the application, blocking the calling goroutine until the
// context is canceled or the server fails. Call it in a new goroutine to
// prevent blocking.
func (s *Server) Serve(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		s.world.Logger().Info().Msgf("Starting HTTP server at port %s", s.port)
		if err := s.app.Listen(":" + s.port); err != nil {
			serverErr <- eris.Wrap(err, "error starting http server")
		}
	}()

	select {
	case err := <-serverErr:
		return eris.Wrap(err, "server encountered an error")
	case <-ctx.Done():
		if err := s.shutdown(); err != nil {
			return eris.Wrap(err, "error shutting down server")
		}
	}

	return nil
}

func (s *Server) shutdown() error {
	s.world.Logger().Info().Msg("Shutting down server")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return eris.Wrap(err, "error shutting down server")
	}
	s.world.Logger().Info().Msg("Successfully shut down server")
	return nil
}

// Test routes a request through the server without a network listener,
// using fiber's in-process test transport.
func (s *Server) Test(req *http.Request) (*http.Response, error) {
	return s.app.Test(req, -1)
}

func (s *Server) setupRoutes() {
	// Route: /health
	s.app.Get("/health", s.getHealth)

	// Route: /world
	s.app.Get("/world", s.getWorld)

	// Route: /debug/state
	s.app.Get("/debug/state", s.getDebugState)

	// Route: /cql
	s.app.Post("/cql", s.postCQL)
}
