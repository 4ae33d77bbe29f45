// Command bounce simulates balls bouncing around a box: a spawner keeps the
// population topped up, movement integrates positions, walls reflect
// velocities, and a lifetime system retires old balls. It exists to show the
// runtime end to end, including the diagnostics server; try
//
//	curl localhost:4040/world
//	curl -d '{"cql":"CONTAINS(position) & CONTAINS(velocity)"}' localhost:4040/cql
//
// while it runs.
package main

import (
	"context"
	"math/rand/v2"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pkg.world.dev/lazyecs"
	ecslog "pkg.world.dev/lazyecs/log"
	"pkg.world.dev/lazyecs/server"
	"pkg.world.dev/lazyecs/statsd"
	"pkg.world.dev/lazyecs/types"
)

type Position struct {
	X, Y float64
}

func (Position) Name() string { return "position" }

type Velocity struct {
	DX, DY float64
}

func (Velocity) Name() string { return "velocity" }

type Lifetime struct {
	Remaining float64
}

func (Lifetime) Name() string { return "lifetime" }

// Bounds is the box the balls live in, published to the world as a resource.
type Bounds struct {
	Width, Height float64
}

type runConfig struct {
	balls    int
	ticks    uint64
	tickRate int
	port     string
	pretty   bool
}

func main() {
	var cfg runConfig
	root := &cobra.Command{
		Use:          "bounce",
		Short:        "Simulate bouncing balls and serve world diagnostics over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}
	root.Flags().IntVar(&cfg.balls, "balls", 64, "number of balls to keep alive")
	root.Flags().Uint64Var(&cfg.ticks, "ticks", 0, "stop after this many ticks, 0 to run until interrupted")
	root.Flags().IntVar(&cfg.tickRate, "tick-rate", 20, "ticks per second")
	root.Flags().StringVar(&cfg.port, "port", "4040", "diagnostics server port")
	root.Flags().BoolVar(&cfg.pretty, "pretty", false, "console-formatted logs instead of JSON")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("bounce exited with an error")
	}
}

func run(ctx context.Context, cfg runConfig) error {
	opts := []lazyecs.WorldOption{lazyecs.WithNamespace("bounce")}
	if cfg.pretty {
		opts = append(opts, lazyecs.WithPrettyLog())
	}
	world, err := lazyecs.NewWorld(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := world.Shutdown(); err != nil {
			world.Logger().Warn().Err(err).Msg("world shutdown failed")
		}
	}()

	lazyecs.MustRegisterComponent[Position](world)
	lazyecs.MustRegisterComponent[Velocity](world)
	lazyecs.MustRegisterComponent[Lifetime](world)

	lazyecs.SetResource(world, cfg)
	lazyecs.SetResource(world, Bounds{Width: 100, Height: 60})
	lazyecs.SetResource(world, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))

	sched := lazyecs.NewScheduler()
	sched.MustAddFunc(lazyecs.PreUpdate, spawnBalls)
	sched.MustAddFunc(lazyecs.UpdatePhase, moveBalls)
	sched.MustAddFunc(lazyecs.UpdatePhase, bounceOffWalls, lazyecs.WithPriority(10))
	sched.MustAddFunc(lazyecs.PostUpdate, expireBalls)
	sched.MustAddFunc(lazyecs.PostUpdate, reportPopulation, lazyecs.WithPriority(10))

	srv, err := server.New(world, server.WithPort(cfg.port), server.WithScheduler(sched))
	if err != nil {
		return err
	}
	go func() {
		if err := srv.Serve(ctx); err != nil {
			world.Logger().Error().Err(err).Msg("diagnostics server stopped")
		}
	}()

	period := time.Second / time.Duration(cfg.tickRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	dt := period.Seconds()

	for cfg.ticks == 0 || sched.Tick() < cfg.ticks {
		select {
		case <-ctx.Done():
			world.Logger().Info().Uint64("tick", sched.Tick()).Msg("interrupted, shutting down")
			return nil
		case <-ticker.C:
			if err := sched.Run(world, dt); err != nil {
				return err
			}
		}
	}
	world.Logger().Info().Uint64("tick", sched.Tick()).Msg("simulation complete")
	return nil
}

// spawnBalls tops the population back up to the configured target, giving
// each new ball a random position, heading, and lifetime.
func spawnBalls(w *lazyecs.World, _ float64) error {
	cfg, err := lazyecs.GetResource[runConfig](w)
	if err != nil {
		return err
	}
	bounds, err := lazyecs.GetResource[Bounds](w)
	if err != nil {
		return err
	}
	rng, err := lazyecs.GetResource[*rand.Rand](w)
	if err != nil {
		return err
	}

	for alive := len(w.QueryEntities(Position{}, Velocity{})); alive < cfg.balls; alive++ {
		_, err := w.Spawn(
			Position{X: rng.Float64() * bounds.Width, Y: rng.Float64() * bounds.Height},
			Velocity{DX: rng.Float64()*20 - 10, DY: rng.Float64()*20 - 10},
			Lifetime{Remaining: 5 + rng.Float64()*25},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func moveBalls(w *lazyecs.World, dt float64) error {
	return lazyecs.Each2(w, func(_ types.EntityID, pos *Position, vel *Velocity) bool {
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
		return true
	})
}

// bounceOffWalls reflects any ball that crossed a wall back into the box.
// Writes through the query pointers are in-place, so mutating mid-walk is
// fine; only structural changes would invalidate the iteration.
func bounceOffWalls(w *lazyecs.World, _ float64) error {
	bounds, err := lazyecs.GetResource[Bounds](w)
	if err != nil {
		return err
	}
	return lazyecs.Each2(w, func(_ types.EntityID, pos *Position, vel *Velocity) bool {
		if pos.X < 0 {
			pos.X, vel.DX = -pos.X, -vel.DX
		} else if pos.X > bounds.Width {
			pos.X, vel.DX = 2*bounds.Width-pos.X, -vel.DX
		}
		if pos.Y < 0 {
			pos.Y, vel.DY = -pos.Y, -vel.DY
		} else if pos.Y > bounds.Height {
			pos.Y, vel.DY = 2*bounds.Height-pos.Y, -vel.DY
		}
		return true
	})
}

// expireBalls ages every ball and destroys the ones whose lifetime ran out.
// Destroying mid-iteration would invalidate the walk, so it collects first
// and destroys after.
func expireBalls(w *lazyecs.World, dt float64) error {
	var expired []types.EntityID
	err := lazyecs.Each(w, func(id types.EntityID, life *Lifetime) bool {
		life.Remaining -= dt
		if life.Remaining <= 0 {
			expired = append(expired, id)
		}
		return true
	})
	if err != nil {
		return err
	}
	for _, id := range expired {
		w.Destroy(id)
	}
	return nil
}

func reportPopulation(w *lazyecs.World, _ float64) error {
	stats := w.Stats()
	statsd.EmitEntityCount(stats.Entities)
	ecslog.SystemLogger(w.Logger(), "reportPopulation").Debug().
		Int("entities", stats.Entities).
		Msg("population")
	return nil
}
