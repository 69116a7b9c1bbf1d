package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simforge/simforge/internal/core/collision"
	"github.com/simforge/simforge/internal/core/events/bus"
	"github.com/simforge/simforge/internal/core/geom"
	"github.com/simforge/simforge/internal/core/observability/log"
	"github.com/simforge/simforge/internal/core/world"
	"github.com/simforge/simforge/internal/injector"
	"github.com/simforge/simforge/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to simulation YAML config")
	flag.Parse()

	app, err := injector.ProvideApp(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, app); err != nil {
		app.Log.Error("simulation stopped", log.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, app *injector.App) error {
	buildScene(app.World)

	logCollisions(app.World, app.Log)

	// The tick loop and the debug server read the world under one lock;
	// a tick is fast, viewer snapshots are occasional.
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	if app.Config.Server.Enabled {
		srv := server.New(app.Config.Server, func(f *server.Frame) world.Stats {
			mu.Lock()
			defer mu.Unlock()
			app.World.Render(f)
			return app.World.Stats()
		}, app.Log)
		g.Go(func() error { return srv.Run(ctx) })
	}

	g.Go(func() error {
		interval := time.Second / time.Duration(app.Config.World.TickRate)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		statsEvery := time.NewTicker(10 * time.Second)
		defer statsEvery.Stop()

		last := time.Now()
		elapsed := 0.0
		for {
			select {
			case now := <-ticker.C:
				dt := now.Sub(last).Seconds()
				last = now
				elapsed += dt
				mu.Lock()
				steerPlayer(app.World, elapsed)
				app.World.Update(dt)
				mu.Unlock()
			case <-statsEvery.C:
				mu.Lock()
				stats := app.World.Stats()
				mu.Unlock()
				app.Log.Info("world stats",
					log.Int("entities", stats.Entities),
					log.Int("active", stats.Active),
					log.Uint64("ticks", stats.Ticks),
					log.Int("contacts", stats.Collision.Contacts))
			case <-ctx.Done():
				app.Log.Info("shutting down")
				return nil
			}
		}
	})

	return g.Wait()
}

// steerPlayer drives the player around a slow loop so the behavior
// variants have a moving reference to react to.
func steerPlayer(m *world.Manager, elapsed float64) {
	const period = 12.0
	angle := 2 * math.Pi * elapsed / period
	m.SetPlayerIntent(geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)})
}

// buildScene populates a demo arena: a walled field with the player, a
// friendly escort, patrolling guards, aggressive and passive creatures,
// and scattered item markers.
func buildScene(m *world.Manager) {
	m.CreatePlayer(world.Spawn{
		Name:     "player",
		Position: geom.Vec2{X: 400, Y: 300},
	})

	m.CreateNPC(world.Spawn{
		Name:     "escort",
		Position: geom.Vec2{X: 320, Y: 260},
		Behavior: "friendly",
	})
	m.CreateNPC(world.Spawn{
		Name:     "guard-a",
		Position: geom.Vec2{X: 120, Y: 120},
		Behavior: "patrol",
		Waypoints: []geom.Vec2{
			{X: 120, Y: 120},
			{X: 680, Y: 120},
			{X: 680, Y: 480},
			{X: 120, Y: 480},
		},
	})
	m.CreateNPC(world.Spawn{
		Name:     "wanderer",
		Position: geom.Vec2{X: 500, Y: 420},
		Behavior: "wander",
	})

	m.CreateCreature(world.Spawn{
		Name:     "stalker",
		Position: geom.Vec2{X: 650, Y: 200},
		Behavior: "aggressive",
		Color:    "#e64545",
	})
	m.CreateCreature(world.Spawn{
		Name:       "rabbit",
		Position:   geom.Vec2{X: 200, Y: 400},
		Behavior:   "passive",
		AggroRange: 120,
		Color:      "#9be29b",
	})

	// Arena walls.
	const w, h, t = 800.0, 600.0, 20.0
	m.CreateTerrain(world.Spawn{Name: "wall-n", Position: geom.Vec2{X: w / 2, Y: t / 2}}, w, t)
	m.CreateTerrain(world.Spawn{Name: "wall-s", Position: geom.Vec2{X: w / 2, Y: h - t/2}}, w, t)
	m.CreateTerrain(world.Spawn{Name: "wall-w", Position: geom.Vec2{X: t / 2, Y: h / 2}}, t, h-2*t)
	m.CreateTerrain(world.Spawn{Name: "wall-e", Position: geom.Vec2{X: w - t/2, Y: h / 2}}, t, h-2*t)
	m.CreateTerrain(world.Spawn{Name: "pillar", Position: geom.Vec2{X: w / 2, Y: h / 2}}, 60, 60)
}

// logCollisions surfaces contact begin events at debug level.
func logCollisions(m *world.Manager, l log.Log) {
	_, err := m.Events().Subscribe(collision.EventEnter, func(ev bus.Event) error {
		if c, ok := ev.Data().(collision.ContactEvent); ok {
			l.Debug("contact",
				log.Uint64("a", uint64(c.A)),
				log.Uint64("b", uint64(c.B)))
		}
		return nil
	})
	if err != nil {
		l.Warn("collision subscription failed", log.Error(err))
	}
}
