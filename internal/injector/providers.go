package injector

import (
	"github.com/simforge/simforge/internal/core/config"
	"github.com/simforge/simforge/internal/core/observability/log"
	"github.com/simforge/simforge/internal/core/world"
)

// App bundles the wired simulation dependencies for the runner.
type App struct {
	Config *config.Simulation
	Log    log.Log
	World  *world.Manager
}

func provideLogger(cfg *config.Simulation) log.Log {
	return log.New(log.ParseLevel(cfg.LogLevel))
}
