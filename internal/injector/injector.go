//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/simforge/simforge/internal/core/config"
	"github.com/simforge/simforge/internal/core/world"
)

func ProvideApp(configPath string) (*App, error) {
	wire.Build(
		config.Load,
		provideLogger,
		world.NewManager,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
