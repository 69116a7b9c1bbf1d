package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulation is the root configuration for the simulation core and its
// debug surfaces.
type Simulation struct {
	World     WorldConfig     `json:"world" yaml:"world"`
	Collision CollisionConfig `json:"collision" yaml:"collision"`
	Debug     DebugConfig     `json:"debug" yaml:"debug"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`
}

// WorldConfig tunes the tick loop.
type WorldConfig struct {
	// MaxDelta clamps per-frame delta time, preventing large-step
	// tunneling after a stalled frame.
	MaxDelta float64 `json:"max_delta" yaml:"max_delta"`
	// TickRate is the target simulation frequency for the runner.
	TickRate int `json:"tick_rate" yaml:"tick_rate"`
}

// CollisionConfig tunes the collision system.
type CollisionConfig struct {
	CellSize        float64  `json:"cell_size" yaml:"cell_size"`
	Restitution     float64  `json:"restitution" yaml:"restitution"`
	SameLayerExempt []string `json:"same_layer_exempt" yaml:"same_layer_exempt"`
}

// DebugConfig holds the overlay toggles.
type DebugConfig struct {
	ShowColliders bool `json:"show_colliders" yaml:"show_colliders"`
	ShowStats     bool `json:"show_stats" yaml:"show_stats"`
}

// ServerConfig binds the debug viewer.
type ServerConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
}

// Default returns a configuration suitable for tens to low hundreds of
// entities.
func Default() *Simulation {
	return &Simulation{
		World: WorldConfig{
			MaxDelta: 0.1,
			TickRate: 60,
		},
		Collision: CollisionConfig{
			CellSize:        100,
			Restitution:     0.8,
			SameLayerExempt: []string{"player"},
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. An empty path yields the
// defaults unchanged.
func Load(path string) (*Simulation, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the core cannot run with.
func (c *Simulation) Validate() error {
	if c.World.MaxDelta <= 0 {
		return fmt.Errorf("world.max_delta must be positive, got %v", c.World.MaxDelta)
	}
	if c.World.TickRate < 1 || c.World.TickRate > 1000 {
		return fmt.Errorf("world.tick_rate must be between 1 and 1000, got %d", c.World.TickRate)
	}
	if c.Collision.CellSize <= 0 {
		return fmt.Errorf("collision.cell_size must be positive, got %v", c.Collision.CellSize)
	}
	if c.Collision.Restitution < 0 || c.Collision.Restitution > 1 {
		return fmt.Errorf("collision.restitution must be in [0,1], got %v", c.Collision.Restitution)
	}
	if c.Server.Enabled && (c.Server.Port < 1 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port must be a valid port, got %d", c.Server.Port)
	}
	return nil
}
