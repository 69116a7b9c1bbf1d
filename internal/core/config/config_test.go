package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 60, cfg.World.TickRate)
	require.Equal(t, 0.1, cfg.World.MaxDelta)
	require.Equal(t, 100.0, cfg.Collision.CellSize)
	require.Equal(t, 0.8, cfg.Collision.Restitution)
	require.Contains(t, cfg.Collision.SameLayerExempt, "player")
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	t.Run("empty path keeps defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
world:
  tick_rate: 30
collision:
  restitution: 0.5
server:
  enabled: true
  port: 9090
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, 30, cfg.World.TickRate)
		require.Equal(t, 0.5, cfg.Collision.Restitution)
		require.True(t, cfg.Server.Enabled)
		require.Equal(t, 9090, cfg.Server.Port)

		// Untouched keys keep their defaults.
		require.Equal(t, 0.1, cfg.World.MaxDelta)
		require.Equal(t, 100.0, cfg.Collision.CellSize)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		_, err := Load(writeConfig(t, "world: ["))
		require.Error(t, err)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "world:\n  tick_rate: 0\n"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Simulation)
	}{
		{"zero max delta", func(c *Simulation) { c.World.MaxDelta = 0 }},
		{"negative cell size", func(c *Simulation) { c.Collision.CellSize = -1 }},
		{"restitution above one", func(c *Simulation) { c.Collision.Restitution = 1.5 }},
		{"tick rate too high", func(c *Simulation) { c.World.TickRate = 10000 }},
		{"bad server port", func(c *Simulation) {
			c.Server.Enabled = true
			c.Server.Port = 0
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
