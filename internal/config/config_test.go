package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[game]
name = "Testville"

[map]
width = 128
height = 96

[simulation]
tick_rate = "25ms"
update_frequency_secs = 0.25
random_seed = 42

[logging]
level = "debug"
format = "json"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Testville", cfg.Game.Name)
	assert.NotZero(t, cfg.Game.StartTime)
	assert.Equal(t, 128, cfg.Map.Width)
	assert.Equal(t, 96, cfg.Map.Height)
	assert.Equal(t, 25*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, 0.25, cfg.Simulation.UpdateFrequencySecs)
	assert.Equal(t, int64(42), cfg.Simulation.RandomSeed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Sections omitted from the file keep their defaults.
	assert.Equal(t, "data/tiles.yaml", cfg.Data.TilesPath)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[map]
width = 32
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Map.Width)
	assert.Equal(t, 64, cfg.Map.Height)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, 0.5, cfg.Simulation.UpdateFrequencySecs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[map\nwidth="), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "Gridville", cfg.Game.Name)
	assert.Equal(t, int64(1), cfg.Simulation.RandomSeed)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NotZero(t, cfg.Game.StartTime)
}
