package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game       GameConfig       `toml:"game"`
	Map        MapConfig        `toml:"map"`
	Simulation SimulationConfig `toml:"simulation"`
	Data       DataConfig       `toml:"data"`
	Logging    LoggingConfig    `toml:"logging"`
}

type GameConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type MapConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type SimulationConfig struct {
	TickRate            time.Duration `toml:"tick_rate"`
	UpdateFrequencySecs float64       `toml:"update_frequency_secs"`
	RandomSeed          int64         `toml:"random_seed"`
}

type DataConfig struct {
	TilesPath     string `toml:"tiles_path"`
	BuildingsPath string `toml:"buildings_path"`
	UnitsPath     string `toml:"units_path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Game.StartTime = time.Now().Unix()
	return cfg, nil
}

// Defaults returns the built-in configuration used when no config file is
// given.
func Defaults() *Config {
	cfg := defaults()
	cfg.Game.StartTime = time.Now().Unix()
	return cfg
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Name: "Gridville",
		},
		Map: MapConfig{
			Width:  64,
			Height: 64,
		},
		Simulation: SimulationConfig{
			TickRate:            50 * time.Millisecond,
			UpdateFrequencySecs: 0.5,
			RandomSeed:          1,
		},
		Data: DataConfig{
			TilesPath:     "data/tiles.yaml",
			BuildingsPath: "data/buildings.yaml",
			UnitsPath:     "data/units.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
