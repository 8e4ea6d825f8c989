package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridville/sim/internal/sim"
)

// UnitEntry holds static data for one unit type loaded from YAML.
type UnitEntry struct {
	Name     string `yaml:"name"`
	Tile     string `yaml:"tile"`
	MaxCarry int    `yaml:"max_carry"`
}

type unitListFile struct {
	Units []UnitEntry `yaml:"units"`
}

// LoadUnitConfigs loads the unit catalog from a YAML file.
func LoadUnitConfigs(path string) (*sim.UnitConfigs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit_list: %w", err)
	}
	var f unitListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse unit_list: %w", err)
	}

	configs := sim.NewUnitConfigs()
	for _, u := range f.Units {
		configs.Add(&sim.UnitConfig{
			Name:        u.Name,
			TileDefName: u.Tile,
			MaxCarry:    u.MaxCarry,
		})
	}
	return configs, nil
}
