package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridville/sim/internal/grid"
)

// TileEntry holds static data for one tile definition loaded from YAML.
type TileEntry struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Kind     string `yaml:"kind"` // terrain, building, unit
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
}

type tileListFile struct {
	Tiles []TileEntry `yaml:"tiles"`
}

// LoadTileSets loads the tile-set catalog from a YAML file.
func LoadTileSets(path string) (*grid.TileSets, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tile_list: %w", err)
	}
	var f tileListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tile_list: %w", err)
	}

	defs := make([]grid.TileDef, 0, len(f.Tiles))
	for _, t := range f.Tiles {
		kind, err := tileKindFromName(t.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse tile_list: tile %q: %w", t.Name, err)
		}
		defs = append(defs, grid.TileDef{
			Name:     t.Name,
			Category: t.Category,
			Kind:     kind,
			Width:    t.Width,
			Height:   t.Height,
		})
	}
	return grid.NewTileSets(defs), nil
}

func tileKindFromName(name string) (grid.TileKind, error) {
	switch name {
	case "terrain":
		return grid.TileTerrain, nil
	case "building":
		return grid.TileBuilding, nil
	case "unit":
		return grid.TileUnit, nil
	}
	return 0, fmt.Errorf("unknown tile kind %q", name)
}
