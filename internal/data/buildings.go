package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridville/sim/internal/resource"
	"github.com/gridville/sim/internal/sim"
)

// ProducerEntry holds static data for one producer building type.
type ProducerEntry struct {
	Name            string   `yaml:"name"`
	Tile            string   `yaml:"tile"`
	Kind            string   `yaml:"kind"`
	MinWorkers      int      `yaml:"min_workers"`
	MaxWorkers      int      `yaml:"max_workers"`
	OutputFrequency float64  `yaml:"output_frequency_secs"`
	Output          string   `yaml:"output"`
	OutputCapacity  int      `yaml:"output_capacity"`
	ShipsTo         []string `yaml:"ships_to"`
	Courier         string   `yaml:"courier"`
}

// StorageEntry holds static data for one storage building type.
type StorageEntry struct {
	Name         string   `yaml:"name"`
	Tile         string   `yaml:"tile"`
	Kind         string   `yaml:"kind"`
	MinWorkers   int      `yaml:"min_workers"`
	MaxWorkers   int      `yaml:"max_workers"`
	Accepts      []string `yaml:"accepts"`
	NumSlots     int      `yaml:"num_slots"`
	SlotCapacity int      `yaml:"slot_capacity"`
}

// ServiceEntry holds static data for one service building type.
type ServiceEntry struct {
	Name           string   `yaml:"name"`
	Tile           string   `yaml:"tile"`
	Kind           string   `yaml:"kind"`
	MinWorkers     int      `yaml:"min_workers"`
	MaxWorkers     int      `yaml:"max_workers"`
	StockFrequency float64  `yaml:"stock_frequency_secs"`
	EffectRadius   int      `yaml:"effect_radius"`
	Stocks         []string `yaml:"stocks"`
}

// HouseLevelEntry holds static data for one house upgrade level.
type HouseLevelEntry struct {
	Name              string   `yaml:"name"`
	Tile              string   `yaml:"tile"`
	MaxResidents      int      `yaml:"max_residents"`
	Tax               int      `yaml:"tax"`
	ServicesRequired  []string `yaml:"services_required"`
	ResourcesRequired []string `yaml:"resources_required"`
}

// HouseEntry holds the house config shared by every level.
type HouseEntry struct {
	StockFrequency   float64           `yaml:"stock_frequency_secs"`
	UpgradeFrequency float64           `yaml:"upgrade_frequency_secs"`
	Levels           []HouseLevelEntry `yaml:"levels"`
}

type buildingListFile struct {
	Producers []ProducerEntry `yaml:"producers"`
	Storages  []StorageEntry  `yaml:"storages"`
	Services  []ServiceEntry  `yaml:"services"`
	House     *HouseEntry     `yaml:"house"`
}

// LoadBuildingConfigs loads the building catalog from a YAML file.
func LoadBuildingConfigs(path string) (*sim.BuildingConfigs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read building_list: %w", err)
	}
	var f buildingListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse building_list: %w", err)
	}

	configs := sim.NewBuildingConfigs()

	for _, p := range f.Producers {
		kind, err := parseBuildingKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse building_list: producer %q: %w", p.Name, err)
		}
		output, err := parseResourceMask(p.Output)
		if err != nil {
			return nil, fmt.Errorf("parse building_list: producer %q: %w", p.Name, err)
		}
		shipsTo, err := parseBuildingMask(p.ShipsTo)
		if err != nil {
			return nil, fmt.Errorf("parse building_list: producer %q: %w", p.Name, err)
		}
		configs.AddProducer(kind, &sim.ProducerConfig{
			Name:                          p.Name,
			TileDefName:                   p.Tile,
			MinWorkers:                    p.MinWorkers,
			MaxWorkers:                    p.MaxWorkers,
			ProductionOutputFrequencySecs: p.OutputFrequency,
			ProductionOutput:              output,
			ProductionCapacity:            p.OutputCapacity,
			ResourcesRequired:             resource.NoKinds(),
			StorageBuildingsAccepted:      shipsTo,
			CourierUnit:                   p.Courier,
		})
	}

	for _, s := range f.Storages {
		kind, err := parseBuildingKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse building_list: storage %q: %w", s.Name, err)
		}
		accepts, err := parseResourceKinds(s.Accepts)
		if err != nil {
			return nil, fmt.Errorf("parse building_list: storage %q: %w", s.Name, err)
		}
		configs.AddStorage(kind, &sim.StorageConfig{
			Name:              s.Name,
			TileDefName:       s.Tile,
			MinWorkers:        s.MinWorkers,
			MaxWorkers:        s.MaxWorkers,
			ResourcesAccepted: accepts,
			NumSlots:          s.NumSlots,
			SlotCapacity:      s.SlotCapacity,
		})
	}

	for _, s := range f.Services {
		kind, err := parseBuildingKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse building_list: service %q: %w", s.Name, err)
		}
		stocks, err := parseResourceKinds(s.Stocks)
		if err != nil {
			return nil, fmt.Errorf("parse building_list: service %q: %w", s.Name, err)
		}
		configs.AddService(kind, &sim.ServiceConfig{
			Name:                     s.Name,
			TileDefName:              s.Tile,
			MinWorkers:               s.MinWorkers,
			MaxWorkers:               s.MaxWorkers,
			StockUpdateFrequencySecs: s.StockFrequency,
			EffectRadius:             s.EffectRadius,
			ResourcesRequired:        stocks,
		})
	}

	if f.House != nil {
		if len(f.House.Levels) != int(sim.HouseLevelCount) {
			return nil, fmt.Errorf("parse building_list: house needs %d levels, got %d",
				sim.HouseLevelCount, len(f.House.Levels))
		}
		var levels [sim.HouseLevelCount]*sim.HouseLevelConfig
		for i, l := range f.House.Levels {
			services, err := parseBuildingEntries(l.ServicesRequired)
			if err != nil {
				return nil, fmt.Errorf("parse building_list: house level %q: %w", l.Name, err)
			}
			resources, err := parseResourceEntries(l.ResourcesRequired)
			if err != nil {
				return nil, fmt.Errorf("parse building_list: house level %q: %w", l.Name, err)
			}
			levels[i] = &sim.HouseLevelConfig{
				Name:              l.Name,
				TileDefName:       l.Tile,
				MaxResidents:      l.MaxResidents,
				TaxGenerated:      l.Tax,
				ServicesRequired:  services,
				ResourcesRequired: resources,
			}
		}
		configs.SetHouse(&sim.HouseConfig{
			StockUpdateFrequencySecs:   f.House.StockFrequency,
			UpgradeUpdateFrequencySecs: f.House.UpgradeFrequency,
		}, levels)
	}

	return configs, nil
}

// parseBuildingKind resolves a single building kind name.
func parseBuildingKind(name string) (sim.BuildingKind, error) {
	k := sim.BuildingKindFromName(name)
	if k == 0 {
		return 0, fmt.Errorf("unknown building kind %q", name)
	}
	return k, nil
}

// parseBuildingMask ORs a list of building kind names into one mask.
func parseBuildingMask(names []string) (sim.BuildingKind, error) {
	var mask sim.BuildingKind
	for _, name := range names {
		k, err := parseBuildingKind(name)
		if err != nil {
			return 0, err
		}
		mask |= k
	}
	return mask, nil
}

// parseBuildingEntries parses requirement entries; each entry may be a
// pipe-separated "any of" list, e.g. "well_small|well_big".
func parseBuildingEntries(entries []string) (sim.BuildingKinds, error) {
	var parsed []sim.BuildingKind
	for _, entry := range entries {
		mask, err := parseBuildingMask(strings.Split(entry, "|"))
		if err != nil {
			return sim.NoBuildingKinds(), err
		}
		parsed = append(parsed, mask)
	}
	return sim.NewBuildingKinds(parsed...), nil
}

// parseResourceMask parses a pipe-separated resource name list into a mask.
func parseResourceMask(s string) (resource.Kind, error) {
	var mask resource.Kind
	for _, name := range strings.Split(s, "|") {
		k := resource.KindFromName(name)
		if k == resource.KindNone {
			return 0, fmt.Errorf("unknown resource kind %q", name)
		}
		mask |= k
	}
	return mask, nil
}

// parseResourceKinds parses single-kind names into an accepted-kinds list.
func parseResourceKinds(names []string) (resource.Kinds, error) {
	var mask resource.Kind
	for _, name := range names {
		k, err := parseResourceMask(name)
		if err != nil {
			return resource.NoKinds(), err
		}
		mask |= k
	}
	return resource.KindsOf(mask), nil
}

// parseResourceEntries parses requirement entries; each entry may be a
// pipe-separated "any of" list, e.g. "meat|fish".
func parseResourceEntries(entries []string) (resource.Kinds, error) {
	var parsed []resource.Kind
	for _, entry := range entries {
		mask, err := parseResourceMask(entry)
		if err != nil {
			return resource.NoKinds(), err
		}
		parsed = append(parsed, mask)
	}
	return resource.NewKinds(parsed...), nil
}
