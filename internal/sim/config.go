package sim

import (
	"fmt"

	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/resource"
)

// buildingEntry binds one tile definition name to the config record used
// to instantiate a building on that tile.
type buildingEntry struct {
	kind       BuildingKind
	producer   *ProducerConfig
	storage    *StorageConfig
	service    *ServiceConfig
	houseLevel HouseLevel
}

// BuildingConfigs is the building catalog: the per-kind config records,
// keyed by the tile definition name a placed building carries.
type BuildingConfigs struct {
	entries     map[grid.StringHash]*buildingEntry
	house       *HouseConfig
	houseLevels [HouseLevelCount]*HouseLevelConfig
}

func NewBuildingConfigs() *BuildingConfigs {
	return &BuildingConfigs{entries: make(map[grid.StringHash]*buildingEntry)}
}

func (c *BuildingConfigs) AddProducer(kind BuildingKind, cfg *ProducerConfig) {
	cfg.TileDefNameHash = grid.HashString(cfg.TileDefName)
	c.entries[cfg.TileDefNameHash] = &buildingEntry{kind: kind, producer: cfg}
}

func (c *BuildingConfigs) AddStorage(kind BuildingKind, cfg *StorageConfig) {
	cfg.TileDefNameHash = grid.HashString(cfg.TileDefName)
	c.entries[cfg.TileDefNameHash] = &buildingEntry{kind: kind, storage: cfg}
}

func (c *BuildingConfigs) AddService(kind BuildingKind, cfg *ServiceConfig) {
	cfg.TileDefNameHash = grid.HashString(cfg.TileDefName)
	c.entries[cfg.TileDefNameHash] = &buildingEntry{kind: kind, service: cfg}
}

// SetHouse registers the shared house config and the per-level records.
// Every level's tile definition instantiates a house starting at that
// level.
func (c *BuildingConfigs) SetHouse(cfg *HouseConfig, levels [HouseLevelCount]*HouseLevelConfig) {
	c.house = cfg
	c.houseLevels = levels
	for i, level := range levels {
		level.TileDefNameHash = grid.HashString(level.TileDefName)
		c.entries[level.TileDefNameHash] = &buildingEntry{kind: BuildingHouse, houseLevel: HouseLevel(i)}
	}
}

func (c *BuildingConfigs) House() *HouseConfig { return c.house }

func (c *BuildingConfigs) HouseLevel(level HouseLevel) *HouseLevelConfig {
	if level < 0 || level >= HouseLevelCount {
		panic(fmt.Sprintf("house level %d out of range", level))
	}
	return c.houseLevels[level]
}

// KindForTile returns the building kind the tile definition name maps to.
func (c *BuildingConfigs) KindForTile(hash grid.StringHash) (BuildingKind, bool) {
	e, ok := c.entries[hash]
	if !ok {
		return 0, false
	}
	return e.kind, true
}

// FindStorageConfig returns the storage config for a single storage kind.
func (c *BuildingConfigs) FindStorageConfig(kind BuildingKind) *StorageConfig {
	for _, e := range c.entries {
		if e.storage != nil && e.kind == kind {
			return e.storage
		}
	}
	return nil
}

// FindProducerConfig returns the producer config registered under a tile
// definition name.
func (c *BuildingConfigs) FindProducerConfig(tileDefName string) *ProducerConfig {
	e, ok := c.entries[grid.HashString(tileDefName)]
	if !ok || e.producer == nil {
		return nil
	}
	return e.producer
}

// FindServiceConfig returns the service config for a single service kind.
func (c *BuildingConfigs) FindServiceConfig(kind BuildingKind) *ServiceConfig {
	for _, e := range c.entries {
		if e.service != nil && e.kind == kind {
			return e.service
		}
	}
	return nil
}

// Instantiate builds the behavior matching the tile's definition name and
// wraps it in a Building covering the tile's footprint.
func (c *BuildingConfigs) Instantiate(tile *grid.Tile) (*Building, error) {
	e, ok := c.entries[tile.NameHash()]
	if !ok {
		return nil, fmt.Errorf("no building config for tile '%s'", tile.Name())
	}

	var behavior BuildingBehavior
	switch {
	case e.producer != nil:
		behavior = NewProducerBuilding(e.producer)
	case e.storage != nil:
		behavior = NewStorageBuilding(e.storage)
	case e.service != nil:
		behavior = NewServiceBuilding(e.service)
	case e.kind == BuildingHouse:
		if c.house == nil {
			return nil, fmt.Errorf("house config not registered for tile '%s'", tile.Name())
		}
		behavior = NewHouseBuilding(e.houseLevel, c)
	default:
		return nil, fmt.Errorf("building config for tile '%s' has no behavior", tile.Name())
	}
	return NewBuilding(e.kind, tile.CellRange(), behavior), nil
}

// UnitConfigs is the unit catalog, keyed by tile definition name.
type UnitConfigs struct {
	entries map[grid.StringHash]*UnitConfig
}

func NewUnitConfigs() *UnitConfigs {
	return &UnitConfigs{entries: make(map[grid.StringHash]*UnitConfig)}
}

func (c *UnitConfigs) Add(cfg *UnitConfig) {
	cfg.TileDefNameHash = grid.HashString(cfg.TileDefName)
	c.entries[cfg.TileDefNameHash] = cfg
}

func (c *UnitConfigs) FindByName(tileDefName string) *UnitConfig {
	return c.entries[grid.HashString(tileDefName)]
}

func (c *UnitConfigs) FindByHash(hash grid.StringHash) *UnitConfig {
	return c.entries[hash]
}

func (c *UnitConfigs) Count() int { return len(c.entries) }

// DefaultBuildingConfigs returns the built-in building catalog, used when
// no data files override it.
func DefaultBuildingConfigs() *BuildingConfigs {
	c := NewBuildingConfigs()

	c.AddProducer(BuildingFarm, &ProducerConfig{
		Name:                          "Rice farm",
		TileDefName:                   "rice_farm",
		MinWorkers:                    1,
		MaxWorkers:                    4,
		ProductionOutputFrequencySecs: 10,
		ProductionOutput:              resource.Rice,
		ProductionCapacity:            5,
		ResourcesRequired:             resource.NoKinds(),
		StorageBuildingsAccepted:      BuildingGranary | BuildingStorageYard,
		CourierUnit:                   "porter",
	})
	c.AddProducer(BuildingFarm, &ProducerConfig{
		Name:                          "Livestock farm",
		TileDefName:                   "livestock_farm",
		MinWorkers:                    1,
		MaxWorkers:                    4,
		ProductionOutputFrequencySecs: 12,
		ProductionOutput:              resource.Meat,
		ProductionCapacity:            5,
		ResourcesRequired:             resource.NoKinds(),
		StorageBuildingsAccepted:      BuildingGranary | BuildingStorageYard,
		CourierUnit:                   "porter",
	})

	c.AddStorage(BuildingGranary, &StorageConfig{
		Name:              "Granary",
		TileDefName:       "granary",
		MinWorkers:        1,
		MaxWorkers:        4,
		ResourcesAccepted: resource.KindsOf(resource.Foods()),
		NumSlots:          8,
		SlotCapacity:      4,
	})
	c.AddStorage(BuildingStorageYard, &StorageConfig{
		Name:              "Storage yard",
		TileDefName:       "storage_yard",
		MinWorkers:        1,
		MaxWorkers:        2,
		ResourcesAccepted: resource.KindsOf(resource.AllKinds()),
		NumSlots:          8,
		SlotCapacity:      4,
	})

	c.AddService(BuildingWellSmall, &ServiceConfig{
		Name:         "Well (small)",
		TileDefName:  "well_small",
		MinWorkers:   0,
		MaxWorkers:   0,
		EffectRadius: 3,
	})
	c.AddService(BuildingWellBig, &ServiceConfig{
		Name:         "Well (big)",
		TileDefName:  "well_big",
		MinWorkers:   1,
		MaxWorkers:   2,
		EffectRadius: 6,
	})
	c.AddService(BuildingMarket, &ServiceConfig{
		Name:                     "Market",
		TileDefName:              "market",
		MinWorkers:               1,
		MaxWorkers:               4,
		StockUpdateFrequencySecs: 8,
		EffectRadius:             5,
		ResourcesRequired:        resource.KindsOf(resource.Foods()),
	})

	c.SetHouse(
		&HouseConfig{
			StockUpdateFrequencySecs:   6,
			UpgradeUpdateFrequencySecs: 10,
		},
		[HouseLevelCount]*HouseLevelConfig{
			{
				Name:              "Hut",
				TileDefName:       "house_0",
				MaxResidents:      2,
				TaxGenerated:      0,
				ServicesRequired:  NoBuildingKinds(),
				ResourcesRequired: resource.NoKinds(),
			},
			{
				Name:              "Cottage",
				TileDefName:       "house_1",
				MaxResidents:      4,
				TaxGenerated:      1,
				ServicesRequired:  NewBuildingKinds(BuildingWellSmall | BuildingWellBig),
				ResourcesRequired: resource.NewKinds(resource.Foods()),
			},
			{
				Name:              "House",
				TileDefName:       "house_2",
				MaxResidents:      8,
				TaxGenerated:      2,
				ServicesRequired:  NewBuildingKinds(BuildingWellSmall|BuildingWellBig, BuildingMarket),
				ResourcesRequired: resource.NewKinds(resource.Rice, resource.Meat|resource.Fish),
			},
		},
	)

	return c
}

// DefaultUnitConfigs returns the built-in unit catalog.
func DefaultUnitConfigs() *UnitConfigs {
	c := NewUnitConfigs()
	c.Add(&UnitConfig{
		Name:        "Porter",
		TileDefName: "porter",
		MaxCarry:    5,
	})
	return c
}
