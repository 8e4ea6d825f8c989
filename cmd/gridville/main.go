package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridville/sim/internal/config"
	"github.com/gridville/sim/internal/data"
	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config.toml"
	if p := os.Getenv("GRIDVILLE_CONFIG"); p != "" {
		cfgPath = p
	}
	var cfg *config.Config
	if _, err := os.Stat(cfgPath); err == nil {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", zap.String("game", cfg.Game.Name))

	// 3. Load catalogs
	sets, err := loadTileSets(cfg.Data.TilesPath)
	if err != nil {
		return fmt.Errorf("load tile sets: %w", err)
	}
	log.Info("tile sets loaded", zap.Int("defs", sets.Count()))

	buildingConfigs, err := loadBuildingConfigs(cfg.Data.BuildingsPath)
	if err != nil {
		return fmt.Errorf("load building configs: %w", err)
	}
	unitConfigs, err := loadUnitConfigs(cfg.Data.UnitsPath)
	if err != nil {
		return fmt.Errorf("load unit configs: %w", err)
	}
	log.Info("catalogs loaded", zap.Int("units", unitConfigs.Count()))

	// 4. Build map and world
	m := grid.NewTileMap(cfg.Map.Width, cfg.Map.Height)
	if err := fillTerrain(m, sets); err != nil {
		return fmt.Errorf("fill terrain: %w", err)
	}

	world := sim.NewWorld(log, buildingConfigs, unitConfigs)
	if err := buildStartingTown(m, sets, world); err != nil {
		return fmt.Errorf("build starting town: %w", err)
	}
	log.Info("world ready",
		zap.Int("width", m.Width()),
		zap.Int("height", m.Height()),
		zap.Int("buildings", world.BuildingCount()))

	simulation := sim.NewSimulation(log, cfg.Simulation.UpdateFrequencySecs, cfg.Simulation.RandomSeed)

	// 5. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	log.Info("game loop started",
		zap.Duration("tick", cfg.Simulation.TickRate),
		zap.Float64("step_secs", cfg.Simulation.UpdateFrequencySecs))

	last := time.Now()
	statusCounter := 0
	statusInterval := int(30 * time.Second / cfg.Simulation.TickRate)
	if statusInterval < 1 {
		statusInterval = 1
	}

	for {
		select {
		case now := <-ticker.C:
			simulation.Update(world, m, sets, now.Sub(last))
			last = now

			statusCounter++
			if statusCounter >= statusInterval {
				statusCounter = 0
				log.Info("status",
					zap.Uint64("steps", simulation.Steps()),
					zap.Int("buildings", world.BuildingCount()),
					zap.Int("units", world.UnitCount()))
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// loadTileSets reads the tile catalog, falling back to the built-in set
// when the file is absent.
func loadTileSets(path string) (*grid.TileSets, error) {
	if _, err := os.Stat(path); err != nil {
		return grid.NewTileSets(defaultTileDefs()), nil
	}
	return data.LoadTileSets(path)
}

func loadBuildingConfigs(path string) (*sim.BuildingConfigs, error) {
	if _, err := os.Stat(path); err != nil {
		return sim.DefaultBuildingConfigs(), nil
	}
	return data.LoadBuildingConfigs(path)
}

func loadUnitConfigs(path string) (*sim.UnitConfigs, error) {
	if _, err := os.Stat(path); err != nil {
		return sim.DefaultUnitConfigs(), nil
	}
	return data.LoadUnitConfigs(path)
}

// defaultTileDefs mirrors data/tiles.yaml for file-less runs.
func defaultTileDefs() []grid.TileDef {
	return []grid.TileDef{
		{Name: "grass", Category: grid.CategoryTerrain, Kind: grid.TileTerrain},
		{Name: "dirt", Category: grid.CategoryTerrain, Kind: grid.TileTerrain},

		{Name: "house_0", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "house_1", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "house_2", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "rice_farm", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "livestock_farm", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "granary", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "storage_yard", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "well_small", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "well_big", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "market", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},

		{Name: "porter", Category: grid.CategoryUnits, Kind: grid.TileUnit},
	}
}

// fillTerrain covers the whole map in grass.
func fillTerrain(m *grid.TileMap, sets *grid.TileSets) error {
	grass := sets.FindByName(grid.LayerTerrain, grid.CategoryTerrain, "grass")
	if grass == nil {
		return fmt.Errorf("tile set has no 'grass' terrain")
	}
	var placeErr error
	grid.CellRange{
		Start: grid.Cell{X: 0, Y: 0},
		End:   grid.Cell{X: m.Width() - 1, Y: m.Height() - 1},
	}.ForEach(func(c grid.Cell) bool {
		if _, err := m.TryPlaceTile(c, grass); err != nil {
			placeErr = err
			return false
		}
		return true
	})
	return placeErr
}

// buildStartingTown places a small working settlement: farms feeding a
// granary, a market shopping from it, and huts inside well coverage.
func buildStartingTown(m *grid.TileMap, sets *grid.TileSets, world *sim.World) error {
	town := []struct {
		name string
		cell grid.Cell
	}{
		{"rice_farm", grid.Cell{X: 4, Y: 4}},
		{"livestock_farm", grid.Cell{X: 4, Y: 10}},
		{"granary", grid.Cell{X: 10, Y: 7}},
		{"market", grid.Cell{X: 14, Y: 7}},
		{"well_small", grid.Cell{X: 17, Y: 5}},
		{"house_0", grid.Cell{X: 16, Y: 3}},
		{"house_0", grid.Cell{X: 18, Y: 3}},
		{"house_0", grid.Cell{X: 16, Y: 10}},
		{"house_0", grid.Cell{X: 18, Y: 10}},
	}
	for _, b := range town {
		def := sets.FindByName(grid.LayerObjects, grid.CategoryBuildings, b.name)
		if def == nil {
			return fmt.Errorf("tile set has no %q building", b.name)
		}
		tile, err := m.TryPlaceTile(b.cell, def)
		if err != nil {
			return err
		}
		if _, err := world.SpawnBuilding(tile); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
