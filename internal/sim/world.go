package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gridville/sim/internal/grid"
)

// World owns all game-state entities: four archetype-partitioned building
// lists and the unit spawn pool. Tiles on the map carry handles back into
// these collections; the world keeps both directions of that link
// consistent. Single-goroutine access only (game loop).
type World struct {
	logger *zap.Logger

	lists [archetypeCount]*BuildingList
	units *SpawnPool

	buildingConfigs *BuildingConfigs
	unitConfigs     *UnitConfigs

	// Unit pool indices queued for removal; flushed after each update
	// iteration so behavior code can request despawns mid-iteration.
	unitDespawnQueue []uint32
}

func NewWorld(logger *zap.Logger, buildingConfigs *BuildingConfigs, unitConfigs *UnitConfigs) *World {
	w := &World{
		logger:          logger,
		units:           NewSpawnPool(),
		buildingConfigs: buildingConfigs,
		unitConfigs:     unitConfigs,
	}
	for i := range w.lists {
		w.lists[i] = NewBuildingList(ArchetypeKind(i))
	}
	return w
}

func (w *World) BuildingConfigs() *BuildingConfigs { return w.buildingConfigs }
func (w *World) UnitConfigs() *UnitConfigs         { return w.unitConfigs }

// Buildings returns the archetype list for direct iteration.
func (w *World) Buildings(archetype ArchetypeKind) *BuildingList {
	return w.lists[archetype]
}

// BuildingCount returns the number of live buildings across all archetypes.
func (w *World) BuildingCount() int {
	n := 0
	for _, l := range w.lists {
		n += l.Len()
	}
	return n
}

// UnitCount returns the number of live units.
func (w *World) UnitCount() int {
	return w.units.LiveCount()
}

// SpawnBuilding instantiates the building for an already-placed tile, adds
// it to its archetype list, and publishes the resulting handle on the tile
// before returning.
func (w *World) SpawnBuilding(tile *grid.Tile) (grid.GameStateHandle, error) {
	if tile == nil || !tile.Is(grid.TileBuilding) {
		return 0, fmt.Errorf("spawn building: tile is not a building tile")
	}
	if tile.GameStateHandle().IsValid() {
		return 0, fmt.Errorf("spawn building at %v: tile already has an entity", tile.BaseCell())
	}

	b, err := w.buildingConfigs.Instantiate(tile)
	if err != nil {
		return 0, fmt.Errorf("spawn building at %v: %w", tile.BaseCell(), err)
	}

	index := w.lists[b.ArchetypeKind()].Add(b)
	handle := grid.NewGameStateHandle(index, uint32(b.Kind()))
	tile.SetGameStateHandle(handle)

	w.logger.Debug("building spawned",
		zap.String("name", b.Name()),
		zap.Stringer("kind", b.Kind()),
		zap.Stringer("cells", b.CellRange()))
	return handle, nil
}

// DespawnBuilding removes a building and its tile. The tile is cleared
// from the map first; only then is the entity released from its list, so
// a clear failure leaves the world untouched.
func (w *World) DespawnBuilding(m *grid.TileMap, tile *grid.Tile) error {
	if tile == nil {
		return fmt.Errorf("despawn building: nil tile")
	}
	handle := tile.GameStateHandle()
	kind := BuildingKindFromHandle(handle)
	if kind == 0 {
		return fmt.Errorf("despawn building at %v: tile has no building entity", tile.BaseCell())
	}

	if err := m.TryClearTile(tile.BaseCell(), grid.LayerObjects); err != nil {
		return fmt.Errorf("despawn building: %w", err)
	}
	tile.ClearGameStateHandle()

	list := w.lists[kind.ArchetypeKind()]
	b := list.TryGet(handle.Index())
	if !list.Remove(handle.Index()) {
		return fmt.Errorf("despawn building at %v: stale handle index %d", tile.BaseCell(), handle.Index())
	}

	if b != nil {
		w.logger.Debug("building despawned",
			zap.String("name", b.Name()),
			zap.Stringer("kind", kind))
	}
	return nil
}

// FindBuildingForTile recovers the building behind a tile's handle without
// scanning. Returns nil for tiles with no valid building handle.
func (w *World) FindBuildingForTile(tile *grid.Tile) *Building {
	if tile == nil {
		return nil
	}
	handle := tile.GameStateHandle()
	kind := BuildingKindFromHandle(handle)
	if kind == 0 {
		return nil
	}
	return w.lists[kind.ArchetypeKind()].TryGet(handle.Index())
}

// FindUnitForTile recovers the unit behind a tile's handle. Returns nil
// for tiles that do not carry a unit handle.
func (w *World) FindUnitForTile(tile *grid.Tile) *Unit {
	if tile == nil {
		return nil
	}
	handle := tile.GameStateHandle()
	if !handle.IsUnit() {
		return nil
	}
	return w.units.TryGet(handle.Index())
}

// FindBuildingByName returns the first building whose behavior name
// matches. Linear scan across all lists; debug/tooling path.
func (w *World) FindBuildingByName(name string) *Building {
	for _, list := range w.lists {
		var found *Building
		list.ForEach(func(_ uint32, b *Building) bool {
			if b.Name() == name {
				found = b
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// TrySpawnUnit places a unit tile at the cell and spawns a pool record for
// it, publishing the handle on the tile before returning.
func (w *World) TrySpawnUnit(m *grid.TileMap, sets *grid.TileSets, c grid.Cell, config *UnitConfig) (*Unit, error) {
	if config == nil {
		return nil, fmt.Errorf("spawn unit at %v: nil unit config", c)
	}
	def := sets.FindByHash(grid.LayerUnits, grid.CategoryUnits, config.TileDefNameHash)
	if def == nil {
		return nil, fmt.Errorf("spawn unit at %v: no tile definition %q", c, config.TileDefName)
	}

	tile, err := m.TryPlaceTile(c, def)
	if err != nil {
		return nil, fmt.Errorf("spawn unit: %w", err)
	}

	index, u := w.units.Spawn(tile, config)
	tile.SetGameStateHandle(grid.NewGameStateHandle(index, grid.UnitHandleTag))

	w.logger.Debug("unit spawned",
		zap.String("name", u.Name()),
		zap.Stringer("cell", c),
		zap.Uint32("slot", index))
	return u, nil
}

// DespawnUnit removes a unit immediately: tile first, then the pool slot.
// Behavior code running inside an update iteration must use
// QueueDespawnUnit instead.
func (w *World) DespawnUnit(m *grid.TileMap, u *Unit) error {
	if u == nil || !u.IsSpawned() {
		return fmt.Errorf("despawn unit: unit is not spawned")
	}
	tile := u.Tile()
	if err := m.TryClearTile(tile.BaseCell(), grid.LayerUnits); err != nil {
		return fmt.Errorf("despawn unit: %w", err)
	}
	tile.ClearGameStateHandle()

	if !w.units.Despawn(u) {
		return fmt.Errorf("despawn unit: stale pool slot %d", u.PoolIndex())
	}
	return nil
}

// QueueDespawnUnit marks a unit for removal at the end of the current
// update. Safe to call while iterating the pool. Queuing the same unit
// twice is harmless.
func (w *World) QueueDespawnUnit(u *Unit) {
	if u == nil {
		return
	}
	w.unitDespawnQueue = append(w.unitDespawnQueue, u.PoolIndex())
}

// flushUnitDespawnQueue applies queued removals. Stale entries (slot
// already recycled or despawned) are skipped.
func (w *World) flushUnitDespawnQueue(m *grid.TileMap) {
	for _, index := range w.unitDespawnQueue {
		u := w.units.TryGet(index)
		if u == nil {
			continue
		}
		if err := w.DespawnUnit(m, u); err != nil {
			w.logger.Warn("queued unit despawn failed", zap.Uint32("slot", index), zap.Error(err))
		}
	}
	w.unitDespawnQueue = w.unitDespawnQueue[:0]
}

// Update advances every entity by one simulation step: units move and
// deliver first, then buildings produce and consume, then queued unit
// despawns are applied.
func (w *World) Update(q *Query, dtSecs float64) {
	w.units.ForEach(func(_ uint32, u *Unit) bool {
		u.Update(q, dtSecs)
		return true
	})
	for _, list := range w.lists {
		list.Update(q, dtSecs)
	}
	w.flushUnitDespawnQueue(q.Map())
}

// Reset removes every entity without touching the map. Callers clearing
// the world should rebuild the map alongside.
func (w *World) Reset() {
	for _, list := range w.lists {
		list.Clear()
	}
	w.units.Clear()
	w.unitDespawnQueue = w.unitDespawnQueue[:0]
}
