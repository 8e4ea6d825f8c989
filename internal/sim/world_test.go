package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gridville/sim/internal/grid"
)

func testTileSets() *grid.TileSets {
	return grid.NewTileSets([]grid.TileDef{
		{Name: "grass", Category: grid.CategoryTerrain, Kind: grid.TileTerrain},
		{Name: "house_0", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "house_1", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "house_2", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "rice_farm", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "granary", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "market", Category: grid.CategoryBuildings, Kind: grid.TileBuilding, Width: 2, Height: 2},
		{Name: "well_small", Category: grid.CategoryBuildings, Kind: grid.TileBuilding},
		{Name: "porter", Category: grid.CategoryUnits, Kind: grid.TileUnit},
	})
}

func newTestWorld(t *testing.T) (*World, *grid.TileMap, *grid.TileSets) {
	t.Helper()
	world := NewWorld(zap.NewNop(), DefaultBuildingConfigs(), DefaultUnitConfigs())
	return world, grid.NewTileMap(32, 32), testTileSets()
}

func placeBuilding(t *testing.T, m *grid.TileMap, sets *grid.TileSets, name string, c grid.Cell) *grid.Tile {
	t.Helper()
	def := sets.FindByName(grid.LayerObjects, grid.CategoryBuildings, name)
	require.NotNil(t, def, "tile def %q", name)
	tile, err := m.TryPlaceTile(c, def)
	require.NoError(t, err)
	return tile
}

func TestWorldSpawnBuildingPublishesHandle(t *testing.T) {
	world, m, sets := newTestWorld(t)
	tile := placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})

	handle, err := world.SpawnBuilding(tile)
	require.NoError(t, err)
	require.True(t, handle.IsValid())
	assert.False(t, handle.IsUnit())
	assert.Equal(t, handle, tile.GameStateHandle())
	assert.Equal(t, BuildingGranary, BuildingKindFromHandle(handle))

	b := world.FindBuildingForTile(tile)
	require.NotNil(t, b)
	assert.Equal(t, BuildingGranary, b.Kind())
	assert.Equal(t, tile.CellRange(), b.CellRange())

	// Footprint cells share the tile, so lookups from any covered cell
	// resolve to the same entity.
	blockerTile := m.FindTile(grid.Cell{X: 5, Y: 5}, grid.LayerObjects, grid.TileBuilding|grid.TileBlocker)
	require.NotNil(t, blockerTile)
	assert.Equal(t, b, world.FindBuildingForTile(blockerTile))
}

func TestWorldSpawnBuildingRejectsOccupiedTile(t *testing.T) {
	world, m, sets := newTestWorld(t)
	tile := placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})

	_, err := world.SpawnBuilding(tile)
	require.NoError(t, err)
	_, err = world.SpawnBuilding(tile)
	assert.Error(t, err, "tile already carries an entity")
}

func TestWorldSpawnBuildingUnknownTile(t *testing.T) {
	world := NewWorld(zap.NewNop(), NewBuildingConfigs(), NewUnitConfigs())
	m := grid.NewTileMap(8, 8)
	sets := testTileSets()
	tile := placeBuilding(t, m, sets, "granary", grid.Cell{X: 1, Y: 1})

	_, err := world.SpawnBuilding(tile)
	assert.Error(t, err, "empty catalog cannot instantiate")
	assert.False(t, tile.GameStateHandle().IsValid(), "failed spawn leaves the tile clean")
}

func TestWorldDespawnBuilding(t *testing.T) {
	world, m, sets := newTestWorld(t)
	tile := placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})
	_, err := world.SpawnBuilding(tile)
	require.NoError(t, err)

	require.NoError(t, world.DespawnBuilding(m, tile))

	// Whole footprint is vacated and the entity is gone.
	tile.CellRange().ForEach(func(c grid.Cell) bool {
		assert.False(t, m.HasTile(c, grid.LayerObjects, grid.TileBuilding|grid.TileBlocker), "cell %v", c)
		return true
	})
	assert.Equal(t, 0, world.BuildingCount())
	assert.Nil(t, world.FindBuildingForTile(tile))

	// A fresh building can take the freed ground.
	tile2 := placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})
	_, err = world.SpawnBuilding(tile2)
	assert.NoError(t, err)
}

func TestWorldDespawnBuildingWithoutEntity(t *testing.T) {
	world, m, sets := newTestWorld(t)
	tile := placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})
	assert.Error(t, world.DespawnBuilding(m, tile))
}

func TestWorldUnitSpawnAndDespawn(t *testing.T) {
	world, m, _ := newTestWorld(t)
	sets := testTileSets()
	cfg := world.UnitConfigs().FindByName("porter")
	require.NotNil(t, cfg)

	u, err := world.TrySpawnUnit(m, sets, grid.Cell{X: 3, Y: 3}, cfg)
	require.NoError(t, err)
	require.True(t, u.IsSpawned())
	assert.Equal(t, 1, world.UnitCount())

	tile := u.Tile()
	require.True(t, tile.GameStateHandle().IsUnit())
	assert.Equal(t, u, world.FindUnitForTile(tile))

	require.NoError(t, world.DespawnUnit(m, u))
	assert.Equal(t, 0, world.UnitCount())
	assert.False(t, m.HasTile(grid.Cell{X: 3, Y: 3}, grid.LayerUnits, grid.TileUnit))
	assert.False(t, u.IsSpawned())
}

func TestWorldUnitSpawnBlockedCell(t *testing.T) {
	world, m, sets := newTestWorld(t)
	placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})
	cfg := world.UnitConfigs().FindByName("porter")

	_, err := world.TrySpawnUnit(m, sets, grid.Cell{X: 5, Y: 5}, cfg)
	assert.Error(t, err, "unit cannot share a cell with a building footprint")
}

func TestWorldQueuedUnitDespawnFlushesAfterUpdate(t *testing.T) {
	world, m, _ := newTestWorld(t)
	sets := testTileSets()
	cfg := world.UnitConfigs().FindByName("porter")

	u, err := world.TrySpawnUnit(m, sets, grid.Cell{X: 3, Y: 3}, cfg)
	require.NoError(t, err)

	world.QueueDespawnUnit(u)
	world.QueueDespawnUnit(u) // duplicate request is harmless
	assert.Equal(t, 1, world.UnitCount(), "despawn is deferred")

	q := NewQuery(nil, m, sets, world)
	world.Update(q, 0.5)
	assert.Equal(t, 0, world.UnitCount())
	assert.False(t, m.HasTile(grid.Cell{X: 3, Y: 3}, grid.LayerUnits, grid.TileUnit))
}

func TestWorldFindBuildingByName(t *testing.T) {
	world, m, sets := newTestWorld(t)
	tile := placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})
	_, err := world.SpawnBuilding(tile)
	require.NoError(t, err)

	b := world.FindBuildingByName("Granary")
	require.NotNil(t, b)
	assert.Equal(t, BuildingGranary, b.Kind())
	assert.Nil(t, world.FindBuildingByName("Cathedral"))
}

func TestWorldReset(t *testing.T) {
	world, m, sets := newTestWorld(t)
	tile := placeBuilding(t, m, sets, "granary", grid.Cell{X: 4, Y: 4})
	_, err := world.SpawnBuilding(tile)
	require.NoError(t, err)
	_, err = world.TrySpawnUnit(m, testTileSets(), grid.Cell{X: 1, Y: 1},
		world.UnitConfigs().FindByName("porter"))
	require.NoError(t, err)

	world.Reset()
	assert.Equal(t, 0, world.BuildingCount())
	assert.Equal(t, 0, world.UnitCount())
}
