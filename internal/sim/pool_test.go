package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/resource"
)

func newUnitTestMap(t *testing.T) (*grid.TileMap, *grid.TileDef) {
	t.Helper()
	sets := grid.NewTileSets([]grid.TileDef{
		{Name: "porter", Category: grid.CategoryUnits, Kind: grid.TileUnit},
	})
	def := sets.FindByName(grid.LayerUnits, grid.CategoryUnits, "porter")
	require.NotNil(t, def)
	return grid.NewTileMap(16, 16), def
}

func mustPlaceUnitTile(t *testing.T, m *grid.TileMap, def *grid.TileDef, c grid.Cell) *grid.Tile {
	t.Helper()
	tile, err := m.TryPlaceTile(c, def)
	require.NoError(t, err)
	return tile
}

func TestSpawnPoolFirstFitReuse(t *testing.T) {
	m, def := newUnitTestMap(t)
	pool := NewSpawnPool()
	cfg := &UnitConfig{Name: "Porter", TileDefName: "porter", MaxCarry: 5}

	var tiles []*grid.Tile
	for i := 0; i < 3; i++ {
		tiles = append(tiles, mustPlaceUnitTile(t, m, def, grid.Cell{X: i, Y: 0}))
	}

	i0, _ := pool.Spawn(tiles[0], cfg)
	i1, u1 := pool.Spawn(tiles[1], cfg)
	i2, _ := pool.Spawn(tiles[2], cfg)
	assert.Equal(t, uint32(0), i0)
	assert.Equal(t, uint32(1), i1)
	assert.Equal(t, uint32(2), i2)

	require.True(t, pool.Despawn(u1))
	assert.Equal(t, 2, pool.LiveCount())
	assert.Equal(t, 3, pool.Capacity())

	// The freed middle slot is reused before growing.
	tile := mustPlaceUnitTile(t, m, def, grid.Cell{X: 5, Y: 5})
	index, u := pool.Spawn(tile, cfg)
	assert.Equal(t, uint32(1), index)
	assert.Equal(t, tile, u.Tile())
	assert.Equal(t, 3, pool.Capacity(), "no growth while free slots exist")
}

func TestSpawnPoolResetClearsCarriedState(t *testing.T) {
	m, def := newUnitTestMap(t)
	pool := NewSpawnPool()
	cfg := &UnitConfig{Name: "Porter", TileDefName: "porter", MaxCarry: 5}

	tile := mustPlaceUnitTile(t, m, def, grid.Cell{X: 0, Y: 0})
	_, u := pool.Spawn(tile, cfg)
	u.ReceiveCargo(resource.Rice, 3)
	require.False(t, u.IsInventoryEmpty())
	require.True(t, pool.Despawn(u))

	tile2 := mustPlaceUnitTile(t, m, def, grid.Cell{X: 1, Y: 0})
	_, reused := pool.Spawn(tile2, cfg)
	assert.True(t, reused.IsInventoryEmpty(), "recycled record starts clean")
	assert.True(t, reused.IsSpawned())
}

func TestSpawnPoolTryGet(t *testing.T) {
	m, def := newUnitTestMap(t)
	pool := NewSpawnPool()
	cfg := &UnitConfig{Name: "Porter", TileDefName: "porter"}

	tile := mustPlaceUnitTile(t, m, def, grid.Cell{X: 0, Y: 0})
	index, u := pool.Spawn(tile, cfg)

	assert.Equal(t, u, pool.TryGet(index))
	assert.Nil(t, pool.TryGet(index+1), "out of range")

	pool.DespawnIndex(index)
	assert.Nil(t, pool.TryGet(index), "dead slot")
	assert.False(t, pool.DespawnIndex(index), "double despawn is rejected")
}

func TestSpawnPoolForEachSkipsDead(t *testing.T) {
	m, def := newUnitTestMap(t)
	pool := NewSpawnPool()
	cfg := &UnitConfig{Name: "Porter", TileDefName: "porter"}

	for i := 0; i < 4; i++ {
		pool.Spawn(mustPlaceUnitTile(t, m, def, grid.Cell{X: i, Y: 0}), cfg)
	}
	pool.DespawnIndex(1)
	pool.DespawnIndex(3)

	var visited []uint32
	pool.ForEach(func(index uint32, _ *Unit) bool {
		visited = append(visited, index)
		return true
	})
	assert.Equal(t, []uint32{0, 2}, visited)
}

func TestSpawnPoolClear(t *testing.T) {
	m, def := newUnitTestMap(t)
	pool := NewSpawnPool()
	cfg := &UnitConfig{Name: "Porter", TileDefName: "porter"}
	for i := 0; i < 3; i++ {
		pool.Spawn(mustPlaceUnitTile(t, m, def, grid.Cell{X: i, Y: 0}), cfg)
	}

	pool.Clear()
	assert.Equal(t, 0, pool.LiveCount())
	assert.Equal(t, 3, pool.Capacity(), "backing storage survives a clear")
}

func TestSpawnPoolManySlots(t *testing.T) {
	m, def := newUnitTestMap(t)
	pool := NewSpawnPool()
	cfg := &UnitConfig{Name: "Porter", TileDefName: "porter"}

	for i := 0; i < 10; i++ {
		index, _ := pool.Spawn(mustPlaceUnitTile(t, m, def, grid.Cell{X: i, Y: 1}), cfg)
		require.Equal(t, uint32(i), index, fmt.Sprintf("spawn %d", i))
	}
	assert.Equal(t, 10, pool.LiveCount())
}
