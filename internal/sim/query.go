package sim

import (
	"fmt"
	"math/rand"

	"github.com/gridville/sim/internal/grid"
)

// Query is the read-mostly view handed to entity update code. It bundles
// the map, the tile-set catalog, the world and the simulation RNG so
// behaviors can inspect their surroundings without each holding the
// pieces separately. A Query is rebuilt per simulation step and must not
// be retained across steps.
type Query struct {
	rng   *rand.Rand
	m     *grid.TileMap
	sets  *grid.TileSets
	world *World
}

func NewQuery(rng *rand.Rand, m *grid.TileMap, sets *grid.TileSets, world *World) *Query {
	return &Query{rng: rng, m: m, sets: sets, world: world}
}

func (q *Query) Map() *grid.TileMap       { return q.m }
func (q *Query) TileSets() *grid.TileSets { return q.sets }
func (q *Query) Rng() *rand.Rand          { return q.rng }

// FindTile returns the matching tile at a cell, or nil.
func (q *Query) FindTile(c grid.Cell, layer grid.Layer, kinds grid.TileKind) *grid.Tile {
	return q.m.FindTile(c, layer, kinds)
}

// FindTileDef looks up a tile definition in the catalog.
func (q *Query) FindTileDef(layer grid.Layer, category, name string) *grid.TileDef {
	return q.sets.FindByName(layer, category, name)
}

// FindBuildingForTile recovers the building entity behind a tile's handle.
func (q *Query) FindBuildingForTile(tile *grid.Tile) *Building {
	return q.world.FindBuildingForTile(tile)
}

// FindUnitForTile recovers the unit entity behind a tile's handle.
func (q *Query) FindUnitForTile(tile *grid.Tile) *Unit {
	return q.world.FindUnitForTile(tile)
}

// IsNearBuilding reports whether any building matching the kind mask lies
// within radius cells of the origin range.
func (q *Query) IsNearBuilding(origin grid.CellRange, kinds BuildingKind, radius int) bool {
	return q.FindNearestBuilding(origin, kinds, radius) != nil
}

// FindNearestBuilding returns the closest building matching the kind mask
// within radius cells of the origin range, or nil.
func (q *Query) FindNearestBuilding(origin grid.CellRange, kinds BuildingKind, radius int) *Building {
	return q.FindNearestBuildingMatching(origin, kinds, radius, nil)
}

// FindNearestBuildingMatching searches outward in expanding square rings
// around the origin range and returns the first building whose kind
// intersects the mask and that passes the predicate. Within one ring the
// scan is row-major, so ties resolve deterministically. Returns nil when
// no match lies within radius cells.
func (q *Query) FindNearestBuildingMatching(origin grid.CellRange, kinds BuildingKind,
	radius int, match func(*Building) bool) *Building {

	for r := 1; r <= radius; r++ {
		window := origin.Expand(r)
		inner := origin.Expand(r - 1)

		var found *Building
		window.ForEach(func(c grid.Cell) bool {
			if inner.Contains(c) {
				return true // only the outermost ring is new
			}
			tile := q.m.FindTile(c, grid.LayerObjects, grid.TileBuilding|grid.TileBlocker)
			if tile == nil {
				return true
			}
			b := q.world.FindBuildingForTile(tile)
			if b == nil || !b.Kind().Intersects(kinds) {
				return true
			}
			if match != nil && !match(b) {
				return true
			}
			found = b
			return false
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// TrySpawnUnitNear spawns a unit of the named type on a free cell adjacent
// to the origin range. Cells are tried in row-major order around the
// border.
func (q *Query) TrySpawnUnitNear(origin grid.CellRange, unitName string) (*Unit, error) {
	config := q.world.UnitConfigs().FindByName(unitName)
	if config == nil {
		return nil, fmt.Errorf("spawn unit near %v: unknown unit type %q", origin, unitName)
	}

	var spawnCell grid.Cell
	foundCell := false
	origin.Expand(1).ForEach(func(c grid.Cell) bool {
		if origin.Contains(c) || !q.m.IsWithinBounds(c) {
			return true
		}
		if q.m.HasTile(c, grid.LayerObjects, grid.TileBuilding|grid.TileBlocker) {
			return true
		}
		if q.m.HasTile(c, grid.LayerUnits, grid.TileUnit) {
			return true
		}
		spawnCell = c
		foundCell = true
		return false
	})
	if !foundCell {
		return nil, fmt.Errorf("spawn unit near %v: no free adjacent cell", origin)
	}
	return q.world.TrySpawnUnit(q.m, q.sets, spawnCell, config)
}
