package sim

import (
	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/resource"
)

// UnitConfig is the catalog record for a mobile unit type.
type UnitConfig struct {
	Name            string
	TileDefName     string
	TileDefNameHash grid.StringHash
	MaxCarry        int // cargo units per trip
}

// unitSearchRadius is how far (in cells) a unit scans for a delivery
// target each time it re-evaluates.
const unitSearchRadius = 16

// Unit is a reusable mobile-agent record. Records live inside the spawn
// pool for the lifetime of the pool; despawning resets the record and
// frees its slot for reuse on a later spawn.
type Unit struct {
	poolIndex uint32
	config    *UnitConfig
	tile      *grid.Tile
	inventory *resource.Stock

	// Delivery state: which storage kinds the cargo may go to, and the
	// base cell of the currently chosen target building.
	acceptedStorage BuildingKind
	targetCell      grid.Cell
	hasTarget       bool
}

func (u *Unit) Name() string {
	if u.config == nil {
		return "unit"
	}
	return u.config.Name
}

func (u *Unit) PoolIndex() uint32 { return u.poolIndex }

// Tile returns the map tile the unit currently occupies, nil when despawned.
func (u *Unit) Tile() *grid.Tile { return u.tile }

// Cell returns the unit's current map cell.
func (u *Unit) Cell() grid.Cell { return u.tile.BaseCell() }

// IsSpawned reports whether the unit is attached to a tile and active.
func (u *Unit) IsSpawned() bool { return u.tile != nil }

// reset reinitializes the record in place for a fresh spawn.
func (u *Unit) reset(poolIndex uint32, tile *grid.Tile, config *UnitConfig) {
	u.poolIndex = poolIndex
	u.config = config
	u.tile = tile
	u.inventory = resource.NewStockOf(resource.AllKinds())
	u.acceptedStorage = BuildingKindsStorage
	u.targetCell = grid.Cell{}
	u.hasTarget = false
}

// detach returns the record to its inert despawned state.
func (u *Unit) detach() {
	u.tile = nil
	u.hasTarget = false
}

// PeekInventory returns the first carried item, if any.
func (u *Unit) PeekInventory() (resource.StockItem, bool) {
	if u.inventory == nil {
		return resource.StockItem{}, false
	}
	return u.inventory.PeekNonEmpty()
}

// ReceiveCargo loads resources onto the unit.
func (u *Unit) ReceiveCargo(kind resource.Kind, count int) {
	u.inventory.AddCount(kind, count)
}

// GiveResources removes up to count of a kind from the unit's inventory
// and returns how many were actually given.
func (u *Unit) GiveResources(kind resource.Kind, count int) int {
	return u.inventory.RemoveCount(kind, count)
}

func (u *Unit) IsInventoryEmpty() bool {
	return u.inventory == nil || u.inventory.IsEmpty()
}

// SetDeliveryTarget restricts which storage building kinds the unit will
// deliver its cargo to.
func (u *Unit) SetDeliveryTarget(kinds BuildingKind) {
	u.acceptedStorage = kinds
}

// Update runs one tick of navigation and behavior: pick a delivery target
// when carrying cargo, step one cell toward it, and unload on arrival.
// A unit that cannot act simply re-evaluates on a later tick.
func (u *Unit) Update(q *Query, _ float64) {
	if !u.hasTarget {
		u.pickDeliveryTarget(q)
		if !u.hasTarget {
			return
		}
	}

	targetTile := q.FindTile(u.targetCell, grid.LayerObjects, grid.TileBuilding|grid.TileBlocker)
	if targetTile == nil {
		// Target building was demolished; search again next tick.
		u.hasTarget = false
		return
	}

	if targetTile.CellRange().IsAdjacent(u.Cell()) {
		if b := q.FindBuildingForTile(targetTile); b != nil {
			b.VisitedBy(u, q)
		}
		// Whether or not the visit emptied the cargo, re-evaluate: an
		// emptied unit is queued for despawn, a blocked one needs a
		// different storage.
		u.hasTarget = false
		return
	}

	u.stepToward(q, u.targetCell)
}

// pickDeliveryTarget scans for the nearest storage building that can still
// fit the carried cargo.
func (u *Unit) pickDeliveryTarget(q *Query) {
	item, ok := u.PeekInventory()
	if !ok {
		return
	}
	start := grid.CellRangeForCell(u.Cell())
	b := q.FindNearestBuildingMatching(start, u.acceptedStorage, unitSearchRadius, func(candidate *Building) bool {
		storage, ok := candidate.Behavior().(*StorageBuilding)
		return ok && storage.HowManyCanFit(item.Kind) > 0
	})
	if b == nil {
		return
	}
	u.targetCell = b.CellRange().Start
	u.hasTarget = true
}

// stepToward moves the unit one cell toward dest. The direct diagonal step
// is preferred; when it is blocked the two component side-steps are tried,
// and a fully blocked unit stays put until a later tick.
func (u *Unit) stepToward(q *Query, dest grid.Cell) {
	from := u.Cell()
	dx := sign(dest.X - from.X)
	dy := sign(dest.Y - from.Y)
	if dx == 0 && dy == 0 {
		return
	}

	candidates := []grid.Cell{{X: from.X + dx, Y: from.Y + dy}}
	if dx != 0 && dy != 0 {
		candidates = append(candidates,
			grid.Cell{X: from.X + dx, Y: from.Y},
			grid.Cell{X: from.X, Y: from.Y + dy})
	} else if dx != 0 {
		candidates = append(candidates,
			grid.Cell{X: from.X + dx, Y: from.Y + 1},
			grid.Cell{X: from.X + dx, Y: from.Y - 1})
	} else {
		candidates = append(candidates,
			grid.Cell{X: from.X + 1, Y: from.Y + dy},
			grid.Cell{X: from.X - 1, Y: from.Y + dy})
	}

	for _, c := range candidates {
		if c == from {
			continue
		}
		if err := q.Map().MoveTile(u.tile, c); err == nil {
			return
		}
	}
}

func sign(n int) int {
	if n > 0 {
		return 1
	}
	if n < 0 {
		return -1
	}
	return 0
}
