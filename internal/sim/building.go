package sim

import (
	"github.com/gridville/sim/internal/grid"
)

// BuildingBehavior is implemented by the four archetype behaviors. A
// Building owns exactly one behavior for its whole lifetime.
type BuildingBehavior interface {
	Name() string

	// Update advances the behavior by one simulation tick.
	Update(ctx *BuildingContext, dtSecs float64)

	// VisitedBy is called when a unit arrives at the building.
	VisitedBy(u *Unit, ctx *BuildingContext)
}

// Building is one placed building instance: its concrete kind (exactly one
// bit), the cell range it occupies, and its archetype behavior. Buildings
// live inside exactly one archetype list.
type Building struct {
	kind     BuildingKind
	cells    grid.CellRange
	behavior BuildingBehavior
}

func NewBuilding(kind BuildingKind, cells grid.CellRange, behavior BuildingBehavior) *Building {
	if !kind.IsSingle() {
		panic("building requires a single kind, got '" + kind.String() + "'")
	}
	return &Building{kind: kind, cells: cells, behavior: behavior}
}

func (b *Building) Name() string                 { return b.behavior.Name() }
func (b *Building) Kind() BuildingKind           { return b.kind }
func (b *Building) ArchetypeKind() ArchetypeKind { return b.kind.ArchetypeKind() }
func (b *Building) CellRange() grid.CellRange    { return b.cells }
func (b *Building) Behavior() BuildingBehavior   { return b.behavior }

// Update runs the archetype behavior for one tick. The context is scoped
// to this call.
func (b *Building) Update(q *Query, dtSecs float64) {
	ctx := BuildingContext{query: q, kind: b.kind, cells: b.cells}
	b.behavior.Update(&ctx, dtSecs)
}

// VisitedBy forwards a unit arrival to the behavior.
func (b *Building) VisitedBy(u *Unit, q *Query) {
	ctx := BuildingContext{query: q, kind: b.kind, cells: b.cells}
	b.behavior.VisitedBy(u, &ctx)
}

// BuildingContext is the per-call facade behavior code uses to reach the
// rest of the world without holding a direct World reference. It never
// outlives the building update that constructed it.
type BuildingContext struct {
	query *Query
	kind  BuildingKind
	cells grid.CellRange
}

func (c *BuildingContext) Query() *Query             { return c.query }
func (c *BuildingContext) Kind() BuildingKind        { return c.kind }
func (c *BuildingContext) CellRange() grid.CellRange { return c.cells }

// FindTile returns the building's own base tile, or nil if the map no
// longer has it (despawn in progress).
func (c *BuildingContext) FindTile() *grid.Tile {
	return c.query.FindTile(c.cells.Start, grid.LayerObjects, grid.TileBuilding)
}

// DespawnUnit requests removal of a unit. The request is queued and
// applied by World after the current update iteration completes, so
// behavior code may call this mid-iteration.
func (c *BuildingContext) DespawnUnit(u *Unit) {
	c.query.world.QueueDespawnUnit(u)
}
