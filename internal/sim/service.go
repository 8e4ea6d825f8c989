package sim

import (
	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/resource"
)

// ServiceConfig is the catalog record for a service building.
type ServiceConfig struct {
	Name            string
	TileDefName     string
	TileDefNameHash grid.StringHash
	MinWorkers      int
	MaxWorkers      int

	StockUpdateFrequencySecs float64

	// Cells from the building's edge within which houses count as served.
	EffectRadius int

	// Goods the service keeps in stock; empty for pure coverage services
	// like wells.
	ResourcesRequired resource.Kinds
}

// serviceRestockRadius is how far a stocked service looks for a storage
// building to shop from.
const serviceRestockRadius = 16

// serviceStockCapacity is the per-kind stock ceiling a service restocks to.
const serviceStockCapacity = 4

// ServiceBuilding provides radius-based coverage to houses. Services with
// required goods (markets) periodically restock from nearby storage and
// hand goods out to shopping houses; pure coverage services (wells) carry
// no stock at all.
type ServiceBuilding struct {
	config     *ServiceConfig
	workers    resource.Workers
	stockTimer UpdateTimer
	stock      *resource.Stock // nil for coverage-only services
}

func NewServiceBuilding(config *ServiceConfig) *ServiceBuilding {
	b := &ServiceBuilding{
		config:     config,
		workers:    resource.NewWorkers(config.MinWorkers, config.MaxWorkers),
		stockTimer: NewUpdateTimer(config.StockUpdateFrequencySecs),
	}
	if !config.ResourcesRequired.IsEmpty() {
		b.stock = resource.NewStock(config.ResourcesRequired)
	}
	return b
}

func (b *ServiceBuilding) Name() string      { return b.config.Name }
func (b *ServiceBuilding) EffectRadius() int { return b.config.EffectRadius }

// StockCount returns how much of a kind the service has on hand.
func (b *ServiceBuilding) StockCount(kind resource.Kind) int {
	if b.stock == nil {
		return 0
	}
	return b.stock.Count(kind)
}

func (b *ServiceBuilding) Update(ctx *BuildingContext, dtSecs float64) {
	if b.stock == nil {
		return
	}
	if !b.stockTimer.Tick(dtSecs).ShouldUpdate() {
		return
	}
	b.restock(ctx)
}

func (b *ServiceBuilding) VisitedBy(_ *Unit, _ *BuildingContext) {
	// Services are not a delivery destination.
}

// Covers reports whether a cell range lies within the service's effect
// radius.
func (b *ServiceBuilding) Covers(own, target grid.CellRange) bool {
	return own.Expand(b.config.EffectRadius).Contains(target.Start) ||
		own.Expand(b.config.EffectRadius).Contains(target.End)
}

// TakeResource hands out one unit of stock matching the filter mask, for a
// shopping house. Returns the concrete kind taken, or false when nothing
// in stock matches.
func (b *ServiceBuilding) TakeResource(filter resource.Kind) (resource.Kind, bool) {
	if b.stock == nil {
		return resource.KindNone, false
	}
	taken := resource.KindNone
	b.stock.ForEach(func(_ int, item resource.StockItem) {
		if taken == resource.KindNone && item.Count > 0 && item.Kind.Intersects(filter) {
			taken = item.Kind
		}
	})
	if taken == resource.KindNone {
		return resource.KindNone, false
	}
	b.stock.RemoveCount(taken, 1)
	return taken, true
}

// restock shops the kinds that fell below the stock ceiling from the
// nearest storage that has them. Each trip takes at most one unit of each
// wanted kind; partial trips are fine.
func (b *ServiceBuilding) restock(ctx *BuildingContext) {
	var wanted []resource.Kind
	b.stock.ForEach(func(_ int, item resource.StockItem) {
		if item.Count < serviceStockCapacity {
			wanted = append(wanted, item.Kind)
		}
	})
	if len(wanted) == 0 {
		return
	}
	shoppingList := resource.NewKinds(wanted...)

	q := ctx.Query()
	supplier := q.FindNearestBuildingMatching(ctx.CellRange(), BuildingKindsStorage,
		serviceRestockRadius, func(candidate *Building) bool {
			sb, ok := candidate.Behavior().(*StorageBuilding)
			if !ok {
				return false
			}
			for _, kind := range shoppingList.Entries() {
				if _, found := sb.Slots().FindResourceSlot(kind); found {
					return true
				}
			}
			return false
		})
	if supplier == nil {
		return
	}
	if sb, ok := supplier.Behavior().(*StorageBuilding); ok {
		sb.Shop(b.stock, shoppingList, false)
	}
}
