package sim

import (
	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/resource"
)

// ProducerConfig is the catalog record for a producer building.
type ProducerConfig struct {
	Name            string
	TileDefName     string
	TileDefNameHash grid.StringHash
	MinWorkers      int
	MaxWorkers      int

	ProductionOutputFrequencySecs float64
	ProductionOutput              resource.Kind
	ProductionCapacity            int

	// Raw-material inputs; empty for gathering producers like farms.
	ResourcesRequired resource.Kinds
	ResourcesCapacity int

	// Storage building kinds the producer ships its output to.
	StorageBuildingsAccepted BuildingKind

	// Unit type spawned to carry output to storage.
	CourierUnit string
}

// producerSearchRadius is how far a producer looks for a storage building
// to ship to.
const producerSearchRadius = 16

// ProducerBuilding generates resources on a timer and dispatches courier
// units to haul them to storage.
type ProducerBuilding struct {
	config          *ProducerConfig
	workers         resource.Workers
	productionTimer UpdateTimer
	stock           *resource.Stock // finished output awaiting pickup
}

func NewProducerBuilding(config *ProducerConfig) *ProducerBuilding {
	return &ProducerBuilding{
		config:          config,
		workers:         resource.NewWorkers(config.MinWorkers, config.MaxWorkers),
		productionTimer: NewUpdateTimer(config.ProductionOutputFrequencySecs),
		stock:           resource.NewStockOf(config.ProductionOutput),
	}
}

func (b *ProducerBuilding) Name() string { return b.config.Name }

// OutputCount returns how much finished output is waiting for pickup.
func (b *ProducerBuilding) OutputCount() int {
	return b.stock.Count(b.config.ProductionOutput)
}

func (b *ProducerBuilding) Update(ctx *BuildingContext, dtSecs float64) {
	if b.productionTimer.Tick(dtSecs).ShouldUpdate() {
		if b.OutputCount() < b.config.ProductionCapacity {
			b.stock.Add(b.config.ProductionOutput)
		}
	}
	if b.OutputCount() > 0 {
		b.tryDispatchCourier(ctx)
	}
}

func (b *ProducerBuilding) VisitedBy(_ *Unit, _ *BuildingContext) {
	// Producers are not a delivery destination.
}

// tryDispatchCourier spawns a unit next to the building carrying one load
// of output, bound for the nearest accepted storage with room. When no
// storage fits or no unit can spawn, the output stays put and the attempt
// repeats on a later tick.
func (b *ProducerBuilding) tryDispatchCourier(ctx *BuildingContext) {
	q := ctx.Query()
	output := b.config.ProductionOutput

	storage := q.FindNearestBuildingMatching(ctx.CellRange(), b.config.StorageBuildingsAccepted,
		producerSearchRadius, func(candidate *Building) bool {
			sb, ok := candidate.Behavior().(*StorageBuilding)
			return ok && sb.HowManyCanFit(output) > 0
		})
	if storage == nil {
		return
	}

	unit, err := q.TrySpawnUnitNear(ctx.CellRange(), b.config.CourierUnit)
	if err != nil {
		return // no free cell or unknown unit type; retried next tick
	}

	carry := b.OutputCount()
	if max := unit.config.MaxCarry; max > 0 && carry > max {
		carry = max
	}
	b.stock.RemoveCount(output, carry)
	unit.ReceiveCargo(output, carry)
	unit.SetDeliveryTarget(b.config.StorageBuildingsAccepted)
}
