package sim

import (
	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/resource"
)

// HouseLevel indexes the house upgrade ladder.
type HouseLevel int

const (
	HouseLevel0 HouseLevel = iota
	HouseLevel1
	HouseLevel2

	HouseLevelCount
)

// HouseLevelConfig is the catalog record for one house level: its look and
// the requirements a household must sustain to hold (or reach) the level.
type HouseLevelConfig struct {
	Name            string
	TileDefName     string
	TileDefNameHash grid.StringHash

	MaxResidents int
	TaxGenerated int

	// Service coverage entries; each must be matched by a distinct nearby
	// service kind (multi-bit entries accept any of their kinds).
	ServicesRequired BuildingKinds

	// Food entries the household must keep in its pantry.
	ResourcesRequired resource.Kinds
}

// HouseConfig is the catalog record shared by every house level.
type HouseConfig struct {
	StockUpdateFrequencySecs   float64
	UpgradeUpdateFrequencySecs float64
}

// houseShopRadius is how far a household goes shopping for food.
const houseShopRadius = 16

// houseServiceRadius is how far away a service building may be and still
// count as covering the house.
const houseServiceRadius = 5

// HouseBuilding is a household on the upgrade ladder. On its stock timer
// it eats from and refills its pantry by shopping at markets; on its
// upgrade timer it moves up a level when the next level's requirements are
// met and down when the current level's are not.
type HouseBuilding struct {
	level    HouseLevel
	config   *HouseConfig
	levelCfg *HouseLevelConfig
	configs  *BuildingConfigs

	residents int
	stock     *resource.Stock // pantry

	stockTimer   UpdateTimer
	upgradeTimer UpdateTimer
}

func NewHouseBuilding(level HouseLevel, configs *BuildingConfigs) *HouseBuilding {
	cfg := configs.House()
	return &HouseBuilding{
		level:        level,
		config:       cfg,
		levelCfg:     configs.HouseLevel(level),
		configs:      configs,
		residents:    1,
		stock:        resource.NewStockOf(resource.Foods()),
		stockTimer:   NewUpdateTimer(cfg.StockUpdateFrequencySecs),
		upgradeTimer: NewUpdateTimer(cfg.UpgradeUpdateFrequencySecs),
	}
}

func (b *HouseBuilding) Name() string      { return b.levelCfg.Name }
func (b *HouseBuilding) Level() HouseLevel { return b.level }
func (b *HouseBuilding) Residents() int    { return b.residents }

// Tax returns the tax income the household currently yields.
func (b *HouseBuilding) Tax() int { return b.levelCfg.TaxGenerated }

// PantryCount returns how much of a kind the household has stocked.
func (b *HouseBuilding) PantryCount(kind resource.Kind) int {
	return b.stock.Count(kind)
}

func (b *HouseBuilding) Update(ctx *BuildingContext, dtSecs float64) {
	if b.stockTimer.Tick(dtSecs).ShouldUpdate() {
		b.eat()
		b.shop(ctx)
	}
	if b.upgradeTimer.Tick(dtSecs).ShouldUpdate() {
		b.evaluateLevel(ctx)
	}
}

func (b *HouseBuilding) VisitedBy(_ *Unit, _ *BuildingContext) {
	// Houses are not a delivery destination.
}

// eat consumes one unit per required food entry, when the pantry has it.
func (b *HouseBuilding) eat() {
	for _, entry := range b.levelCfg.ResourcesRequired.Entries() {
		if kind, ok := b.pantryKindMatching(entry); ok {
			b.stock.RemoveCount(kind, 1)
		}
	}
}

// shoppingEntries returns the food entries the household tries to keep
// stocked: its current level's needs plus the next level's, so a house can
// accumulate what an upgrade will demand.
func (b *HouseBuilding) shoppingEntries() []resource.Kind {
	entries := append([]resource.Kind(nil), b.levelCfg.ResourcesRequired.Entries()...)
	if b.level+1 < HouseLevelCount {
		entries = append(entries, b.configs.HouseLevel(b.level+1).ResourcesRequired.Entries()...)
	}
	return entries
}

// shop refills unmet food entries from markets in range. Each entry buys
// at most one unit per trip.
func (b *HouseBuilding) shop(ctx *BuildingContext) {
	q := ctx.Query()
	for _, entry := range b.shoppingEntries() {
		if _, ok := b.pantryKindMatching(entry); ok {
			continue
		}
		market := q.FindNearestBuildingMatching(ctx.CellRange(), BuildingMarket,
			houseShopRadius, func(candidate *Building) bool {
				svc, ok := candidate.Behavior().(*ServiceBuilding)
				return ok && hasStockMatching(svc, entry)
			})
		if market == nil {
			continue
		}
		if svc, ok := market.Behavior().(*ServiceBuilding); ok {
			if kind, taken := svc.TakeResource(entry); taken {
				b.stock.Add(kind)
			}
		}
	}
}

// evaluateLevel moves the household one step up or down the ladder. An
// upgrade requires the next level's full requirements; a downgrade happens
// when even the current level's requirements are unmet. Residents drift
// toward the level's maximum one per evaluation.
func (b *HouseBuilding) evaluateLevel(ctx *BuildingContext) {
	if b.level+1 < HouseLevelCount && b.meetsRequirements(ctx, b.configs.HouseLevel(b.level+1)) {
		b.setLevel(b.level + 1)
	} else if !b.meetsRequirements(ctx, b.levelCfg) && b.level > HouseLevel0 {
		b.setLevel(b.level - 1)
	}

	if b.residents < b.levelCfg.MaxResidents {
		b.residents++
	} else if b.residents > b.levelCfg.MaxResidents {
		b.residents = b.levelCfg.MaxResidents
	}
}

func (b *HouseBuilding) setLevel(level HouseLevel) {
	b.level = level
	b.levelCfg = b.configs.HouseLevel(level)
}

// meetsRequirements checks a level's service coverage and pantry entries
// against the house's current surroundings and stock.
func (b *HouseBuilding) meetsRequirements(ctx *BuildingContext, cfg *HouseLevelConfig) bool {
	q := ctx.Query()
	for _, entry := range cfg.ServicesRequired.Entries() {
		if !q.IsNearBuilding(ctx.CellRange(), entry, houseServiceRadius) {
			return false
		}
	}
	for _, entry := range cfg.ResourcesRequired.Entries() {
		if _, ok := b.pantryKindMatching(entry); !ok {
			return false
		}
	}
	return true
}

// pantryKindMatching returns a pantry kind with nonzero count satisfying
// the entry filter.
func (b *HouseBuilding) pantryKindMatching(entry resource.Kind) (resource.Kind, bool) {
	found := resource.KindNone
	b.stock.ForEach(func(_ int, item resource.StockItem) {
		if found == resource.KindNone && item.Count > 0 && item.Kind.Intersects(entry) {
			found = item.Kind
		}
	})
	return found, found != resource.KindNone
}

func hasStockMatching(svc *ServiceBuilding, filter resource.Kind) bool {
	if svc.stock == nil {
		return false
	}
	has := false
	svc.stock.ForEach(func(_ int, item resource.StockItem) {
		if item.Count > 0 && item.Kind.Intersects(filter) {
			has = true
		}
	})
	return has
}
