package sim

import (
	"strings"

	"github.com/gridville/sim/internal/grid"
)

// BuildingKind is a bitmask of building types. A concrete building carries
// exactly one bit; multi-bit values act as "any of" matchers in config
// (for example WellSmall|WellBig as a house service requirement).
type BuildingKind uint32

const (
	BuildingHouse BuildingKind = 1 << iota
	BuildingFarm
	BuildingGranary
	BuildingStorageYard
	BuildingWellSmall
	BuildingWellBig
	BuildingMarket
)

// BuildingKindsStorage matches every storage-archetype building.
const BuildingKindsStorage = BuildingGranary | BuildingStorageYard

// BuildingKindsService matches every service-archetype building.
const BuildingKindsService = BuildingWellSmall | BuildingWellBig | BuildingMarket

// IsSingle reports whether exactly one bit is set.
func (k BuildingKind) IsSingle() bool {
	return k != 0 && k&(k-1) == 0
}

// Intersects reports whether the two kind sets share any bit.
func (k BuildingKind) Intersects(other BuildingKind) bool {
	return k&other != 0
}

func (k BuildingKind) String() string {
	if k == 0 {
		return "none"
	}
	names := []struct {
		bit  BuildingKind
		name string
	}{
		{BuildingHouse, "house"},
		{BuildingFarm, "farm"},
		{BuildingGranary, "granary"},
		{BuildingStorageYard, "storage_yard"},
		{BuildingWellSmall, "well_small"},
		{BuildingWellBig, "well_big"},
		{BuildingMarket, "market"},
	}
	var parts []string
	for _, n := range names {
		if k&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ArchetypeKind returns the behavioral archetype of a single building kind.
func (k BuildingKind) ArchetypeKind() ArchetypeKind {
	switch k {
	case BuildingFarm:
		return ArchetypeProducer
	case BuildingGranary, BuildingStorageYard:
		return ArchetypeStorage
	case BuildingWellSmall, BuildingWellBig, BuildingMarket:
		return ArchetypeService
	case BuildingHouse:
		return ArchetypeHouse
	}
	panic("archetype lookup requires a single building kind, got '" + k.String() + "'")
}

// BuildingKindFromHandle recovers the building kind stored in a tile's
// game-state handle tag. Returns 0 for invalid or unit handles.
func BuildingKindFromHandle(h grid.GameStateHandle) BuildingKind {
	if !h.IsValid() || h.IsUnit() {
		return 0
	}
	return BuildingKind(h.Tag())
}

// BuildingKindFromName returns the single kind with the given name, or 0.
func BuildingKindFromName(name string) BuildingKind {
	switch name {
	case "house":
		return BuildingHouse
	case "farm":
		return BuildingFarm
	case "granary":
		return BuildingGranary
	case "storage_yard":
		return BuildingStorageYard
	case "well_small":
		return BuildingWellSmall
	case "well_big":
		return BuildingWellBig
	case "market":
		return BuildingMarket
	}
	return 0
}

// BuildingKinds is an ordered list of building kind matchers. Each entry
// may be a single kind or a multi-bit "any of" mask; requirement checks
// must satisfy every entry independently.
type BuildingKinds struct {
	entries []BuildingKind
}

func NewBuildingKinds(entries ...BuildingKind) BuildingKinds {
	return BuildingKinds{entries: entries}
}

func NoBuildingKinds() BuildingKinds { return BuildingKinds{} }

func (k BuildingKinds) IsEmpty() bool           { return len(k.entries) == 0 }
func (k BuildingKinds) Len() int                { return len(k.entries) }
func (k BuildingKinds) Entries() []BuildingKind { return k.entries }

// ArchetypeKind is one of the four behavioral categories a building
// belongs to. Values index World's archetype lists.
type ArchetypeKind int

const (
	ArchetypeProducer ArchetypeKind = iota
	ArchetypeStorage
	ArchetypeService
	ArchetypeHouse

	archetypeCount
)

func (a ArchetypeKind) String() string {
	switch a {
	case ArchetypeProducer:
		return "producer"
	case ArchetypeStorage:
		return "storage"
	case ArchetypeService:
		return "service"
	case ArchetypeHouse:
		return "house"
	}
	return "unknown"
}
