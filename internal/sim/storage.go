package sim

import (
	"fmt"

	"github.com/gridville/sim/internal/grid"
	"github.com/gridville/sim/internal/resource"
)

// MaxStorageSlots caps the number of stockpile slots a storage building
// can be configured with.
const MaxStorageSlots = 8

// storageSlot is one fixed-capacity bucket. A slot is either free
// (allocated == 0) or exclusively allocated to one resource kind. The
// count never exceeds the shared slot capacity, and a count of zero
// releases the allocation.
type storageSlot struct {
	stock     *resource.Stock
	allocated resource.Kind // 0 = free
}

func (s *storageSlot) isFree() bool {
	return s.allocated == resource.KindNone
}

func (s *storageSlot) isFull(slotCapacity int) bool {
	if s.isFree() {
		return false
	}
	return s.stock.Count(s.allocated) >= slotCapacity
}

func (s *storageSlot) remainingCapacity(slotCapacity int) int {
	if s.isFree() {
		return slotCapacity
	}
	return slotCapacity - s.stock.Count(s.allocated)
}

func (s *storageSlot) incrementCount(kind resource.Kind, amount, slotCapacity int) int {
	index, item := s.stock.Find(kind)

	if !s.isFree() {
		if s.allocated != kind {
			panic(fmt.Sprintf("storage slot is allocated to '%v', cannot accept '%v'", s.allocated, kind))
		}
	} else {
		s.allocated = kind
	}

	prev := item.Count
	count := prev + amount
	if count > slotCapacity {
		count = slotCapacity
	}
	if count != prev {
		s.stock.Set(index, resource.StockItem{Kind: kind, Count: count})
	}
	return count
}

func (s *storageSlot) decrementCount(kind resource.Kind, amount int) int {
	index, item := s.stock.Find(kind)
	count := item.Count
	if count == 0 {
		return 0
	}
	if s.allocated != kind {
		panic(fmt.Sprintf("storage slot is allocated to '%v', cannot release '%v'", s.allocated, kind))
	}
	count -= amount
	if count < 0 {
		count = 0
	}
	s.stock.Set(index, resource.StockItem{Kind: kind, Count: count})
	if count == 0 {
		s.allocated = resource.KindNone
	}
	return count
}

// StorageSlots is a fixed array of kind-allocated stockpile buckets with a
// shared per-slot capacity. The sum of per-kind counts across slots equals
// the owning building's total stock of that kind.
type StorageSlots struct {
	slots        []storageSlot
	slotCapacity int
}

// NewStorageSlots creates numSlots empty buckets restricted to the
// accepted resource kinds. Zero slots, zero capacity or an empty accepted
// list is a configuration bug and panics.
func NewStorageSlots(accepted resource.Kinds, numSlots, slotCapacity int) *StorageSlots {
	if accepted.IsEmpty() || numSlots <= 0 || slotCapacity <= 0 {
		panic("storage must have a non-zero number of slots, slot capacity and a list of accepted resources")
	}
	if numSlots > MaxStorageSlots {
		panic(fmt.Sprintf("storage slot count %d exceeds the maximum of %d", numSlots, MaxStorageSlots))
	}
	ss := &StorageSlots{
		slots:        make([]storageSlot, numSlots),
		slotCapacity: slotCapacity,
	}
	for i := range ss.slots {
		ss.slots[i] = storageSlot{stock: resource.NewStock(accepted)}
	}
	return ss
}

func (ss *StorageSlots) NumSlots() int     { return len(ss.slots) }
func (ss *StorageSlots) SlotCapacity() int { return ss.slotCapacity }

// AllocatedKind returns the kind a slot is allocated to, or KindNone when
// the slot is free.
func (ss *StorageSlots) AllocatedKind(slot int) resource.Kind {
	return ss.slots[slot].allocated
}

func (ss *StorageSlots) IsSlotFree(slot int) bool {
	return ss.slots[slot].isFree()
}

func (ss *StorageSlots) IsSlotFull(slot int) bool {
	return ss.slots[slot].isFull(ss.slotCapacity)
}

// SlotResourceCount returns the count of a single kind in a slot.
func (ss *StorageSlots) SlotResourceCount(slot int, kind resource.Kind) int {
	requireSingleKind(kind)
	return ss.slots[slot].stock.Count(kind)
}

// DecrementSlotResourceCount removes up to amount of a kind from a slot,
// saturating at zero. When the count reaches zero the slot's allocation is
// released so it becomes available to other kinds. Returns the new count.
func (ss *StorageSlots) DecrementSlotResourceCount(slot int, kind resource.Kind, amount int) int {
	requireSingleKind(kind)
	return ss.slots[slot].decrementCount(kind, amount)
}

// AreAllSlotsFull reports whether every slot has reached capacity.
func (ss *StorageSlots) AreAllSlotsFull() bool {
	for i := range ss.slots {
		if !ss.IsSlotFull(i) {
			return false
		}
	}
	return true
}

// FindFreeSlot returns the index of the first unallocated slot.
func (ss *StorageSlots) FindFreeSlot() (int, bool) {
	for i := range ss.slots {
		if ss.slots[i].isFree() {
			return i, true
		}
	}
	return 0, false
}

// FindResourceSlot returns the first slot allocated to exactly this kind.
// Multi-bit masks never match.
func (ss *StorageSlots) FindResourceSlot(kind resource.Kind) (int, bool) {
	requireSingleKind(kind)
	for i := range ss.slots {
		if ss.slots[i].allocated == kind {
			return i, true
		}
	}
	return 0, false
}

// allocResourceSlot picks the slot new stock of the kind should go to:
// prefer a slot already allocated to the kind that still has room, else
// the first free slot, else fail.
func (ss *StorageSlots) allocResourceSlot(kind resource.Kind) (int, bool) {
	requireSingleKind(kind)
	for i := range ss.slots {
		if ss.slots[i].allocated == kind && !ss.IsSlotFull(i) {
			return i, true
		}
	}
	return ss.FindFreeSlot()
}

// HowManyCanFit returns the total room for a kind: full capacity of every
// free slot plus the remaining room of slots already allocated to it.
func (ss *StorageSlots) HowManyCanFit(kind resource.Kind) int {
	requireSingleKind(kind)
	total := 0
	for i := range ss.slots {
		s := &ss.slots[i]
		if s.isFree() {
			total += ss.slotCapacity
		} else if s.allocated == kind {
			total += s.remainingCapacity(ss.slotCapacity)
		}
	}
	return total
}

// ReceiveResources stores up to count of a kind and returns how many were
// actually absorbed (0 when no slot is available).
func (ss *StorageSlots) ReceiveResources(kind resource.Kind, count int) int {
	slot, ok := ss.allocResourceSlot(kind)
	if !ok {
		return 0
	}
	prev := ss.SlotResourceCount(slot, kind)
	next := ss.slots[slot].incrementCount(kind, count, ss.slotCapacity)
	return next - prev
}

func requireSingleKind(kind resource.Kind) {
	if !kind.IsSingle() {
		panic(fmt.Sprintf("storage slot operations require a single resource kind, got '%v'", kind))
	}
}

// StorageConfig is the catalog record for a storage building.
type StorageConfig struct {
	Name              string
	TileDefName       string
	TileDefNameHash   grid.StringHash
	MinWorkers        int
	MaxWorkers        int
	ResourcesAccepted resource.Kinds
	NumSlots          int
	SlotCapacity      int
}

// StorageBuilding holds stockpiles and serves shopping trips. Units
// deliver cargo here; houses and markets shop from it.
type StorageBuilding struct {
	config  *StorageConfig
	workers resource.Workers
	slots   *StorageSlots
}

func NewStorageBuilding(config *StorageConfig) *StorageBuilding {
	return &StorageBuilding{
		config:  config,
		workers: resource.NewWorkers(config.MinWorkers, config.MaxWorkers),
		slots:   NewStorageSlots(config.ResourcesAccepted, config.NumSlots, config.SlotCapacity),
	}
}

func (b *StorageBuilding) Name() string         { return b.config.Name }
func (b *StorageBuilding) Slots() *StorageSlots { return b.slots }

func (b *StorageBuilding) IsFull() bool {
	return b.slots.AreAllSlotsFull()
}

// HowManyCanFit returns how many resources of this kind the building can
// still receive.
func (b *StorageBuilding) HowManyCanFit(kind resource.Kind) int {
	return b.slots.HowManyCanFit(kind)
}

// ReceiveResources stores resources and returns the number accommodated.
func (b *StorageBuilding) ReceiveResources(kind resource.Kind, count int) int {
	return b.slots.ReceiveResources(kind, count)
}

// Shop models a single shopping trip: for each wanted kind in the list,
// take one unit into the basket if a slot holds it. With allOrNothing set
// the whole trip aborts (nothing mutated, empty set returned) unless every
// wanted kind has an allocated, nonzero slot. Returns the set of kinds
// actually added to the basket.
func (b *StorageBuilding) Shop(basket *resource.Stock, shoppingList resource.Kinds, allOrNothing bool) resource.Kind {
	if allOrNothing {
		for _, wanted := range shoppingList.Entries() {
			if _, ok := b.slots.FindResourceSlot(wanted); !ok {
				return resource.KindNone
			}
		}
	}

	added := resource.KindNone
	for _, wanted := range shoppingList.Entries() {
		slot, ok := b.slots.FindResourceSlot(wanted)
		if !ok {
			continue
		}
		prev := b.slots.SlotResourceCount(slot, wanted)
		next := b.slots.DecrementSlotResourceCount(slot, wanted, 1)
		if next < prev {
			basket.Add(wanted)
			added |= wanted
		}
	}
	return added
}

func (b *StorageBuilding) Update(_ *BuildingContext, _ float64) {
	// Storage is passive; stock moves through deliveries and shopping.
}

// VisitedBy unloads the unit's carried cargo into storage. When the whole
// load was absorbed and the unit's inventory is empty, the unit is asked
// to despawn; otherwise it stays spawned and re-evaluates its delivery on
// a later tick.
func (b *StorageBuilding) VisitedBy(u *Unit, ctx *BuildingContext) {
	item, ok := u.PeekInventory()
	if !ok {
		return
	}
	received := b.ReceiveResources(item.Kind, item.Count)
	if received != 0 {
		u.GiveResources(item.Kind, received)
	}
	if u.IsInventoryEmpty() {
		ctx.DespawnUnit(u)
	}
}
