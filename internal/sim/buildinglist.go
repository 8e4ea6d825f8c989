package sim

import (
	"fmt"

	"github.com/gridville/sim/internal/grid"
)

// BuildingList is a slotted collection of buildings sharing one archetype.
// Add returns a stable slot index; Remove frees only that slot, leaving
// every other index valid. Freed slots are recycled through a free list,
// so iteration order is slot order, not spawn order.
type BuildingList struct {
	archetype ArchetypeKind
	slots     []*Building
	freeList  []uint32
	count     int
}

func NewBuildingList(archetype ArchetypeKind) *BuildingList {
	return &BuildingList{archetype: archetype}
}

func (l *BuildingList) ArchetypeKind() ArchetypeKind { return l.archetype }

// Len returns the number of live buildings in the list.
func (l *BuildingList) Len() int { return l.count }

// Add inserts a building and returns its stable slot index. Inserting a
// building of the wrong archetype is a programmer error and panics.
func (l *BuildingList) Add(b *Building) uint32 {
	if b.ArchetypeKind() != l.archetype {
		panic(fmt.Sprintf("building '%s' has archetype %v, list holds %v",
			b.Name(), b.ArchetypeKind(), l.archetype))
	}
	l.count++
	if n := len(l.freeList); n > 0 {
		index := l.freeList[n-1]
		l.freeList = l.freeList[:n-1]
		l.slots[index] = b
		return index
	}
	l.slots = append(l.slots, b)
	return uint32(len(l.slots) - 1)
}

// Remove frees the slot at index. Returns false when the index is out of
// range or already vacant.
func (l *BuildingList) Remove(index uint32) bool {
	if int(index) >= len(l.slots) || l.slots[index] == nil {
		return false
	}
	l.slots[index] = nil
	l.freeList = append(l.freeList, index)
	l.count--
	return true
}

// TryGet returns the building at index, or nil when the slot is vacant or
// out of range.
func (l *BuildingList) TryGet(index uint32) *Building {
	if int(index) >= len(l.slots) {
		return nil
	}
	return l.slots[index]
}

// ForEach visits every live building in ascending slot order. The visitor
// returns false to stop early.
func (l *BuildingList) ForEach(visit func(index uint32, b *Building) bool) {
	for i, b := range l.slots {
		if b == nil {
			continue
		}
		if !visit(uint32(i), b) {
			return
		}
	}
}

// FindByCell returns the first building whose footprint contains the cell.
// Linear scan; debug/tooling path.
func (l *BuildingList) FindByCell(c grid.Cell) *Building {
	var found *Building
	l.ForEach(func(_ uint32, b *Building) bool {
		if b.CellRange().Contains(c) {
			found = b
			return false
		}
		return true
	})
	return found
}

// Update runs one tick of behavior for every live building in slot order.
func (l *BuildingList) Update(q *Query, dtSecs float64) {
	l.ForEach(func(_ uint32, b *Building) bool {
		b.Update(q, dtSecs)
		return true
	})
}

// Clear removes every building and resets slot storage.
func (l *BuildingList) Clear() {
	l.slots = l.slots[:0]
	l.freeList = l.freeList[:0]
	l.count = 0
}
