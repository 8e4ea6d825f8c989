package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridville/sim/internal/grid"
)

func newTestGranary(base grid.Cell) *Building {
	cells := grid.CellRange{Start: base, End: base}
	return NewBuilding(BuildingGranary, cells, newTestStorageBuilding())
}

func TestBuildingListStableIndices(t *testing.T) {
	list := NewBuildingList(ArchetypeStorage)

	i0 := list.Add(newTestGranary(grid.Cell{X: 0, Y: 0}))
	i1 := list.Add(newTestGranary(grid.Cell{X: 2, Y: 0}))
	i2 := list.Add(newTestGranary(grid.Cell{X: 4, Y: 0}))
	require.Equal(t, []uint32{0, 1, 2}, []uint32{i0, i1, i2})

	b2 := list.TryGet(i2)
	require.True(t, list.Remove(i1))

	// Removing one slot does not move the others.
	assert.Equal(t, b2, list.TryGet(i2))
	assert.Nil(t, list.TryGet(i1))
	assert.Equal(t, 2, list.Len())
}

func TestBuildingListFreeSlotReuse(t *testing.T) {
	list := NewBuildingList(ArchetypeStorage)
	list.Add(newTestGranary(grid.Cell{X: 0, Y: 0}))
	i1 := list.Add(newTestGranary(grid.Cell{X: 2, Y: 0}))

	require.True(t, list.Remove(i1))
	reused := list.Add(newTestGranary(grid.Cell{X: 4, Y: 0}))
	assert.Equal(t, i1, reused)
}

func TestBuildingListRejectsWrongArchetype(t *testing.T) {
	list := NewBuildingList(ArchetypeProducer)
	assert.Panics(t, func() { list.Add(newTestGranary(grid.Cell{X: 0, Y: 0})) })
}

func TestBuildingListRemoveInvalid(t *testing.T) {
	list := NewBuildingList(ArchetypeStorage)
	assert.False(t, list.Remove(0))

	index := list.Add(newTestGranary(grid.Cell{X: 0, Y: 0}))
	require.True(t, list.Remove(index))
	assert.False(t, list.Remove(index), "double remove is rejected")
}

func TestBuildingListFindByCell(t *testing.T) {
	list := NewBuildingList(ArchetypeStorage)
	target := NewBuilding(BuildingGranary,
		grid.CellRange{Start: grid.Cell{X: 4, Y: 4}, End: grid.Cell{X: 5, Y: 5}},
		newTestStorageBuilding())
	list.Add(newTestGranary(grid.Cell{X: 0, Y: 0}))
	list.Add(target)

	assert.Equal(t, target, list.FindByCell(grid.Cell{X: 5, Y: 4}))
	assert.Nil(t, list.FindByCell(grid.Cell{X: 9, Y: 9}))
}

func TestBuildingListForEachOrder(t *testing.T) {
	list := NewBuildingList(ArchetypeStorage)
	for i := 0; i < 4; i++ {
		list.Add(newTestGranary(grid.Cell{X: i * 2, Y: 0}))
	}
	list.Remove(2)

	var visited []uint32
	list.ForEach(func(index uint32, _ *Building) bool {
		visited = append(visited, index)
		return true
	})
	assert.Equal(t, []uint32{0, 1, 3}, visited)
}
