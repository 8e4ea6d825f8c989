package sim

import (
	"github.com/gridville/sim/internal/grid"
)

// SpawnPool is a recycling object pool for units: a growable array of
// reusable records plus a parallel live-bit vector of identical length.
// Spawning reuses the first free slot in ascending index order (first
// fit), which makes index reuse deterministic. Records are never freed
// while the pool is alive.
type SpawnPool struct {
	units []*Unit
	alive []bool
}

func NewSpawnPool() *SpawnPool {
	return &SpawnPool{
		units: make([]*Unit, 0, 64),
		alive: make([]bool, 0, 64),
	}
}

// Spawn allocates or reuses a slot, reinitializes its record in place from
// the config, attaches it to the tile, and returns the stable slot index
// and the record.
func (p *SpawnPool) Spawn(tile *grid.Tile, config *UnitConfig) (uint32, *Unit) {
	for i, live := range p.alive {
		if live {
			continue
		}
		index := uint32(i)
		u := p.units[i]
		u.reset(index, tile, config)
		p.alive[i] = true
		return index, u
	}

	index := uint32(len(p.units))
	u := &Unit{}
	u.reset(index, tile, config)
	p.units = append(p.units, u)
	p.alive = append(p.alive, true)
	return index, u
}

// Despawn clears the unit's live bit and resets the record to an inert
// state. The slot becomes eligible for reuse on the next spawn.
func (p *SpawnPool) Despawn(u *Unit) bool {
	return p.DespawnIndex(u.poolIndex)
}

// DespawnIndex despawns by slot index. Returns false when the index is out
// of range or the slot is already dead.
func (p *SpawnPool) DespawnIndex(index uint32) bool {
	if int(index) >= len(p.alive) || !p.alive[index] {
		return false
	}
	p.units[index].detach()
	p.alive[index] = false
	return true
}

// TryGet returns the live unit at index, or nil for dead or out-of-range
// slots.
func (p *SpawnPool) TryGet(index uint32) *Unit {
	if int(index) >= len(p.alive) || !p.alive[index] {
		return nil
	}
	return p.units[index]
}

// ForEach visits every live unit in ascending slot order; dead slots are
// skipped. The visitor returns false to stop early.
func (p *SpawnPool) ForEach(visit func(index uint32, u *Unit) bool) {
	for i, live := range p.alive {
		if !live {
			continue
		}
		if !visit(uint32(i), p.units[i]) {
			return
		}
	}
}

// LiveCount returns the number of spawned units.
func (p *SpawnPool) LiveCount() int {
	n := 0
	for _, live := range p.alive {
		if live {
			n++
		}
	}
	return n
}

// Capacity returns the number of slots in the backing storage, live or not.
func (p *SpawnPool) Capacity() int {
	return len(p.units)
}

// Clear despawns every unit without shrinking the backing storage.
func (p *SpawnPool) Clear() {
	for i := range p.alive {
		if p.alive[i] {
			p.units[i].detach()
			p.alive[i] = false
		}
	}
}
