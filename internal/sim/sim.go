package sim

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/gridville/sim/internal/grid"
)

// Simulation drives the world at a fixed step. Callers feed it real frame
// deltas as fast as they like; world updates only run when the step timer
// fires, and each fired step passes the accumulated time as its delta.
type Simulation struct {
	logger *zap.Logger
	timer  UpdateTimer
	rng    *rand.Rand
	steps  uint64
}

func NewSimulation(logger *zap.Logger, updateFrequencySecs float64, seed int64) *Simulation {
	if updateFrequencySecs <= 0 {
		panic("simulation update frequency must be positive")
	}
	return &Simulation{
		logger: logger,
		timer:  NewUpdateTimer(updateFrequencySecs),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Rng returns the deterministic simulation RNG. All randomness in entity
// behavior must come from here so a seed fully reproduces a run.
func (s *Simulation) Rng() *rand.Rand { return s.rng }

// Steps returns how many fixed steps have run.
func (s *Simulation) Steps() uint64 { return s.steps }

// Update advances the step timer by the frame delta and, when the timer
// fires, runs exactly one world update.
func (s *Simulation) Update(world *World, m *grid.TileMap, sets *grid.TileSets, delta time.Duration) {
	if !s.timer.Tick(delta.Seconds()).ShouldUpdate() {
		return
	}
	q := NewQuery(s.rng, m, sets, world)
	world.Update(q, s.timer.LastDeltaSecs())
	s.steps++
}
