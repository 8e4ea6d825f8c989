package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTimerFiresOnceThresholdReached(t *testing.T) {
	timer := NewUpdateTimer(0.5)

	assert.False(t, timer.Tick(0.2).ShouldUpdate())
	assert.False(t, timer.Tick(0.2).ShouldUpdate())
	require.True(t, timer.Tick(0.2).ShouldUpdate())

	assert.InDelta(t, 0.6, timer.LastDeltaSecs(), 1e-9,
		"fired step carries the full accumulated time")
	assert.Equal(t, 0.0, timer.AccumulatedSecs(), "accumulator resets after firing")
}

func TestUpdateTimerNoCatchUp(t *testing.T) {
	timer := NewUpdateTimer(0.5)

	// A delta spanning several thresholds still fires a single step.
	require.True(t, timer.Tick(1.7).ShouldUpdate())
	assert.InDelta(t, 1.7, timer.LastDeltaSecs(), 1e-9)
	assert.Equal(t, 0.0, timer.AccumulatedSecs())

	assert.False(t, timer.Tick(0.4).ShouldUpdate())
}

func TestUpdateTimerExactBoundary(t *testing.T) {
	timer := NewUpdateTimer(0.5)
	assert.False(t, timer.Tick(0.25).ShouldUpdate())
	assert.True(t, timer.Tick(0.25).ShouldUpdate())
}

func TestUpdateTimerRepeatedCycles(t *testing.T) {
	timer := NewUpdateTimer(0.5)

	fired := 0
	for i := 0; i < 10; i++ {
		if timer.Tick(0.2).ShouldUpdate() {
			fired++
		}
	}
	// 0.2s frames: fires at 0.6, 1.2, 1.8... accumulated per cycle.
	assert.Equal(t, 3, fired)
}
