package sim

// UpdateTimerResult tells the caller whether the threshold was crossed on
// this tick.
type UpdateTimerResult int

const (
	DoNotUpdate UpdateTimerResult = iota
	ShouldUpdate
)

func (r UpdateTimerResult) ShouldUpdate() bool {
	return r == ShouldUpdate
}

// UpdateTimer is a fixed-step accumulator. Each Tick adds the frame delta;
// once the accumulated time reaches the configured frequency the timer
// fires exactly once, records the accumulated time as the step delta, and
// resets the accumulator to zero. Threshold crossings are never replayed:
// one real frame fires at most one step.
type UpdateTimer struct {
	frequencySecs   float64
	accumulatedSecs float64
	lastDeltaSecs   float64
}

func NewUpdateTimer(frequencySecs float64) UpdateTimer {
	return UpdateTimer{frequencySecs: frequencySecs}
}

// Tick advances the accumulator and reports whether a step should run now.
func (t *UpdateTimer) Tick(dtSecs float64) UpdateTimerResult {
	t.accumulatedSecs += dtSecs
	if t.accumulatedSecs >= t.frequencySecs {
		t.lastDeltaSecs = t.accumulatedSecs
		t.accumulatedSecs = 0
		return ShouldUpdate
	}
	return DoNotUpdate
}

// FrequencySecs returns the configured step threshold.
func (t *UpdateTimer) FrequencySecs() float64 { return t.frequencySecs }

// AccumulatedSecs returns the time accumulated since the last fired step.
func (t *UpdateTimer) AccumulatedSecs() float64 { return t.accumulatedSecs }

// LastDeltaSecs returns the delta of the most recently fired step: the
// full accumulated span it covered.
func (t *UpdateTimer) LastDeltaSecs() float64 { return t.lastDeltaSecs }
