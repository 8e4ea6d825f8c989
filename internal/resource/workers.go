package resource

// Workers tracks the worker occupancy of a building.
type Workers struct {
	Min   int
	Max   int
	Count int
}

func NewWorkers(min, max int) Workers {
	return Workers{Min: min, Max: max}
}

// IsOperational reports whether enough workers are present for the
// building to function.
func (w Workers) IsOperational() bool {
	return w.Count >= w.Min
}

// HasVacancy reports whether more workers can join.
func (w Workers) HasVacancy() bool {
	return w.Count < w.Max
}
