package burndown

import "gonum.org/v1/gonum/floats"

// Solution is the outcome of a capacity search over one year.
type Solution struct {
	SelfSufficient bool
	CapacityWh     float64

	// Trajectory is the stored energy in [0, CapacityWh] when SelfSufficient.
	// Otherwise it holds the last search run, in deficit-below-full terms.
	Trajectory []float64
}

// SolveMinCapacity finds the smallest battery that covers every deficit of
// the year, assuming the battery ends the year at the level it started with.
//
// The battery is assumed full on the first day. The last day it is full
// again anchors the search: the net deficit from that day to the end of the
// year is carried over as the starting reserve, and the deepest excursion of
// the re-run is the capacity. A year that never refills is not
// self-sufficient.
func SolveMinCapacity(surpluses []float64) Solution {
	search := SearchPolicy()

	traj := Accumulate(0, surpluses, search)
	last, ok := lastFull(traj)
	if !ok {
		return Solution{Trajectory: traj}
	}

	suffix := Accumulate(0, surpluses[last:], search)
	leftover := suffix[len(suffix)-1]

	traj = Accumulate(leftover, surpluses, search)
	if _, ok := lastFull(traj); !ok {
		return Solution{Trajectory: traj}
	}

	capacity := 0 - floats.Min(traj)
	floats.AddConst(capacity, traj)
	return Solution{
		SelfSufficient: true,
		CapacityWh:     capacity,
		Trajectory:     traj,
	}
}

// lastFull returns the index of the last day the search trajectory sits
// exactly at full.
func lastFull(traj []float64) (int, bool) {
	for i := len(traj) - 1; i >= 0; i-- {
		if traj[i] == 0 {
			return i, true
		}
	}
	return 0, false
}
