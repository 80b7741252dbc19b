// Package burndown simulates the stored energy of a household battery day by
// day and derives sizing results from the resulting trajectories.
package burndown

import "math"

// Policy bounds the stored energy after each day. A missing bound is an
// infinity of the matching sign.
type Policy struct {
	Lower float64
	Upper float64
}

// SearchPolicy is used while searching for a capacity. Stored energy is
// measured relative to "full": 0 is full, negative values are the deficit
// below full, and there is no floor.
func SearchPolicy() Policy {
	return Policy{Lower: math.Inf(-1), Upper: 0}
}

// FixedPolicy models a physical battery that can neither go below empty nor
// above its rated capacity.
func FixedPolicy(capacityWh float64) Policy {
	return Policy{Lower: 0, Upper: capacityWh}
}

// Clamp applies the upper bound first, then the lower one.
func (p Policy) Clamp(c float64) float64 {
	if c > p.Upper {
		c = p.Upper
	}
	if c < p.Lower {
		c = p.Lower
	}
	return c
}

// Accumulate returns the clamped running sum of surpluses, starting from
// initial. The result has one value per surplus, and each value depends only
// on the previous one and that day's surplus.
func Accumulate(initial float64, surpluses []float64, p Policy) []float64 {
	out := make([]float64, len(surpluses))
	c := initial
	for i, s := range surpluses {
		c = p.Clamp(c + s)
		out[i] = c
	}
	return out
}
