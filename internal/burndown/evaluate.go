package burndown

import (
	"battery-sizing/internal/model"

	"github.com/shopspring/decimal"
)

// DayOutcome is the classification of one day for a fixed battery.
type DayOutcome struct {
	StoredWh       float64
	SelfSufficient bool
	ExcessWh       float64
	DeficitWh      float64
	SavingsWh      float64
}

// Evaluation is the result of simulating one year with a fixed battery.
type Evaluation struct {
	CapacityWh float64
	Trajectory []float64
	Days       []DayOutcome

	SelfSufficientDays int
	SelfSufficiencyPct float64

	ExcessWh  float64
	DeficitWh float64
	SavingsWh float64
	Savings   decimal.Decimal
}

// Evaluate simulates a battery of capacityWh that starts empty.
//
// A day is self-sufficient when the charge left from the previous day plus
// today's yield covers the full daily target and the charge at the end of the
// day still covers the overnight target. Excess looks at the previous day's
// charge, deficit at the next day's; the last day has no successor and
// contributes no deficit.
func Evaluate(s model.YearSeries, capacityWh float64, prices model.Prices) Evaluation {
	traj := Accumulate(0, s.Surpluses(), FixedPolicy(capacityWh))
	ev := Evaluation{
		CapacityWh: capacityWh,
		Trajectory: traj,
		Days:       make([]DayOutcome, len(traj)),
	}

	for i, r := range s.Records {
		prev := 0.0
		if i > 0 {
			prev = traj[i-1]
		}
		d := DayOutcome{StoredWh: traj[i]}
		d.SelfSufficient = prev+r.YieldWh > r.TargetWh && traj[i] > r.TargetNightWh
		d.ExcessWh = max(0, prev+r.YieldWh-capacityWh)
		if i+1 < len(traj) {
			d.DeficitWh = max(0, -(traj[i+1] + r.YieldWh - capacityWh))
		}
		if d.SelfSufficient {
			d.SavingsWh = r.TargetWh
			ev.SelfSufficientDays++
		} else {
			d.SavingsWh = r.YieldWh
		}

		ev.ExcessWh += d.ExcessWh
		ev.DeficitWh += d.DeficitWh
		ev.SavingsWh += d.SavingsWh
		ev.Days[i] = d
	}

	if n := len(traj); n > 0 {
		ev.SelfSufficiencyPct = float64(ev.SelfSufficientDays) / float64(n) * 100
	}
	ev.Savings = prices.Value(ev.ExcessWh, ev.SavingsWh)
	return ev
}
