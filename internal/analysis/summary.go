package analysis

import (
	"battery-sizing/internal/model"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary folds the per-year results of a run.
// Averages are taken over the years that had data; years without records
// never reach the fold.
type Summary struct {
	Years               int `json:"years"`
	SelfSufficientYears int `json:"self_sufficient_years"`

	YieldMinWh           float64 `json:"yield_min_wh"`
	YieldMaxWh           float64 `json:"yield_max_wh"`
	AvgYieldMinWh        float64 `json:"avg_yield_min_wh"`
	AvgYieldMaxWh        float64 `json:"avg_yield_max_wh"`
	AvgYieldMinDayOfYear float64 `json:"avg_yield_min_day_of_year"`
	AvgYieldMaxDayOfYear float64 `json:"avg_yield_max_day_of_year"`

	AvgDaysBelowTarget float64 `json:"avg_days_below_target"`
	AvgDaysAboveTarget float64 `json:"avg_days_above_target"`
	AvgGeneratedWh     float64 `json:"avg_generated_wh"`

	// Capacity figures only cover years where a capacity was found.
	SolvedYears   int     `json:"solved_years"`
	AvgCapacityWh float64 `json:"avg_capacity_wh"`
	MaxCapacityWh float64 `json:"max_capacity_wh"`

	AvgSelfSufficiencyPct float64         `json:"avg_self_sufficiency_pct"`
	AvgExcessWh           float64         `json:"avg_excess_wh"`
	AvgDeficitWh          float64         `json:"avg_deficit_wh"`
	AvgSavingsWh          float64         `json:"avg_savings_wh"`
	AvgSavings            decimal.Decimal `json:"avg_savings"`
}

func Summarize(years []model.YearStats) Summary {
	s := Summary{Years: len(years)}
	if len(years) == 0 {
		return s
	}

	n := len(years)
	var (
		mins     = make([]float64, 0, n)
		maxs     = make([]float64, 0, n)
		minDays  = make([]float64, 0, n)
		maxDays  = make([]float64, 0, n)
		below    = make([]float64, 0, n)
		above    = make([]float64, 0, n)
		gen      = make([]float64, 0, n)
		pct      = make([]float64, 0, n)
		excess   = make([]float64, 0, n)
		deficit  = make([]float64, 0, n)
		savings  = make([]float64, 0, n)
		capacity []float64
		money    = decimal.Zero
	)
	for _, y := range years {
		if y.SelfSufficient {
			s.SelfSufficientYears++
		}
		if y.CapacitySolved {
			capacity = append(capacity, y.CapacityWh)
		}
		mins = append(mins, y.YieldMinWh)
		maxs = append(maxs, y.YieldMaxWh)
		minDays = append(minDays, float64(y.YieldMinDate.YearDay()))
		maxDays = append(maxDays, float64(y.YieldMaxDate.YearDay()))
		below = append(below, float64(y.DaysBelowTarget))
		above = append(above, float64(y.DaysAboveTarget))
		gen = append(gen, y.GeneratedWh)
		pct = append(pct, y.SelfSufficiencyPct)
		excess = append(excess, y.ExcessWh)
		deficit = append(deficit, y.DeficitWh)
		savings = append(savings, y.SavingsWh)
		money = money.Add(y.Savings)
	}

	s.YieldMinWh = floats.Min(mins)
	s.YieldMaxWh = floats.Max(maxs)
	s.AvgYieldMinWh = stat.Mean(mins, nil)
	s.AvgYieldMaxWh = stat.Mean(maxs, nil)
	s.AvgYieldMinDayOfYear = stat.Mean(minDays, nil)
	s.AvgYieldMaxDayOfYear = stat.Mean(maxDays, nil)
	s.AvgDaysBelowTarget = stat.Mean(below, nil)
	s.AvgDaysAboveTarget = stat.Mean(above, nil)
	s.AvgGeneratedWh = stat.Mean(gen, nil)
	s.AvgSelfSufficiencyPct = stat.Mean(pct, nil)
	s.AvgExcessWh = stat.Mean(excess, nil)
	s.AvgDeficitWh = stat.Mean(deficit, nil)
	s.AvgSavingsWh = stat.Mean(savings, nil)
	s.AvgSavings = money.Div(decimal.NewFromInt(int64(n)))

	if len(capacity) > 0 {
		s.SolvedYears = len(capacity)
		s.AvgCapacityWh = stat.Mean(capacity, nil)
		s.MaxCapacityWh = floats.Max(capacity)
	}
	return s
}
