package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearStats is the per-year outcome of a simulation run.
type YearStats struct {
	Year int  `json:"year"`
	Mode Mode `json:"mode"`
	Days int  `json:"days"`

	SelfSufficient bool `json:"self_sufficient"`

	// Extremes keep the first day (chronologically) that reached them.
	YieldMinWh   float64   `json:"yield_min_wh"`
	YieldMinDate time.Time `json:"yield_min_date"`
	YieldMaxWh   float64   `json:"yield_max_wh"`
	YieldMaxDate time.Time `json:"yield_max_date"`

	DaysBelowTarget int     `json:"days_below_target"`
	DaysAboveTarget int     `json:"days_above_target"`
	GeneratedWh     float64 `json:"generated_wh"`

	// Capacity search only. CapacityWh is meaningless unless CapacitySolved.
	CapacitySolved bool    `json:"capacity_solved"`
	CapacityWh     float64 `json:"capacity_wh"`

	// Fixed capacity only.
	SelfSufficiencyPct float64         `json:"self_sufficiency_pct"`
	ExcessWh           float64         `json:"excess_wh"`
	DeficitWh          float64         `json:"deficit_wh"`
	SavingsWh          float64         `json:"savings_wh"`
	Savings            decimal.Decimal `json:"savings"`
}

// NewYearStats fills in the fields that do not depend on the battery.
func NewYearStats(s YearSeries, mode Mode) YearStats {
	st := YearStats{Year: s.Year, Mode: mode, Days: s.Len()}
	for i, r := range s.Records {
		if i == 0 || r.YieldWh < st.YieldMinWh {
			st.YieldMinWh = r.YieldWh
			st.YieldMinDate = r.Date
		}
		if i == 0 || r.YieldWh > st.YieldMaxWh {
			st.YieldMaxWh = r.YieldWh
			st.YieldMaxDate = r.Date
		}
		if r.MissedTarget() {
			st.DaysBelowTarget++
		} else {
			st.DaysAboveTarget++
		}
		st.GeneratedWh += r.YieldWh
	}
	return st
}
