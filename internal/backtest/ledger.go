package backtest

import (
	"time"

	"battery-sizing/internal/analysis"
	"battery-sizing/internal/burndown"
	"battery-sizing/internal/model"
)

// LedgerRow is one day of per-year output.
// This is the primary artifact for "what happened" in a year.
type LedgerRow struct {
	Index int
	Date  time.Time

	IrradianceWhM2 float64
	SunshineHours  float64

	YieldWh   float64
	TargetWh  float64
	SurplusWh float64

	// StoredWh is the battery level at the end of the day. In capacity search
	// it is measured from empty once a capacity is found, and as the deficit
	// below full otherwise.
	StoredWh float64

	// Fixed capacity only.
	SelfSufficient bool
	ExcessWh       float64
	DeficitWh      float64
	SavingsWh      float64
	CumExcessWh    float64
	CumDeficitWh   float64
}

type YearResult struct {
	Stats  model.YearStats
	Ledger []LedgerRow
}

type Result struct {
	Mode     model.Mode
	YearFrom int
	YearTo   int
	Years    []YearResult
	Summary  analysis.Summary
}

// Year returns the result for y, if that year had records.
func (r *Result) Year(y int) (YearResult, bool) {
	for _, yr := range r.Years {
		if yr.Stats.Year == y {
			return yr, true
		}
	}
	return YearResult{}, false
}

// Stats returns the per-year stats in year order.
func (r *Result) Stats() []model.YearStats {
	out := make([]model.YearStats, 0, len(r.Years))
	for _, yr := range r.Years {
		out = append(out, yr.Stats)
	}
	return out
}

func baseRow(i int, r model.DailyRecord) LedgerRow {
	return LedgerRow{
		Index:          i,
		Date:           r.Date,
		IrradianceWhM2: r.IrradianceWhM2,
		SunshineHours:  r.SunshineHours,
		YieldWh:        r.YieldWh,
		TargetWh:       r.TargetWh,
		SurplusWh:      r.SurplusWh,
	}
}

func searchLedger(s model.YearSeries, sol burndown.Solution) []LedgerRow {
	rows := make([]LedgerRow, 0, s.Len())
	for i, r := range s.Records {
		row := baseRow(i, r)
		row.StoredWh = sol.Trajectory[i]
		rows = append(rows, row)
	}
	return rows
}

func fixedLedger(s model.YearSeries, ev burndown.Evaluation) []LedgerRow {
	rows := make([]LedgerRow, 0, s.Len())
	cumExcess, cumDeficit := 0.0, 0.0
	for i, r := range s.Records {
		d := ev.Days[i]
		cumExcess += d.ExcessWh
		cumDeficit += d.DeficitWh

		row := baseRow(i, r)
		row.StoredWh = d.StoredWh
		row.SelfSufficient = d.SelfSufficient
		row.ExcessWh = d.ExcessWh
		row.DeficitWh = d.DeficitWh
		row.SavingsWh = d.SavingsWh
		row.CumExcessWh = cumExcess
		row.CumDeficitWh = cumDeficit
		rows = append(rows, row)
	}
	return rows
}
