package analysis

import (
	"testing"
	"time"

	"battery-sizing/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Years)
	assert.Zero(t, s.AvgCapacityWh)
	assert.True(t, s.AvgSavings.IsZero())
}

func TestSummarizeCapacity(t *testing.T) {
	years := []model.YearStats{
		{
			Year: 2001, SelfSufficient: true, CapacitySolved: true, CapacityWh: 1000,
			YieldMinWh: 100, YieldMinDate: date(2001, 1, 10), YieldMaxWh: 9000, YieldMaxDate: date(2001, 6, 20),
			DaysBelowTarget: 100, DaysAboveTarget: 265, GeneratedWh: 1e6,
		},
		{
			// Infeasible: counted in Years, excluded from capacity figures.
			Year: 2002, SelfSufficient: false,
			YieldMinWh: 50, YieldMinDate: date(2002, 1, 20), YieldMaxWh: 8000, YieldMaxDate: date(2002, 7, 1),
			DaysBelowTarget: 200, DaysAboveTarget: 165, GeneratedWh: 8e5,
		},
		{
			Year: 2003, SelfSufficient: true, CapacitySolved: true, CapacityWh: 3000,
			YieldMinWh: 150, YieldMinDate: date(2003, 1, 30), YieldMaxWh: 9500, YieldMaxDate: date(2003, 6, 30),
			DaysBelowTarget: 150, DaysAboveTarget: 215, GeneratedWh: 9e5,
		},
	}

	s := Summarize(years)
	assert.Equal(t, 3, s.Years)
	assert.Equal(t, 2, s.SelfSufficientYears)
	assert.Equal(t, 2, s.SolvedYears)
	assert.InDelta(t, 2000.0, s.AvgCapacityWh, 1e-9)
	assert.Equal(t, 3000.0, s.MaxCapacityWh)

	assert.Equal(t, 50.0, s.YieldMinWh)
	assert.Equal(t, 9500.0, s.YieldMaxWh)
	assert.InDelta(t, 100.0, s.AvgYieldMinWh, 1e-9)
	assert.InDelta(t, 20.0, s.AvgYieldMinDayOfYear, 1e-9)
	assert.InDelta(t, 150.0, s.AvgDaysBelowTarget, 1e-9)
	assert.InDelta(t, 215.0, s.AvgDaysAboveTarget, 1e-9)
	assert.InDelta(t, 9e5, s.AvgGeneratedWh, 1e-6)
}

func TestSummarizeFixed(t *testing.T) {
	years := []model.YearStats{
		{Year: 2010, SelfSufficiencyPct: 80, ExcessWh: 1000, DeficitWh: 500, SavingsWh: 3000, Savings: decimal.RequireFromString("1.50"),
			YieldMinDate: date(2010, 1, 1), YieldMaxDate: date(2010, 1, 1)},
		{Year: 2011, SelfSufficiencyPct: 100, SelfSufficient: true, ExcessWh: 3000, DeficitWh: 0, SavingsWh: 5000, Savings: decimal.RequireFromString("2.50"),
			YieldMinDate: date(2011, 1, 1), YieldMaxDate: date(2011, 1, 1)},
	}

	s := Summarize(years)
	assert.Equal(t, 1, s.SelfSufficientYears)
	assert.Zero(t, s.SolvedYears)
	assert.InDelta(t, 90.0, s.AvgSelfSufficiencyPct, 1e-9)
	assert.InDelta(t, 2000.0, s.AvgExcessWh, 1e-9)
	assert.InDelta(t, 250.0, s.AvgDeficitWh, 1e-9)
	assert.InDelta(t, 4000.0, s.AvgSavingsWh, 1e-9)
	assert.True(t, decimal.RequireFromString("2").Equal(s.AvgSavings), s.AvgSavings.String())
}

func TestRankYears(t *testing.T) {
	years := []model.YearStats{
		{Year: 2001, CapacitySolved: true, CapacityWh: 1000, SelfSufficiencyPct: 90},
		{Year: 2002, CapacitySolved: false, SelfSufficiencyPct: 70},
		{Year: 2003, CapacitySolved: true, CapacityWh: 3000, SelfSufficiencyPct: 70},
		{Year: 2004, CapacitySolved: true, CapacityWh: 1000, SelfSufficiencyPct: 95},
	}

	t.Run("capacity", func(t *testing.T) {
		got := RankYears(years, RankByCapacity)
		require.Len(t, got, 4)
		var order []int
		for i, r := range got {
			assert.Equal(t, i+1, r.Rank)
			order = append(order, r.Year)
		}
		assert.Equal(t, []int{2002, 2003, 2001, 2004}, order)
	})

	t.Run("self sufficiency", func(t *testing.T) {
		got := RankYears(years, RankBySelfSufficiency)
		var order []int
		for _, r := range got {
			order = append(order, r.Year)
		}
		assert.Equal(t, []int{2002, 2003, 2001, 2004}, order)
	})

	_, err := ParseRankBy("profit")
	assert.Error(t, err)
}
