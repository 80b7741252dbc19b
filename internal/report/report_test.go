package report

import (
	"bytes"
	"testing"
	"time"

	"battery-sizing/internal/analysis"
	"battery-sizing/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEnergy(t *testing.T) {
	tests := []struct {
		unit model.Unit
		wh   float64
		want string
	}{
		{unit: model.UnitKWh, wh: 1234500, want: "1,234.5 kWh"},
		{unit: model.UnitKWh, wh: 4000, want: "4 kWh"},
		{unit: model.UnitWh, wh: 2500.5, want: "2,500.5 Wh"},
		{unit: model.UnitJ, wh: 1, want: "3,600 J"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p := New(&bytes.Buffer{}, tt.unit)
			assert.Equal(t, tt.want, p.Energy(tt.wh))
		})
	}
}

func TestYearCapacitySearch(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, "")
	p.Year(model.YearStats{
		Year:           2003,
		Mode:           model.ModeCapacitySearch,
		Days:           365,
		SelfSufficient: true,
		YieldMinWh:     120,
		YieldMinDate:   time.Date(2003, 12, 21, 0, 0, 0, 0, time.UTC),
		YieldMaxWh:     9000,
		YieldMaxDate:   time.Date(2003, 6, 2, 0, 0, 0, 0, time.UTC),
		CapacitySolved: true,
		CapacityWh:     312500,
	})

	out := buf.String()
	assert.Contains(t, out, "YEAR 2003")
	assert.Contains(t, out, "2003-12-21")
	assert.Contains(t, out, "312.5 kWh")
	assert.NotContains(t, out, "savings")
}

func TestYearFixedCapacity(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, model.UnitWh)
	p.Year(model.YearStats{
		Year:               2004,
		Mode:               model.ModeFixedCapacity,
		SelfSufficiencyPct: 60,
		DeficitWh:          500,
		SavingsWh:          350,
		Savings:            decimal.RequireFromString("0.1365"),
	})

	out := buf.String()
	assert.Contains(t, out, "60.00 %")
	assert.Contains(t, out, "500 Wh")
	assert.Contains(t, out, "0.14")
	assert.NotContains(t, out, "min capacity")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, model.UnitKWh)
	p.Summary(model.ModeCapacitySearch, analysis.Summary{
		Years:               3,
		SelfSufficientYears: 2,
		SolvedYears:         2,
		AvgCapacityWh:       150000,
		MaxCapacityWh:       200000,
	})

	out := buf.String()
	assert.Contains(t, out, "avg capacity")
	assert.Contains(t, out, "150 kWh")
	assert.Contains(t, out, "2 of 3")

	buf.Reset()
	p.Summary(model.ModeFixedCapacity, analysis.Summary{})
	assert.Contains(t, buf.String(), "no years with data")
}

func TestRanking(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, model.UnitKWh)
	ranked := analysis.RankYears([]model.YearStats{
		{Year: 2001, Mode: model.ModeCapacitySearch, CapacitySolved: true, CapacityWh: 1000},
		{Year: 2002, Mode: model.ModeCapacitySearch},
	}, analysis.RankByCapacity)
	p.Ranking(analysis.RankByCapacity, ranked)

	out := buf.String()
	assert.Contains(t, out, "rank")
	assert.Contains(t, out, "1 kWh")
	assert.Contains(t, out, "worst first")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("2002")), bytes.Index(buf.Bytes(), []byte("2001")))
}
