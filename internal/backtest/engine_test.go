package backtest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"battery-sizing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// records builds consecutive days starting at start with the given yields,
// a 100 Wh target and a 50 Wh overnight share.
func records(start time.Time, yields ...float64) []model.DailyRecord {
	out := make([]model.DailyRecord, 0, len(yields))
	for i, y := range yields {
		out = append(out, model.DailyRecord{
			Date:          start.AddDate(0, 0, i),
			YieldWh:       y,
			TargetWh:      100,
			TargetNightWh: 50,
			SurplusWh:     y - 100,
		})
	}
	return out
}

func jan1(y int) time.Time {
	return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestRunCapacitySearch(t *testing.T) {
	recs := records(jan1(2020), 0, 50, 300, 0, 150)
	res, err := New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch})
	require.NoError(t, err)

	assert.Equal(t, 2020, res.YearFrom)
	assert.Equal(t, 2021, res.YearTo)
	require.Len(t, res.Years, 1)

	st := res.Years[0].Stats
	assert.True(t, st.SelfSufficient)
	assert.True(t, st.CapacitySolved)
	assert.Equal(t, 200.0, st.CapacityWh)
	assert.Equal(t, 3, st.DaysBelowTarget)
	assert.Equal(t, 2, st.DaysAboveTarget)

	var stored []float64
	for _, r := range res.Years[0].Ledger {
		stored = append(stored, r.StoredWh)
	}
	assert.Equal(t, []float64{50, 0, 200, 100, 150}, stored)

	assert.Equal(t, 1, res.Summary.Years)
	assert.Equal(t, 1, res.Summary.SelfSufficientYears)
	assert.Equal(t, 200.0, res.Summary.AvgCapacityWh)
}

func TestRunFixedCapacity(t *testing.T) {
	recs := records(jan1(2020), 0, 50, 300, 0, 150)
	res, err := New(nil).Run(recs, RunOptions{
		Mode:       model.ModeFixedCapacity,
		CapacityWh: 300,
		Prices:     model.Prices{SellPerKWh: 0.0623, BuyPerKWh: 0.39},
	})
	require.NoError(t, err)
	require.Len(t, res.Years, 1)

	st := res.Years[0].Stats
	assert.False(t, st.SelfSufficient)
	assert.False(t, st.CapacitySolved)
	assert.InDelta(t, 60.0, st.SelfSufficiencyPct, 1e-9)
	assert.Equal(t, 500.0, st.DeficitWh)
	assert.Equal(t, 350.0, st.SavingsWh)

	ledger := res.Years[0].Ledger
	require.Len(t, ledger, 5)
	assert.Equal(t, []float64{300, 350, 350, 500, 500}, []float64{
		ledger[0].CumDeficitWh, ledger[1].CumDeficitWh, ledger[2].CumDeficitWh, ledger[3].CumDeficitWh, ledger[4].CumDeficitWh,
	})
	assert.True(t, ledger[2].SelfSufficient)
}

func TestRunSkipsEmptyYears(t *testing.T) {
	recs := append(records(jan1(2018), 200, 200, 50), records(jan1(2020), 200, 50, 200)...)
	res, err := New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch})
	require.NoError(t, err)

	assert.Equal(t, 2018, res.YearFrom)
	assert.Equal(t, 2021, res.YearTo)
	require.Len(t, res.Years, 2)
	assert.Equal(t, 2018, res.Years[0].Stats.Year)
	assert.Equal(t, 2020, res.Years[1].Stats.Year)

	_, ok := res.Year(2019)
	assert.False(t, ok)
	yr, ok := res.Year(2020)
	require.True(t, ok)
	assert.Len(t, yr.Ledger, 3)

	// 2019 is not part of any denominator.
	assert.Equal(t, 2, res.Summary.Years)
	assert.Len(t, res.Stats(), 2)
}

func TestRunYearWindow(t *testing.T) {
	recs := append(records(jan1(2018), 200, 200), records(jan1(2019), 200, 50)...)
	recs = append(recs, records(jan1(2020), 50, 200)...)

	res, err := New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch, YearFrom: 2019, YearTo: 2020})
	require.NoError(t, err)
	require.Len(t, res.Years, 1)
	assert.Equal(t, 2019, res.Years[0].Stats.Year)

	res, err = New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch, YearFrom: 2030, YearTo: 2031})
	require.NoError(t, err)
	assert.Empty(t, res.Years)
	assert.Zero(t, res.Summary.Years)
}

func TestRunWideWindowNarrowsToData(t *testing.T) {
	recs := records(jan1(2020), 0, 50, 300, 0, 150)
	res, err := New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch, YearFrom: 1, YearTo: 200000000})
	require.NoError(t, err)

	assert.Equal(t, 2020, res.YearFrom)
	assert.Equal(t, 2021, res.YearTo)
	require.Len(t, res.Years, 1)
	assert.Equal(t, 200.0, res.Years[0].Stats.CapacityWh)

	res, err = New(nil).Run(recs, RunOptions{Mode: model.ModeFixedCapacity, YearFrom: 1990, YearTo: 1995})
	require.NoError(t, err)
	assert.Empty(t, res.Years)
	assert.Equal(t, res.YearFrom, res.YearTo)
}

func TestRunSummerOnly(t *testing.T) {
	start := time.Date(2020, 4, 29, 0, 0, 0, 0, time.UTC)
	recs := records(start, 0, 0, 300, 300, 0)
	res, err := New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch, SummerOnly: true})
	require.NoError(t, err)
	require.Len(t, res.Years, 1)

	// April 29 and 30 are dropped; May 1 starts the series.
	ledger := res.Years[0].Ledger
	require.Len(t, ledger, 3)
	assert.Equal(t, time.May, ledger[0].Date.Month())
}

func TestRunInfeasibleYear(t *testing.T) {
	recs := records(jan1(2020), 90, 80, 105, 70)
	res, err := New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch})
	require.NoError(t, err)
	require.Len(t, res.Years, 1)
	assert.False(t, res.Years[0].Stats.SelfSufficient)
	assert.False(t, res.Years[0].Stats.CapacitySolved)
	assert.Zero(t, res.Summary.SolvedYears)
	assert.Equal(t, 1, res.Summary.Years)
}

func TestRunErrors(t *testing.T) {
	_, err := New(nil).Run(nil, RunOptions{Mode: model.ModeCapacitySearch})
	assert.ErrorIs(t, err, ErrNoRecords)

	recs := records(jan1(2020), 100, 100)
	recs[0], recs[1] = recs[1], recs[0]
	_, err = New(nil).Run(recs, RunOptions{Mode: model.ModeCapacitySearch})
	assert.ErrorIs(t, err, ErrUnordered)
	var oe *model.OrderError
	assert.True(t, errors.As(err, &oe))

	_, err = New(nil).Run(records(jan1(2020), 100), RunOptions{Mode: "oracle"})
	assert.Error(t, err)

	_, err = New(nil).Run(records(jan1(2020), 100), RunOptions{Mode: model.ModeFixedCapacity, CapacityWh: -1})
	assert.Error(t, err)
}

func TestRunDeterministic(t *testing.T) {
	recs := records(jan1(2020), 10, 500, 20, 30, 400, 0, 90, 300)
	opts := RunOptions{Mode: model.ModeFixedCapacity, CapacityWh: 250, Prices: model.Prices{SellPerKWh: 0.1, BuyPerKWh: 0.3}}

	a, err := New(nil).Run(recs, opts)
	require.NoError(t, err)
	b, err := New(nil).Run(recs, opts)
	require.NoError(t, err)
	assert.Equal(t, a.Years, b.Years)
	assert.Equal(t, a.Summary, b.Summary)
}

func TestLedgerCSV(t *testing.T) {
	recs := records(jan1(2020), 0, 50, 300)
	res, err := New(nil).Run(recs, RunOptions{Mode: model.ModeFixedCapacity, CapacityWh: 300})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeLedgerCSV(&buf, res.Years[0].Ledger))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, ledgerHeader, rows[0])
	assert.Equal(t, "2020-01-03", rows[3][1])
	assert.Equal(t, "200.000000", rows[3][7])
	assert.Equal(t, "true", rows[3][8])

	dir := t.TempDir()
	paths, err := WriteResultCSV(filepath.Join(dir, "ledger"), res)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "ledger", "2020.csv")}, paths)
	raw, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "cum_deficit_wh")
}
