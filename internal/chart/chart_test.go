package chart

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"battery-sizing/internal/backtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledger() []backtest.LedgerRow {
	day := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	return []backtest.LedgerRow{
		{Index: 0, Date: day, YieldWh: 150.123, TargetWh: 100, StoredWh: 50, SelfSufficient: true},
		{Index: 1, Date: day.AddDate(0, 0, 1), YieldWh: 0, TargetWh: 100, StoredWh: 0, DeficitWh: 50, CumDeficitWh: 50},
		{Index: 2, Date: day.AddDate(0, 0, 2), YieldWh: 400, TargetWh: 100, StoredWh: 300, ExcessWh: 1450, CumExcessWh: 1450, CumDeficitWh: 50},
	}
}

func TestFromLedger(t *testing.T) {
	c := FromLedger(2001, ledger(), false)

	assert.Equal(t, "line", c.Type)
	assert.Equal(t, []string{"2001-01-01", "2001-01-02", "2001-01-03"}, c.Data.Labels)
	require.Len(t, c.Data.Datasets, 3)
	assert.Equal(t, 150.12, *c.Data.Datasets[0].Data[0])
	assert.Equal(t, 300.0, *c.Data.Datasets[1].Data[2])
	assert.Equal(t, []string{ColorGreen, ColorRed, ColorRed}, c.Data.Datasets[2].PointBackgroundColor)
	assert.Contains(t, c.Options.Plugins.Title.Text, "2001")
	assert.NotContains(t, c.Options.Scales, AxisCumulative)
}

func TestFromLedgerShowExcess(t *testing.T) {
	c := FromLedger(2001, ledger(), true)

	require.Len(t, c.Data.Datasets, 5)
	assert.Equal(t, 1450.0, *c.Data.Datasets[3].Data[2])
	assert.Equal(t, 50.0, *c.Data.Datasets[4].Data[1])

	scale, ok := c.Options.Scales[AxisCumulative]
	require.True(t, ok)
	assert.Equal(t, 2000.0, *scale.Max)
	assert.Equal(t, 0.0, *scale.Min)
}

func TestFixedFloat64(t *testing.T) {
	assert.Equal(t, 1.24, *FixedFloat64(1.235000001, 2))
	assert.Equal(t, -3.0, *FixedFloat64(-3.04, 0))
}

func TestWritePage(t *testing.T) {
	c := FromLedger(2001, ledger(), false)

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, "burndown <2001>", c))
	out := buf.String()

	assert.Contains(t, out, "chart.js")
	assert.Contains(t, out, `id="chart0"`)
	assert.Contains(t, out, "burndown &lt;2001&gt;")
	assert.Contains(t, out, `"2001-01-03"`)

	// the chart JSON is embedded verbatim
	raw, err := json.Marshal([]Chart{c})
	require.NoError(t, err)
	assert.Contains(t, out, string(raw))
}

func TestSavePage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	path, err := SavePage(dir, 2001, FromLedger(2001, ledger(), true))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2001.html"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Energy storage burndown 2001")
}
