package chart

import (
	"fmt"
	"math"
	"time"

	"battery-sizing/internal/backtest"
)

const (
	ColorYellow = "#ffc107d4"
	ColorRed    = "#f44336d4"
	ColorBlue   = "#2196f3d4"
	ColorGreen  = "#4caf50d4"
	ColorGrey   = "#9e9e9ed4"

	AxisEnergy     = "YAxisEnergy"
	AxisCumulative = "YAxisCumulative"
)

func newSeries(label, color string, n int, axis string) Series {
	return Series{
		Label:       label,
		Data:        make([]*float64, n),
		BorderWidth: 1,
		Tension:     0.4,
		BorderColor: color,
		YAxisID:     axis,
	}
}

// FromLedger builds the burndown chart of one year: daily yield, stored
// energy and the consumption target, whose points are green on
// self-sufficient days. With showExcess the cumulative excess and deficit
// are added on a second axis.
func FromLedger(year int, rows []backtest.LedgerRow, showExcess bool) Chart {
	n := len(rows)
	labels := make([]string, n)
	yield := newSeries("yield (Wh)", ColorYellow, n, AxisEnergy)
	stored := newSeries("stored (Wh)", ColorBlue, n, AxisEnergy)
	stored.Fill = true
	target := newSeries("target (Wh)", ColorGrey, n, AxisEnergy)
	target.PointRadius = 2
	target.PointBackgroundColor = make([]string, n)

	var excess, deficit Series
	if showExcess {
		excess = newSeries("cumulative excess (Wh)", ColorGreen, n, AxisCumulative)
		deficit = newSeries("cumulative deficit (Wh)", ColorRed, n, AxisCumulative)
	}

	for i, r := range rows {
		labels[i] = r.Date.Format(time.DateOnly)
		yield.Data[i] = FixedFloat64(r.YieldWh, 2)
		stored.Data[i] = FixedFloat64(r.StoredWh, 2)
		target.Data[i] = FixedFloat64(r.TargetWh, 2)
		if r.SelfSufficient {
			target.PointBackgroundColor[i] = ColorGreen
		} else {
			target.PointBackgroundColor[i] = ColorRed
		}
		if showExcess {
			excess.Data[i] = FixedFloat64(r.CumExcessWh, 2)
			deficit.Data[i] = FixedFloat64(r.CumDeficitWh, 2)
		}
	}

	c := Chart{
		Type: "line",
		Data: Data{
			Labels:   labels,
			Datasets: []Series{yield, stored, target},
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Legend: Label{Display: true},
				Title:  Label{Display: true, Text: fmt.Sprintf("Energy storage burndown %d", year)},
			},
			Scales: map[string]Axis{
				AxisEnergy: {
					Type:     "linear",
					Position: "left",
					Title:    Label{Display: true, Text: "Energy (Wh)", Color: ColorBlue},
				},
			},
		},
	}
	if showExcess {
		c.Data.Datasets = append(c.Data.Datasets, excess, deficit)
		c.Options.Scales[AxisCumulative] = Axis{
			Type:     "linear",
			Position: "right",
			Title:    Label{Display: true, Text: "Cumulative (Wh)", Color: ColorRed},
		}.Bounded(0, niceMax(rows))
	}
	return c
}

// niceMax rounds the largest cumulative value up to the next 1000 Wh.
func niceMax(rows []backtest.LedgerRow) float64 {
	m := 0.0
	for _, r := range rows {
		m = max(m, r.CumExcessWh, r.CumDeficitWh)
	}
	return math.Ceil(m/1000) * 1000
}

func (a Axis) Bounded(min, max float64) Axis {
	a.Min = &min
	a.Max = &max
	return a
}

func FixedFloat64(num float64, precision int) *float64 {
	p := math.Pow(10, float64(precision))
	rounded := math.Round(num * p)
	result := rounded / p
	return &result
}
