package report

import (
	"fmt"
	"io"
	"time"

	"battery-sizing/internal/analysis"
	"battery-sizing/internal/model"

	"github.com/dustin/go-humanize"
)

// Printer writes console reports with energies expressed in Unit.
type Printer struct {
	W    io.Writer
	Unit model.Unit
}

func New(w io.Writer, unit model.Unit) *Printer {
	if unit == "" {
		unit = model.UnitKWh
	}
	return &Printer{W: w, Unit: unit}
}

// Energy formats wh in the printer unit, e.g. "1,234.5 kWh".
func (p *Printer) Energy(wh float64) string {
	return humanize.CommafWithDigits(p.Unit.Convert(wh), 2) + " " + string(p.Unit)
}

func (p *Printer) line(label string, value any) {
	fmt.Fprintf(p.W, "%-24s %v\n", label, value)
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// Year prints the detail block of one year.
func (p *Printer) Year(st model.YearStats) {
	fmt.Fprintf(p.W, "YEAR %d\n", st.Year)
	fmt.Fprintln(p.W, "------------------------")
	p.line("self sufficient", st.SelfSufficient)
	p.line("days", st.Days)
	p.line("yield min", p.Energy(st.YieldMinWh))
	p.line("yield min date", date(st.YieldMinDate))
	p.line("yield max", p.Energy(st.YieldMaxWh))
	p.line("yield max date", date(st.YieldMaxDate))
	p.line("days below target", st.DaysBelowTarget)
	p.line("days above target", st.DaysAboveTarget)
	p.line("generated", p.Energy(st.GeneratedWh))

	switch st.Mode {
	case model.ModeCapacitySearch:
		if st.CapacitySolved {
			p.line("min capacity", p.Energy(st.CapacityWh))
		} else {
			p.line("min capacity", "none (never full)")
		}
	case model.ModeFixedCapacity:
		p.line("self sufficiency", fmt.Sprintf("%.2f %%", st.SelfSufficiencyPct))
		p.line("excess", p.Energy(st.ExcessWh))
		p.line("deficit", p.Energy(st.DeficitWh))
		p.line("savings", p.Energy(st.SavingsWh))
		p.line("savings currency", st.Savings.StringFixed(2))
	}
	fmt.Fprintln(p.W)
}

// Summary prints the fold over all years of a run.
func (p *Printer) Summary(mode model.Mode, s analysis.Summary) {
	fmt.Fprintln(p.W, "SUMMARY")
	fmt.Fprintln(p.W, "------------------------")
	if s.Years == 0 {
		fmt.Fprintln(p.W, "no years with data")
		return
	}
	p.line("years", s.Years)
	p.line("yield min", p.Energy(s.YieldMinWh))
	p.line("yield max", p.Energy(s.YieldMaxWh))
	p.line("avg yield min", p.Energy(s.AvgYieldMinWh))
	p.line("avg yield max", p.Energy(s.AvgYieldMaxWh))
	p.line("avg yield min day", humanize.Ftoa(s.AvgYieldMinDayOfYear))
	p.line("avg yield max day", humanize.Ftoa(s.AvgYieldMaxDayOfYear))
	p.line("avg days below target", humanize.Ftoa(s.AvgDaysBelowTarget))
	p.line("avg days above target", humanize.Ftoa(s.AvgDaysAboveTarget))
	p.line("avg generated", p.Energy(s.AvgGeneratedWh))

	switch mode {
	case model.ModeCapacitySearch:
		if s.SolvedYears > 0 {
			p.line("avg capacity", p.Energy(s.AvgCapacityWh))
			p.line("max capacity", p.Energy(s.MaxCapacityWh))
		} else {
			p.line("avg capacity", "-")
		}
		p.line("num selfsufficient", fmt.Sprintf("%d of %d", s.SelfSufficientYears, s.Years))
	case model.ModeFixedCapacity:
		p.line("avg self sufficiency", fmt.Sprintf("%.2f %%", s.AvgSelfSufficiencyPct))
		p.line("avg excess", p.Energy(s.AvgExcessWh))
		p.line("avg deficit", p.Energy(s.AvgDeficitWh))
		p.line("avg savings", p.Energy(s.AvgSavingsWh))
		p.line("avg savings currency", s.AvgSavings.StringFixed(2))
		p.line("num selfsufficient", fmt.Sprintf("%d of %d", s.SelfSufficientYears, s.Years))
	}
}

// Ranking prints years worst first.
func (p *Printer) Ranking(by analysis.RankBy, ranked []analysis.RankedYear) {
	fmt.Fprintf(p.W, "%-4s %-6s %-16s %-10s %-18s\n", "rank", "year", "capacity", "self-suff", "generated")
	for _, r := range ranked {
		capacity := "-"
		if r.CapacitySolved {
			capacity = p.Energy(r.CapacityWh)
		}
		pct := "-"
		if r.Mode == model.ModeFixedCapacity {
			pct = fmt.Sprintf("%.1f%%", r.SelfSufficiencyPct)
		}
		fmt.Fprintf(p.W, "%-4d %-6d %-16s %-10s %-18s\n",
			r.Rank, r.Year, capacity, pct, p.Energy(r.GeneratedWh))
	}
	fmt.Fprintf(p.W, "(ranked by %s, worst first)\n", by)
}
