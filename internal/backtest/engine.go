package backtest

import (
	"errors"
	"fmt"
	"log/slog"

	"battery-sizing/internal/analysis"
	"battery-sizing/internal/burndown"
	"battery-sizing/internal/model"
)

var (
	ErrNoRecords = errors.New("no records")
	ErrUnordered = errors.New("records are not in chronological order")
)

// RunOptions selects the mode and the year window of a run.
// YearFrom/YearTo of 0 fall back to the first year present and one past the
// last year present.
type RunOptions struct {
	Mode       model.Mode
	YearFrom   int
	YearTo     int
	SummerOnly bool

	// Fixed capacity only.
	CapacityWh float64
	Prices     model.Prices
}

type Engine struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With("module", "engine")}
}

// Run simulates every year of [YearFrom, YearTo) that has records. The
// window is narrowed to the years present, so Result carries the bounds
// actually covered.
func (e *Engine) Run(records []model.DailyRecord, opts RunOptions) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if err := model.CheckOrder(records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnordered, err)
	}
	switch opts.Mode {
	case model.ModeCapacitySearch:
	case model.ModeFixedCapacity:
		if opts.CapacityWh < 0 {
			return nil, fmt.Errorf("capacity must be >= 0, got %v", opts.CapacityWh)
		}
	default:
		return nil, fmt.Errorf("unsupported mode: %q", opts.Mode)
	}

	first, last := model.YearBounds(records)
	from, to := opts.YearFrom, opts.YearTo
	if from == 0 {
		from = first
	}
	if to == 0 {
		to = last
	}
	if to < from {
		return nil, fmt.Errorf("year_to %d is before year_from %d", to, from)
	}
	// Years outside the data have nothing to simulate.
	from, to = max(from, first), min(to, last)
	if to < from {
		to = from
	}

	byYear := model.SplitByYear(records)
	res := &Result{Mode: opts.Mode, YearFrom: from, YearTo: to}
	var stats []model.YearStats

	for y := from; y < to; y++ {
		series := byYear[y]
		series.Year = y
		if opts.SummerOnly {
			series = series.Summer()
		}
		if series.Len() == 0 {
			e.logger.Debug("skipping year without records", slog.Int("year", y))
			continue
		}

		yr := runYear(series, opts)
		e.logger.Debug("year done",
			slog.Int("year", y),
			slog.Int("days", series.Len()),
			slog.Bool("self_sufficient", yr.Stats.SelfSufficient))
		res.Years = append(res.Years, yr)
		stats = append(stats, yr.Stats)
	}

	res.Summary = analysis.Summarize(stats)
	return res, nil
}

func runYear(s model.YearSeries, opts RunOptions) YearResult {
	st := model.NewYearStats(s, opts.Mode)

	switch opts.Mode {
	case model.ModeFixedCapacity:
		ev := burndown.Evaluate(s, opts.CapacityWh, opts.Prices)
		st.SelfSufficient = ev.SelfSufficientDays == s.Len()
		st.SelfSufficiencyPct = ev.SelfSufficiencyPct
		st.ExcessWh = ev.ExcessWh
		st.DeficitWh = ev.DeficitWh
		st.SavingsWh = ev.SavingsWh
		st.Savings = ev.Savings
		return YearResult{Stats: st, Ledger: fixedLedger(s, ev)}

	default:
		sol := burndown.SolveMinCapacity(s.Surpluses())
		st.SelfSufficient = sol.SelfSufficient
		if sol.SelfSufficient {
			st.CapacitySolved = true
			st.CapacityWh = sol.CapacityWh
		}
		return YearResult{Stats: st, Ledger: searchLedger(s, sol)}
	}
}
