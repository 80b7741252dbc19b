package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"battery-sizing/internal/backtest"
	"battery-sizing/internal/config"
	"battery-sizing/internal/logging"
	"battery-sizing/internal/model"
	"battery-sizing/internal/report"

	"github.com/spf13/pflag"
)

// Demo:
// - Build a synthetic year of irradiance (or load --config defaults)
// - Find the minimum battery for it
// - Evaluate a fixed battery and print the first days of its ledger
func main() {
	cfgPath := pflag.String("config", "", "Path to YAML config (optional)")
	year := pflag.Int("year", 2021, "Year of the synthetic series")
	n := pflag.Int("n", 12, "Number of ledger days to print")
	outCSV := pflag.String("out", "", "Optional path to write the fixed-capacity ledger CSV")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	logger := logging.New(os.Stderr, "warn")

	samples := syntheticYear(*year)
	records := model.Derive(samples, cfg.PlantParams())
	engine := backtest.New(logger)
	p := report.New(os.Stdout, cfg.Unit())

	search, err := engine.Run(records, backtest.RunOptions{Mode: model.ModeCapacitySearch})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Synthetic year %d: %d days, target %s per day\n\n",
		*year, len(records), p.Energy(cfg.PlantParams().TargetWh()))
	p.Year(search.Years[0].Stats)

	fixed, err := engine.Run(records, backtest.RunOptions{
		Mode:       model.ModeFixedCapacity,
		CapacityWh: cfg.Battery.CapacityWh,
		Prices:     cfg.ModelPrices(),
	})
	if err != nil {
		panic(err)
	}
	yr := fixed.Years[0]
	fmt.Printf("Fixed capacity %s\n", p.Energy(cfg.Battery.CapacityWh))
	for i := 0; i < min(*n, len(yr.Ledger)); i++ {
		r := yr.Ledger[i]
		fmt.Printf(
			"%s yield=%8.1f  surplus=%8.1f  stored=%8.1f  self=%-5t  excess=%7.1f  deficit=%7.1f\n",
			r.Date.Format(time.DateOnly),
			r.YieldWh,
			r.SurplusWh,
			r.StoredWh,
			r.SelfSufficient,
			r.ExcessWh,
			r.DeficitWh,
		)
	}
	fmt.Println()
	p.Year(yr.Stats)

	if *outCSV != "" {
		if err := backtest.WriteLedgerCSV(*outCSV, yr.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote CSV: %s\n", *outCSV)
	}
}

// syntheticYear returns a daily irradiance curve peaking in late June,
// roughly what a central European station records.
func syntheticYear(year int) []model.Sample {
	var out []model.Sample
	for d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		season := math.Sin(2 * math.Pi * float64(d.YearDay()-80) / 365)
		weather := 0.75 + 0.25*math.Cos(1.7*float64(d.YearDay()))
		irr := (2800 + 2400*season) * weather
		out = append(out, model.Sample{
			Date:           d,
			IrradianceWhM2: irr,
			SunshineHours:  math.Max(0, 7+6*season*weather),
		})
	}
	return out
}
