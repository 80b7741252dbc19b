package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"battery-sizing/internal/analysis"
	"battery-sizing/internal/backtest"
	"battery-sizing/internal/chart"
	"battery-sizing/internal/config"
	"battery-sizing/internal/data"
	"battery-sizing/internal/logging"
	"battery-sizing/internal/model"
	"battery-sizing/internal/report"

	"github.com/spf13/pflag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "allyear":
		err = cmdSimulate("allyear", model.ModeCapacitySearch, false, os.Args[2:])
	case "summer":
		err = cmdSimulate("summer", model.ModeCapacitySearch, true, os.Args[2:])
	case "bycapa":
		err = cmdSimulate("bycapa", model.ModeFixedCapacity, false, os.Args[2:])
	case "rank":
		err = cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli allyear --data produkt_st_tag.txt [--verbose] [--show]")
	fmt.Println("  cli summer  --data produkt_st_tag.txt --year_from 2000 --year_to 2010")
	fmt.Println("  cli bycapa  --data produkt_st_tag.txt --capa 10000 [--show_excess]")
	fmt.Println("  cli rank    --data produkt_st_tag.txt --mode fixed-capacity --by self_sufficiency")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - allyear finds the minimum battery capacity per year, summer does the same for May-August")
	fmt.Println("  - bycapa evaluates a fixed capacity: self-sufficient days, excess, deficit and savings")
	fmt.Println("  - every option can also be set in a YAML file passed with --config; flags win")
}

// options are the flags shared by all tools. Only flags set on the command
// line override the config file.
type options struct {
	fs *pflag.FlagSet

	configPath string
	dataPath   string

	effcoef     float64
	area        float64
	targetDay   float64
	targetNight float64
	capa        float64
	priceSell   float64
	priceBuy    float64

	year     int
	yearFrom int
	yearTo   int

	verbose    bool
	show       bool
	showExcess bool
	units      string
	out        string
	chartDir   string
	logLevel   string
}

func newOptions(name string) *options {
	d := config.Default()
	o := &options{fs: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	fs := o.fs

	fs.StringVar(&o.configPath, "config", "", "Path to YAML config")
	fs.StringVar(&o.dataPath, "data", d.DataFile, "Path to a DWD daily solar product (produkt_st_tag_*.txt)")

	fs.Float64Var(&o.effcoef, "effcoef", d.Plant.EfficiencyCoefficient, "Efficiency coefficient")
	fs.Float64Var(&o.area, "a", d.Plant.PanelAreaM2, "Panel area in m²")
	fs.Float64Var(&o.targetDay, "target_day", d.Household.TargetDayWh, "Energy consumption every day in Wh at daytime")
	fs.Float64Var(&o.targetNight, "target_night", d.Household.TargetNightWh, "Energy consumption every day in Wh at nighttime")
	fs.Float64Var(&o.capa, "capa", d.Battery.CapacityWh, "Size of the energy storage in Wh")
	fs.Float64Var(&o.priceSell, "price_sell", d.Prices.SellPerKWh, "kWh price for selling excess")
	fs.Float64Var(&o.priceBuy, "price_buy", d.Prices.BuyPerKWh, "kWh price for buying")

	fs.IntVar(&o.year, "year", 0, "Single year to process")
	fs.IntVar(&o.yearFrom, "year_from", 0, "First year to process (default: first year in the data)")
	fs.IntVar(&o.yearTo, "year_to", 0, "Year after the last one to process (default: last year in the data + 1)")

	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Print every year")
	fs.BoolVar(&o.show, "show", false, "Write a chart page per year")
	fs.BoolVar(&o.showExcess, "show_excess", false, "Write chart pages including cumulative excess and deficit")
	fs.StringVar(&o.units, "units", d.Output.Units, "Console energy unit: Wh, kWh or J")
	fs.StringVarP(&o.out, "out", "o", "", "Directory for per-year ledger CSV files")
	fs.StringVar(&o.chartDir, "chart-dir", d.Output.ChartDir, "Directory for chart pages")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	return o
}

// config loads --config and applies the flags the user set.
func (o *options) config() (*config.Config, error) {
	cfg, err := config.LoadUnchecked(o.configPath)
	if err != nil {
		return nil, err
	}
	changed := o.fs.Changed

	if changed("data") {
		cfg.DataFile = o.dataPath
	}
	if changed("effcoef") {
		cfg.Plant.EfficiencyCoefficient = o.effcoef
	}
	if changed("a") {
		cfg.Plant.PanelAreaM2 = o.area
	}
	if changed("target_day") {
		cfg.Household.TargetDayWh = o.targetDay
	}
	if changed("target_night") {
		cfg.Household.TargetNightWh = o.targetNight
	}
	if changed("capa") {
		cfg.Battery.CapacityWh = o.capa
	}
	if changed("price_sell") {
		cfg.Prices.SellPerKWh = o.priceSell
	}
	if changed("price_buy") {
		cfg.Prices.BuyPerKWh = o.priceBuy
	}
	if changed("year") {
		cfg.Years.Year = o.year
	}
	if changed("year_from") {
		cfg.Years.From = o.yearFrom
	}
	if changed("year_to") {
		cfg.Years.To = o.yearTo
	}
	if changed("verbose") {
		cfg.Output.Verbose = o.verbose
	}
	if changed("show") {
		cfg.Output.Show = o.show
	}
	if changed("show_excess") {
		cfg.Output.ShowExcess = o.showExcess
	}
	if changed("units") {
		cfg.Output.Units = o.units
	}
	if changed("out") {
		cfg.Output.LedgerDir = o.out
	}
	if changed("chart-dir") {
		cfg.Output.ChartDir = o.chartDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cfg *config.Config, logger *slog.Logger, mode model.Mode, summer bool) (*backtest.Result, error) {
	samples, err := data.LoadDWD(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded samples", slog.String("file", cfg.DataFile), slog.Int("samples", len(samples)))

	from, to := cfg.Years.Bounds()
	return backtest.New(logger).Run(model.Derive(samples, cfg.PlantParams()), backtest.RunOptions{
		Mode:       mode,
		YearFrom:   from,
		YearTo:     to,
		SummerOnly: summer,
		CapacityWh: cfg.Battery.CapacityWh,
		Prices:     cfg.ModelPrices(),
	})
}

func cmdSimulate(name string, mode model.Mode, summer bool, args []string) error {
	o := newOptions(name)
	if err := o.fs.Parse(args); err != nil {
		return err
	}
	cfg, err := o.config()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, o.logLevel)

	res, err := simulate(cfg, logger, mode, summer)
	if err != nil {
		return err
	}

	p := report.New(os.Stdout, cfg.Unit())
	if cfg.Output.Verbose {
		for _, yr := range res.Years {
			p.Year(yr.Stats)
		}
	}
	p.Summary(mode, res.Summary)

	if cfg.Output.LedgerDir != "" {
		paths, err := backtest.WriteResultCSV(cfg.Output.LedgerDir, res)
		if err != nil {
			return err
		}
		logger.Info("wrote ledgers", slog.Int("files", len(paths)), slog.String("dir", cfg.Output.LedgerDir))
	}

	if cfg.Output.Show || cfg.Output.ShowExcess {
		for _, yr := range res.Years {
			path, err := chart.SavePage(cfg.Output.ChartDir, yr.Stats.Year,
				chart.FromLedger(yr.Stats.Year, yr.Ledger, cfg.Output.ShowExcess))
			if err != nil {
				return err
			}
			logger.Debug("wrote chart", slog.String("path", path))
		}
		logger.Info("wrote charts", slog.Int("files", len(res.Years)), slog.String("dir", cfg.Output.ChartDir))
	}
	return nil
}

func cmdRank(args []string) error {
	o := newOptions("rank")
	modeStr := o.fs.String("mode", string(model.ModeCapacitySearch), "capacity-search or fixed-capacity")
	byStr := o.fs.String("by", string(analysis.RankByCapacity), "capacity or self_sufficiency")
	summer := o.fs.Bool("summer", false, "Restrict capacity search to May-August")
	if err := o.fs.Parse(args); err != nil {
		return err
	}

	mode, err := model.ParseMode(*modeStr)
	if err != nil {
		return err
	}
	by, err := analysis.ParseRankBy(*byStr)
	if err != nil {
		return err
	}
	cfg, err := o.config()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, o.logLevel)

	res, err := simulate(cfg, logger, mode, *summer && mode == model.ModeCapacitySearch)
	if err != nil {
		return err
	}
	report.New(os.Stdout, cfg.Unit()).Ranking(by, analysis.RankYears(res.Stats(), by))
	return nil
}
