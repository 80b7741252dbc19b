package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"battery-sizing/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// DataFile is a DWD daily solar product. Relative paths are resolved
	// against the config file directory first.
	DataFile  string          `yaml:"data_file"`
	Plant     PlantConfig     `yaml:"plant"`
	Household HouseholdConfig `yaml:"household"`
	Battery   BatteryConfig   `yaml:"battery"`
	Prices    PricesConfig    `yaml:"prices"`
	Years     YearsConfig     `yaml:"years"`
	Output    OutputConfig    `yaml:"output"`
}

type PlantConfig struct {
	EfficiencyCoefficient float64 `yaml:"efficiency_coefficient"`
	PanelAreaM2           float64 `yaml:"panel_area_m2"`
}

type HouseholdConfig struct {
	TargetDayWh   float64 `yaml:"target_day_wh"`
	TargetNightWh float64 `yaml:"target_night_wh"`
}

type BatteryConfig struct {
	CapacityWh float64 `yaml:"capacity_wh"`
}

type PricesConfig struct {
	SellPerKWh float64 `yaml:"sell_per_kwh"`
	BuyPerKWh  float64 `yaml:"buy_per_kwh"`
}

// YearsConfig limits the run to [From, To). Year, if set, wins and selects
// a single year. Zero values mean "as present in the data".
type YearsConfig struct {
	Year int `yaml:"year"`
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type OutputConfig struct {
	Verbose    bool   `yaml:"verbose"`
	Show       bool   `yaml:"show"`
	ShowExcess bool   `yaml:"show_excess"`
	Units      string `yaml:"units"`
	LedgerDir  string `yaml:"ledger_dir"`
	ChartDir   string `yaml:"chart_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataFile: "produkt_st_tag_19790101_20220831_05906.txt",
		Plant: PlantConfig{
			EfficiencyCoefficient: 0.16,
			PanelAreaM2:           12,
		},
		Household: HouseholdConfig{
			TargetDayWh:   2000,
			TargetNightWh: 2000,
		},
		Battery: BatteryConfig{CapacityWh: 10000},
		Prices: PricesConfig{
			SellPerKWh: 0.0623,
			BuyPerKWh:  0.39,
		},
		Output: OutputConfig{
			Units:    string(model.UnitKWh),
			ChartDir: "charts",
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Keys missing from the file keep their default.
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.DataFile != "" && !filepath.IsAbs(c.DataFile) {
		// Prefer interpreting relative paths as relative to the config file directory,
		// but fall back to the provided path (relative to cwd) if that doesn't exist.
		cand := filepath.Join(filepath.Dir(path), c.DataFile)
		if _, err := os.Stat(cand); err == nil {
			c.DataFile = cand
		}
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.PlantParams().Validate(); err != nil {
		return fmt.Errorf("plant/household config invalid: %w", err)
	}
	if c.Battery.CapacityWh < 0 {
		return errors.New("battery.capacity_wh must be >= 0")
	}
	if err := c.ModelPrices().Validate(); err != nil {
		return fmt.Errorf("prices config invalid: %w", err)
	}
	if c.Years.Year < 0 || c.Years.From < 0 || c.Years.To < 0 {
		return errors.New("years must be >= 0")
	}
	if c.Years.From != 0 && c.Years.To != 0 && c.Years.To < c.Years.From {
		return errors.New("years.to must not be before years.from")
	}
	if _, err := model.ParseUnit(c.Output.Units); err != nil {
		return fmt.Errorf("output.units: %w", err)
	}
	return nil
}

func (c *Config) PlantParams() model.PlantParams {
	return model.PlantParams{
		EfficiencyCoefficient: c.Plant.EfficiencyCoefficient,
		PanelAreaM2:           c.Plant.PanelAreaM2,
		TargetDayWh:           c.Household.TargetDayWh,
		TargetNightWh:         c.Household.TargetNightWh,
	}
}

func (c *Config) ModelPrices() model.Prices {
	return model.Prices{
		SellPerKWh: c.Prices.SellPerKWh,
		BuyPerKWh:  c.Prices.BuyPerKWh,
	}
}

// Unit returns the console unit; Validate has already rejected bad values.
func (c *Config) Unit() model.Unit {
	u, err := model.ParseUnit(c.Output.Units)
	if err != nil {
		return model.UnitKWh
	}
	return u
}

// Bounds returns the requested [from, to) window; zeros are open ends.
func (y YearsConfig) Bounds() (from, to int) {
	if y.Year != 0 {
		return y.Year, y.Year + 1
	}
	return y.From, y.To
}

// Merge overlays non-zero fields from override onto base.
// This is used when the API applies request parameters to the server config.
func Merge(base, override Config) Config {
	out := base
	if override.DataFile != "" {
		out.DataFile = override.DataFile
	}
	if override.Plant.EfficiencyCoefficient != 0 {
		out.Plant.EfficiencyCoefficient = override.Plant.EfficiencyCoefficient
	}
	if override.Plant.PanelAreaM2 != 0 {
		out.Plant.PanelAreaM2 = override.Plant.PanelAreaM2
	}
	// Note: a zero target is valid in theory, but cannot be told apart from "unset" here.
	if override.Household.TargetDayWh != 0 {
		out.Household.TargetDayWh = override.Household.TargetDayWh
	}
	if override.Household.TargetNightWh != 0 {
		out.Household.TargetNightWh = override.Household.TargetNightWh
	}
	if override.Battery.CapacityWh != 0 {
		out.Battery.CapacityWh = override.Battery.CapacityWh
	}
	if override.Prices.SellPerKWh != 0 {
		out.Prices.SellPerKWh = override.Prices.SellPerKWh
	}
	if override.Prices.BuyPerKWh != 0 {
		out.Prices.BuyPerKWh = override.Prices.BuyPerKWh
	}
	if override.Years != (YearsConfig{}) {
		out.Years = override.Years
	}
	return out
}
