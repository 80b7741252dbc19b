package config

import (
	"os"
	"path/filepath"
	"testing"

	"battery-sizing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	p := c.PlantParams()
	assert.Equal(t, 0.16, p.EfficiencyCoefficient)
	assert.Equal(t, 12.0, p.PanelAreaM2)
	assert.Equal(t, 4000.0, p.TargetWh())
	assert.Equal(t, 10000.0, c.Battery.CapacityWh)
	assert.Equal(t, model.Prices{SellPerKWh: 0.0623, BuyPerKWh: 0.39}, c.ModelPrices())
	assert.Equal(t, model.UnitKWh, c.Unit())

	from, to := c.Years.Bounds()
	assert.Zero(t, from)
	assert.Zero(t, to)
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "station.txt", "MESS_DATUM;FG_STRAHL\n")
	path := writeFile(t, dir, "sizing.yaml", `
data_file: station.txt
plant:
  panel_area_m2: 20
battery:
  capacity_wh: 5000
years:
  from: 2000
  to: 2010
output:
  units: Wh
  verbose: true
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "station.txt"), c.DataFile)
	assert.Equal(t, 20.0, c.Plant.PanelAreaM2)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.16, c.Plant.EfficiencyCoefficient)
	assert.Equal(t, 2000.0, c.Household.TargetNightWh)
	assert.Equal(t, 5000.0, c.Battery.CapacityWh)
	assert.True(t, c.Output.Verbose)
	assert.Equal(t, model.UnitWh, c.Unit())

	from, to := c.Years.Bounds()
	assert.Equal(t, 2000, from)
	assert.Equal(t, 2010, to)
}

func TestYearOverridesRange(t *testing.T) {
	y := YearsConfig{Year: 2005, From: 1990, To: 2020}
	from, to := y.Bounds()
	assert.Equal(t, 2005, from)
	assert.Equal(t, 2006, to)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "efficiency", mutate: func(c *Config) { c.Plant.EfficiencyCoefficient = 0 }},
		{name: "area", mutate: func(c *Config) { c.Plant.PanelAreaM2 = -1 }},
		{name: "target", mutate: func(c *Config) { c.Household.TargetDayWh = -5 }},
		{name: "capacity", mutate: func(c *Config) { c.Battery.CapacityWh = -1 }},
		{name: "price", mutate: func(c *Config) { c.Prices.BuyPerKWh = -0.1 }},
		{name: "year range", mutate: func(c *Config) { c.Years = YearsConfig{From: 2010, To: 2000} }},
		{name: "units", mutate: func(c *Config) { c.Output.Units = "cal" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "plant: [1, 2")
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := writeFile(t, dir, "invalid.yaml", "plant:\n  efficiency_coefficient: 2\n")
	_, err = Load(invalid)
	assert.Error(t, err)

	c, err := LoadUnchecked(invalid)
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Plant.EfficiencyCoefficient)
}

func TestMerge(t *testing.T) {
	base := *Default()
	out := Merge(base, Config{
		Plant:   PlantConfig{PanelAreaM2: 30},
		Battery: BatteryConfig{CapacityWh: 7500},
		Years:   YearsConfig{Year: 2001},
	})
	assert.Equal(t, 30.0, out.Plant.PanelAreaM2)
	assert.Equal(t, 0.16, out.Plant.EfficiencyCoefficient)
	assert.Equal(t, 7500.0, out.Battery.CapacityWh)
	assert.Equal(t, YearsConfig{Year: 2001}, out.Years)
	assert.Equal(t, base.Prices, out.Prices)

	// base is untouched
	assert.Equal(t, 12.0, base.Plant.PanelAreaM2)
}

func TestLoadExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "sizing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10000.0, c.Battery.CapacityWh)
	from, to := c.Years.Bounds()
	assert.Equal(t, 1991, from)
	assert.Equal(t, 2022, to)
	assert.Equal(t, "charts", c.Output.ChartDir)
}
