package models

// RunRequest represents the request body for a simulation run.
// Zero-valued parameters fall back to the server configuration.
type RunRequest struct {
	Mode      string `json:"mode" binding:"required"` // "capacity-search" or "fixed-capacity"
	StationID string `json:"station_id,omitempty"`    // empty: server default data file

	Plant     PlantConfig     `json:"plant,omitempty"`
	Household HouseholdConfig `json:"household,omitempty"`
	Battery   BatteryConfig   `json:"battery,omitempty"`
	Prices    PricesConfig    `json:"prices,omitempty"`
	Years     YearsConfig     `json:"years,omitempty"`
	Options   RunOptions      `json:"options,omitempty"`
}

type PlantConfig struct {
	EfficiencyCoefficient float64 `json:"efficiency_coefficient"`
	PanelAreaM2           float64 `json:"panel_area_m2"`
}

type HouseholdConfig struct {
	TargetDayWh   float64 `json:"target_day_wh"`
	TargetNightWh float64 `json:"target_night_wh"`
}

type BatteryConfig struct {
	CapacityWh float64 `json:"capacity_wh"`
}

type PricesConfig struct {
	SellPerKWh float64 `json:"sell_per_kwh"`
	BuyPerKWh  float64 `json:"buy_per_kwh"`
}

type YearsConfig struct {
	Year int `json:"year,omitempty"`
	From int `json:"from,omitempty"`
	To   int `json:"to,omitempty"`
}

// RunOptions contains optional run parameters
type RunOptions struct {
	SummerOnly    bool `json:"summer_only,omitempty"`    // capacity search over May-August
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// RankRequest ranks the years of a cached run.
type RankRequest struct {
	RunID string `form:"run_id" binding:"required"`
	By    string `form:"by"`    // default: capacity
	Limit int    `form:"limit"` // 0 = all
}
