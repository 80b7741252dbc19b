package models

import (
	"time"

	"battery-sizing/internal/analysis"
	"battery-sizing/internal/model"
)

// RunResponse represents the response from a simulation run
type RunResponse struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Mode     model.Mode        `json:"mode"`
	YearFrom int               `json:"year_from"`
	YearTo   int               `json:"year_to"`
	Years    []model.YearStats `json:"years"`
	Summary  analysis.Summary  `json:"summary"`
	// Keyed by year, only with include_ledger.
	Ledgers map[int][]LedgerRow `json:"ledgers,omitempty"`
}

// LedgerRow represents one day in a year ledger
type LedgerRow struct {
	Index          int       `json:"index"`
	Date           time.Time `json:"date"`
	IrradianceWhM2 float64   `json:"irradiance_wh_m2"`
	SunshineHours  float64   `json:"sunshine_hours"`
	YieldWh        float64   `json:"yield_wh"`
	TargetWh       float64   `json:"target_wh"`
	SurplusWh      float64   `json:"surplus_wh"`
	StoredWh       float64   `json:"stored_wh"`
	SelfSufficient bool      `json:"self_sufficient"`
	ExcessWh       float64   `json:"excess_wh"`
	DeficitWh      float64   `json:"deficit_wh"`
	SavingsWh      float64   `json:"savings_wh"`
	CumExcessWh    float64   `json:"cum_excess_wh"`
	CumDeficitWh   float64   `json:"cum_deficit_wh"`
}

// LedgerResponse is the ledger of one year of a run
type LedgerResponse struct {
	RunID  string      `json:"run_id"`
	Year   int         `json:"year"`
	Ledger []LedgerRow `json:"ledger"`
}

// RankResponse represents the response from ranking years
type RankResponse struct {
	RunID    string                `json:"run_id"`
	By       analysis.RankBy       `json:"by"`
	Rankings []analysis.RankedYear `json:"rankings"`
}

// ModeInfo represents information about a simulation mode
type ModeInfo struct {
	Name        model.Mode      `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a mode parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "bool"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// StationInfo represents a downloaded DWD station
type StationInfo struct {
	ID        string `json:"id"`
	Samples   int    `json:"samples"`
	FirstDate string `json:"first_date,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
