package handlers

import (
	"net/http"

	"battery-sizing/internal/api/models"
	"battery-sizing/internal/config"
	"battery-sizing/internal/model"

	"github.com/gin-gonic/gin"
)

// ModeHandler handles mode-related requests
type ModeHandler struct {
	defaults config.Config
}

// NewModeHandler creates a new mode handler reporting defaults from cfg
func NewModeHandler(cfg config.Config) *ModeHandler {
	return &ModeHandler{defaults: cfg}
}

// ListModes handles GET /api/v1/modes
func (h *ModeHandler) ListModes(c *gin.Context) {
	d := h.defaults
	common := []models.ParameterInfo{
		{
			Name:        "plant.efficiency_coefficient",
			Type:        "float",
			Description: "Share of the irradiance the panels turn into electricity",
			Default:     d.Plant.EfficiencyCoefficient,
		},
		{
			Name:        "plant.panel_area_m2",
			Type:        "float",
			Description: "Panel area in m²",
			Default:     d.Plant.PanelAreaM2,
		},
		{
			Name:        "household.target_day_wh",
			Type:        "float",
			Description: "Daytime consumption per day in Wh",
			Default:     d.Household.TargetDayWh,
		},
		{
			Name:        "household.target_night_wh",
			Type:        "float",
			Description: "Nighttime consumption per day in Wh",
			Default:     d.Household.TargetNightWh,
		},
		{
			Name:        "years.year",
			Type:        "int",
			Description: "Single year to simulate (overrides from/to)",
		},
		{
			Name:        "years.from",
			Type:        "int",
			Description: "First year to simulate (default: first year in the data)",
		},
		{
			Name:        "years.to",
			Type:        "int",
			Description: "Year after the last one to simulate (default: last year in the data + 1)",
		},
	}

	modes := []models.ModeInfo{
		{
			Name:        model.ModeCapacitySearch,
			Description: "Finds the smallest battery that keeps the household self-sufficient for the whole year.",
			Parameters: append(append([]models.ParameterInfo{}, common...), models.ParameterInfo{
				Name:        "options.summer_only",
				Type:        "bool",
				Description: "Restrict every year to May-August",
				Default:     false,
			}),
		},
		{
			Name:        model.ModeFixedCapacity,
			Description: "Evaluates a battery of a given size: self-sufficient days, excess, deficit and savings.",
			Parameters: append(append([]models.ParameterInfo{}, common...),
				models.ParameterInfo{
					Name:        "battery.capacity_wh",
					Type:        "float",
					Description: "Battery capacity in Wh",
					Default:     d.Battery.CapacityWh,
				},
				models.ParameterInfo{
					Name:        "prices.sell_per_kwh",
					Type:        "float",
					Description: "Price paid for excess fed into the grid, per kWh",
					Default:     d.Prices.SellPerKWh,
				},
				models.ParameterInfo{
					Name:        "prices.buy_per_kwh",
					Type:        "float",
					Description: "Grid price per kWh saved by self-consumption",
					Default:     d.Prices.BuyPerKWh,
				},
			),
		},
	}

	c.JSON(http.StatusOK, gin.H{"modes": modes})
}
