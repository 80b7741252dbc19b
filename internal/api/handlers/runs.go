package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"battery-sizing/internal/api/models"
	"battery-sizing/internal/backtest"
	"battery-sizing/internal/chart"
	"battery-sizing/internal/config"
	"battery-sizing/internal/data"
	"battery-sizing/internal/model"

	"github.com/gin-gonic/gin"
)

// RunHandler handles simulation runs and their cached results
type RunHandler struct {
	cfg    config.Config
	source *SampleSource
	cache  *data.RunCache
	logger *slog.Logger
}

// NewRunHandler creates a new run handler. cfg provides the defaults for
// every request parameter left unset.
func NewRunHandler(cfg config.Config, source *SampleSource, cache *data.RunCache, logger *slog.Logger) *RunHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunHandler{
		cfg:    cfg,
		source: source,
		cache:  cache,
		logger: logger.With("module", "runs"),
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// Run handles POST /api/v1/runs
func (h *RunHandler) Run(c *gin.Context) {
	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_MODE", err.Error())
		return
	}
	if req.Options.SummerOnly && mode != model.ModeCapacitySearch {
		respondError(c, http.StatusBadRequest, "INVALID_OPTIONS", "summer_only requires mode capacity-search")
		return
	}
	if req.StationID != "" {
		if _, err := data.NormalizeStationID(req.StationID); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_STATION", err.Error())
			return
		}
	}

	cfg := h.buildConfig(req)
	if err := cfg.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return
	}

	samples, err := h.source.Samples(req.StationID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			respondError(c, http.StatusNotFound, "STATION_NOT_FOUND", err.Error())
			return
		}
		h.logger.Error("loading samples", slog.String("station", req.StationID), slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "DATA_LOAD_ERROR", err.Error())
		return
	}

	from, to := cfg.Years.Bounds()
	engine := backtest.New(h.logger)
	result, err := engine.Run(model.Derive(samples, cfg.PlantParams()), backtest.RunOptions{
		Mode:       mode,
		YearFrom:   from,
		YearTo:     to,
		SummerOnly: req.Options.SummerOnly,
		CapacityWh: cfg.Battery.CapacityWh,
		Prices:     cfg.ModelPrices(),
	})
	if err != nil {
		if errors.Is(err, backtest.ErrNoRecords) || errors.Is(err, backtest.ErrUnordered) {
			respondError(c, http.StatusUnprocessableEntity, "INVALID_DATA", err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "RUN_ERROR", err.Error())
		return
	}

	id := h.cache.Put(result)
	h.logger.Info("run finished",
		slog.String("id", id),
		slog.String("mode", string(mode)),
		slog.Int("years", len(result.Years)))

	c.JSON(http.StatusOK, buildResponse(id, result, req.Options.IncludeLedger))
}

// Get handles GET /api/v1/runs/:id
func (h *RunHandler) Get(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.cache.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "RUN_NOT_FOUND", "run "+id+" not found or expired")
		return
	}
	c.JSON(http.StatusOK, buildResponse(id, result, false))
}

// Ledger handles GET /api/v1/runs/:id/years/:year/ledger
// ?format=csv returns the ledger as CSV.
func (h *RunHandler) Ledger(c *gin.Context) {
	id, yr, ok := h.lookupYear(c)
	if !ok {
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename="+strconv.Itoa(yr.Stats.Year)+".csv")
		c.Status(http.StatusOK)
		if err := backtest.EncodeLedgerCSV(c.Writer, yr.Ledger); err != nil {
			h.logger.Error("encoding ledger", slog.Any("error", err))
		}
		return
	}

	c.JSON(http.StatusOK, models.LedgerResponse{
		RunID:  id,
		Year:   yr.Stats.Year,
		Ledger: toLedgerRows(yr.Ledger),
	})
}

// Chart handles GET /api/v1/runs/:id/years/:year/chart
// ?show_excess=true adds the cumulative excess and deficit, ?format=html
// returns a standalone page.
func (h *RunHandler) Chart(c *gin.Context) {
	_, yr, ok := h.lookupYear(c)
	if !ok {
		return
	}

	showExcess, _ := strconv.ParseBool(c.Query("show_excess"))
	ch := chart.FromLedger(yr.Stats.Year, yr.Ledger, showExcess)

	if c.Query("format") == "html" {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := chart.WritePage(c.Writer, ch.Options.Plugins.Title.Text, ch); err != nil {
			h.logger.Error("rendering chart page", slog.Any("error", err))
		}
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *RunHandler) lookupYear(c *gin.Context) (string, backtest.YearResult, bool) {
	id := c.Param("id")
	result, ok := h.cache.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "RUN_NOT_FOUND", "run "+id+" not found or expired")
		return "", backtest.YearResult{}, false
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_YEAR", "year must be an integer")
		return "", backtest.YearResult{}, false
	}
	yr, ok := result.Year(year)
	if !ok {
		respondError(c, http.StatusNotFound, "YEAR_NOT_FOUND", "run has no records for year "+c.Param("year"))
		return "", backtest.YearResult{}, false
	}
	return id, yr, true
}

func (h *RunHandler) buildConfig(req models.RunRequest) config.Config {
	return config.Merge(h.cfg, config.Config{
		Plant: config.PlantConfig{
			EfficiencyCoefficient: req.Plant.EfficiencyCoefficient,
			PanelAreaM2:           req.Plant.PanelAreaM2,
		},
		Household: config.HouseholdConfig{
			TargetDayWh:   req.Household.TargetDayWh,
			TargetNightWh: req.Household.TargetNightWh,
		},
		Battery: config.BatteryConfig{CapacityWh: req.Battery.CapacityWh},
		Prices: config.PricesConfig{
			SellPerKWh: req.Prices.SellPerKWh,
			BuyPerKWh:  req.Prices.BuyPerKWh,
		},
		Years: config.YearsConfig{
			Year: req.Years.Year,
			From: req.Years.From,
			To:   req.Years.To,
		},
	})
}

func buildResponse(id string, result *backtest.Result, includeLedger bool) models.RunResponse {
	resp := models.RunResponse{
		ID:       id,
		Status:   "completed",
		Mode:     result.Mode,
		YearFrom: result.YearFrom,
		YearTo:   result.YearTo,
		Years:    result.Stats(),
		Summary:  result.Summary,
	}
	if includeLedger {
		resp.Ledgers = make(map[int][]models.LedgerRow, len(result.Years))
		for _, yr := range result.Years {
			resp.Ledgers[yr.Stats.Year] = toLedgerRows(yr.Ledger)
		}
	}
	return resp
}

func toLedgerRows(ledger []backtest.LedgerRow) []models.LedgerRow {
	rows := make([]models.LedgerRow, len(ledger))
	for i, r := range ledger {
		rows[i] = models.LedgerRow{
			Index:          r.Index,
			Date:           r.Date,
			IrradianceWhM2: r.IrradianceWhM2,
			SunshineHours:  r.SunshineHours,
			YieldWh:        r.YieldWh,
			TargetWh:       r.TargetWh,
			SurplusWh:      r.SurplusWh,
			StoredWh:       r.StoredWh,
			SelfSufficient: r.SelfSufficient,
			ExcessWh:       r.ExcessWh,
			DeficitWh:      r.DeficitWh,
			SavingsWh:      r.SavingsWh,
			CumExcessWh:    r.CumExcessWh,
			CumDeficitWh:   r.CumDeficitWh,
		}
	}
	return rows
}
