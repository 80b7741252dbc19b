package handlers

import (
	"net/http"

	"battery-sizing/internal/analysis"
	"battery-sizing/internal/api/models"
	"battery-sizing/internal/data"

	"github.com/gin-gonic/gin"
)

// RankHandler handles ranking-related requests
type RankHandler struct {
	cache *data.RunCache
}

// NewRankHandler creates a new rank handler over cached runs
func NewRankHandler(cache *data.RunCache) *RankHandler {
	return &RankHandler{cache: cache}
}

// RankYears handles GET /api/v1/rank
func (h *RankHandler) RankYears(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	by := analysis.RankByCapacity
	if req.By != "" {
		parsed, err := analysis.ParseRankBy(req.By)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_RANK_ORDER", err.Error())
			return
		}
		by = parsed
	}

	result, ok := h.cache.Get(req.RunID)
	if !ok {
		respondError(c, http.StatusNotFound, "RUN_NOT_FOUND", "run "+req.RunID+" not found or expired")
		return
	}

	ranked := analysis.RankYears(result.Stats(), by)
	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	c.JSON(http.StatusOK, models.RankResponse{
		RunID:    req.RunID,
		By:       by,
		Rankings: ranked,
	})
}
