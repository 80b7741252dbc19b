package handlers

import (
	"fmt"
	"net/http"

	"battery-sizing/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StationHandler lists the stations fetched with fetch-station
type StationHandler struct {
	source *SampleSource
}

func NewStationHandler(source *SampleSource) *StationHandler {
	return &StationHandler{source: source}
}

// ListStations handles GET /api/v1/stations
func (h *StationHandler) ListStations(c *gin.Context) {
	list, err := h.source.Stations()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "STATIONS_LOAD_ERROR",
			fmt.Sprintf("Failed to load stations: %v", err))
		return
	}

	stations := make([]models.StationInfo, len(list.Stations))
	for i, st := range list.Stations {
		stations[i] = models.StationInfo{
			ID:        st.ID,
			Samples:   st.Samples,
			FirstDate: st.FirstDate,
			LastDate:  st.LastDate,
			UpdatedAt: st.UpdatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"stations":   stations,
		"updated_at": list.UpdatedAt,
		"count":      len(stations),
	})
}
