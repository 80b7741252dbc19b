package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"battery-sizing/internal/api/handlers"
	"battery-sizing/internal/api/middleware"
	"battery-sizing/internal/config"
	"battery-sizing/internal/data"
	"battery-sizing/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"))

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load(os.Getenv("SIZING_CONFIG"))
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	if _, err := os.Stat(cfg.DataFile); err != nil {
		logger.Warn("default data file not found, requests need a station_id", "data_file", cfg.DataFile)
	}

	var origins []string
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(origins...))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	cache := data.NewRunCache(time.Hour, 5*time.Minute)
	defer cache.Close()

	// Initialize handlers
	source := handlers.NewSampleSource(cfg.DataFile, data.DefaultStationsPath())
	runHandler := handlers.NewRunHandler(*cfg, source, cache, logger)
	modeHandler := handlers.NewModeHandler(*cfg)
	rankHandler := handlers.NewRankHandler(cache)
	stationHandler := handlers.NewStationHandler(source)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cached_runs": cache.Len()})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/modes", modeHandler.ListModes)

		api.POST("/runs", runHandler.Run)
		api.GET("/runs/:id", runHandler.Get)
		api.GET("/runs/:id/years/:year/ledger", runHandler.Ledger)
		api.GET("/runs/:id/years/:year/chart", runHandler.Chart)

		api.GET("/rank", rankHandler.RankYears)
		api.GET("/stations", stationHandler.ListStations)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting API server", "addr", addr, "data_file", cfg.DataFile)
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
