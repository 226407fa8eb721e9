package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"grid-dispatch/internal/api/handlers"
	"grid-dispatch/internal/api/middleware"
	"grid-dispatch/internal/config"
	"grid-dispatch/internal/data"
)

func main() {
	cfgPath := flag.String("config", "example/config.yaml", "Path to scenario YAML config")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if path := os.Getenv("SCENARIO_CONFIG"); path != "" {
		*cfgPath = path
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *cfgPath).Msg("failed to load scenario config")
	}
	log.Info().Str("config", *cfgPath).Str("scenario", cfg.Scenario.Name).Msg("scenario loaded")

	cache := data.NewInputCache(time.Hour)
	store := handlers.NewRunStore()

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	simHandler := handlers.NewSimulationHandler(cfg, cache, store)
	datasetHandler := handlers.NewDatasetHandler(cfg, cache)
	rankHandler := handlers.NewRankHandler(cfg, cache)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simHandler.RunSimulation)
		api.GET("/runs/:id", simHandler.GetRun)
		api.GET("/runs/:id/dispatch", simHandler.GetDispatch)

		api.GET("/datasets", datasetHandler.ListDatasets)
		api.GET("/rank", rankHandler.RankYears)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
