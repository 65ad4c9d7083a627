/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/api/middleware
 * - backend/internal/services
 */

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/scrimline-project/backend/internal/api/handlers"
	"github.com/scrimline-project/backend/internal/api/middleware"
	"github.com/scrimline-project/backend/internal/config"
	"github.com/scrimline-project/backend/internal/services"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// 1. Initialize Services
	matchService := services.NewMatchService(db, rdb)
	analyticsService := services.NewAnalyticsService(db)
	ingestService := services.NewIngestService(db, rdb)

	// 2. Initialize Handlers
	matchHandler := handlers.NewMatchHandler(matchService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	sourceHandler := handlers.NewSourceHandler(matchService)
	ingestHandler := handlers.NewIngestHandler(ingestService)

	// 3. Define Routes
	apiGroup := app.Group("/api")
	v1 := apiGroup.Group("/v1")

	// Public Routes
	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Match Routes (Public)
	matches := v1.Group("/matches")
	matches.Get("/", matchHandler.GetMatches)
	matches.Get("/:id", matchHandler.GetMatch)
	matches.Get("/:id/comparison", analyticsHandler.GetComparison)
	matches.Get("/:id/value-bets", analyticsHandler.GetValueBets)

	// Source Routes (Public)
	v1.Get("/sources", sourceHandler.ListSources)

	// Ingestion Routes (Job-secret protected)
	ingest := app.Group("/internal/ingest", middleware.JobSecret(cfg.Ingest.JobSecret))
	ingest.Post("/match", ingestHandler.IngestMatch)
}
