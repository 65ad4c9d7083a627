/**
 * @description
 * Main entry point for the Scrimline Backend API.
 * Initializes the Fiber web server, loads configuration, migrates the schema,
 * and sets up routes. Metrics are served on a side listener so the scrape
 * port stays off the public surface.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: Web framework
 * - backend/internal/config: Config loader
 * - backend/internal/db: Database connections
 *
 * @notes
 * - Connects to Postgres and Redis on startup.
 * - Seeds the provider registry from SOURCE_TYPES.
 */

package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/scrimline-project/backend/internal/api"
	"github.com/scrimline-project/backend/internal/config"
	"github.com/scrimline-project/backend/internal/db"
	"github.com/scrimline-project/backend/internal/logger"
	"github.com/scrimline-project/backend/internal/metrics"
	"github.com/scrimline-project/backend/internal/store"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetEnv(cfg.Server.Env)

	// 2. Initialize Database Connections
	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	if err := db.AutoMigrate(pgDB); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// 3. Seed the provider registry
	st := store.New(pgDB)
	for _, name := range cfg.Ingest.Sources {
		if _, err := st.RegisterSource(context.Background(), name, name); err != nil {
			log.Fatalf("Failed to register source %q: %v", name, err)
		}
	}

	// 4. Metrics side listener
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			logger.Info("metrics listening on :%s", cfg.Metrics.Port)
			if err := http.ListenAndServe(":"+cfg.Metrics.Port, mux); err != nil {
				logger.Error("metrics listener stopped: %v", err)
			}
		}()
	}

	// 5. Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName:       "Scrimline Backend",
		StrictRouting: true,
		CaseSensitive: true,
	})

	// 6. Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Job-Secret",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// 7. Routes
	api.SetupRoutes(app, pgDB, redisClient, cfg)

	// 8. Start Server
	log.Printf("Starting Scrimline Backend on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
