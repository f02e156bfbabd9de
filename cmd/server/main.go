package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/router"
	"github.com/pulsefeed/backend/pkg/config"
	"github.com/pulsefeed/backend/pkg/logger"
	"github.com/pulsefeed/backend/validators"
)

func main() {
	// Load environment variables from .env file, if present
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)

	// Pick the storage backend
	var repos *router.Repositories
	if cfg.Storage == "memory" {
		repos = router.NewMemoryRepositories()
		log.Warn().Msg("using in-memory storage, data will not survive restarts")
	} else {
		db, err := config.InitDB(cfg.PostgresConnStr)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer config.CloseDB(db)

		repos, err = router.NewPostgresRepositories(db)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, log)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, repos, cfg, log)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
