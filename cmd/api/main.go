package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/config"
	"course-library-backend/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is optional; production uses the real environment.
	envFileErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envFileErr != nil {
		log.Warn().Msg("⚠️  No .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", cfg.App.Environment).Str("storage", cfg.Storage.Driver).Msg("🌍 Starting course library API")

	Serve(cfg)
}
