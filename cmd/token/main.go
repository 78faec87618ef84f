// Command token mints a bearer token for the mutating course library
// endpoints. It signs with the same JWT_SECRET the API is configured with.
//
//	go run ./cmd/token -sub ops -scope write
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"course-library-backend/internal/config"
	"course-library-backend/internal/shared/middleware"
	"course-library-backend/pkg/jwt"
	"course-library-backend/pkg/logger"
)

func main() {
	subject := flag.String("sub", "cli", "token subject")
	scope := flag.String("scope", middleware.ScopeWrite, "token scope")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", err)
		os.Exit(1)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	manager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	token, err := manager.GenerateToken(*subject, *scope)
	if err != nil {
		logger.Error("Failed to sign token", err)
		os.Exit(1)
	}

	logger.Info("Token issued", map[string]interface{}{
		"sub":   *subject,
		"scope": *scope,
		"ttl":   cfg.JWT.TokenTTL.String(),
	})
	fmt.Println(token)
}
