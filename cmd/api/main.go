package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"goquade/adapters/postgres"
	"goquade/app"
	"goquade/internal"
	"goquade/internal/config"
	"goquade/ports"
	"goquade/ui"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	gin.SetMode(cfg.Server.GinMode)

	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		runs = postgres.NewRunRepository(db)
		logger.Info("run archive enabled")
	} else {
		logger.Info("DATABASE_URL not set, run archive disabled")
	}

	service := app.NewQuadeService(runs, logger)
	server := ui.NewServer(service, runs, logger)

	if err := server.Run(":" + cfg.Server.APIPort); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
