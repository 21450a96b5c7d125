package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"goquade/adapters/postgres"
	"goquade/internal"
	"goquade/internal/config"
	"goquade/ports"
	"goquade/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		runs = postgres.NewRunRepository(db)
	}

	viewer := ui.NewApp(runs, logger)
	if err := viewer.Run(":" + cfg.Server.UIPort); err != nil {
		log.Fatalf("report viewer failed: %v", err)
	}
}
