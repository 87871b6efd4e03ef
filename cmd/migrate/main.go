package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
)

func main() {
	status := flag.Bool("status", false, "Print migration status without applying anything")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if *status {
		if err := db.MigrationStatus(); err != nil {
			logger.Fatalw("Failed to read migration status", "error", err)
		}
		return
	}

	logger.Info("Running database migrations...")
	if err := db.Migrate(); err != nil {
		logger.Fatalw("Failed to run migrations", "error", err)
	}

	fmt.Println("Migration process completed")
}
