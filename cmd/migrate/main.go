package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/config"
	"github.com/swifttravel/travel-booking-backend/internal/database"
	"github.com/swifttravel/travel-booking-backend/internal/database/migrations"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner, err := migrations.NewRunner(db)
	if err != nil {
		logger.Fatalf("Failed to initialize migrations: %v", err)
	}

	if *down {
		if err := runner.Down(); err != nil {
			logger.Fatalf("Rollback failed: %v", err)
		}
		logger.Info("Rolled back one migration")
		return
	}

	if err := runner.Up(); err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}

	version, dirty, err := runner.Version()
	if err != nil {
		logger.Fatalf("Failed to read schema version: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("Schema is up to date")
}
