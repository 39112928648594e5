// @title Resilience Assessment API
// @version 1.0
// @description Backend for the resilience self-assessment platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"resilience_backend/internal/app"
	"resilience_backend/internal/config"
	"resilience_backend/pkg/configwatcher"
	"resilience_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force migrations on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration complete, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(next *config.Config) {
		application.Config = next
	})

	application.Run()
}
