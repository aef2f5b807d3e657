package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"transitdesk/internal/carma"
	"transitdesk/internal/config"
	"transitdesk/internal/database"
	"transitdesk/internal/repository"
	"transitdesk/internal/service"
)

func main() {
	endpoint := flag.String("endpoint", "", "Carrier registry endpoint (default: CARMA_ENDPOINT)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall sync timeout")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	if *endpoint == "" {
		*endpoint = cfg.CarmaEndpoint
	}
	if *endpoint == "" {
		fmt.Println("Error: no registry endpoint configured (set CARMA_ENDPOINT or -endpoint)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	operatorRepo := repository.NewOperatorRepository(db)
	syncService := service.NewSyncService(carma.NewClient(*endpoint), operatorRepo)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Printf("Syncing operators from: %s", *endpoint)
	created, err := syncService.SyncOperators(ctx)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	log.Printf("Sync complete! New operators: %d", created)
}
