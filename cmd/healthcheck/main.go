package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/database"
	"github.com/mindfulway/intake-backend/internal/services"
	"github.com/mindfulway/intake-backend/internal/sheets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := sheets.NewClient(ctx, cfg.DriveFolderID)
	if err != nil {
		log.Fatalf("Failed to create spreadsheet client: %v", err)
	}

	auditDB, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to audit database: %v", err)
	}
	defer database.Close(auditDB)

	// Perform health check
	result := services.HealthCheck(ctx, cfg, store, auditDB)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
