package main

import (
	"context"
	"log"
	"os"

	"github.com/grocersmart/backend/config"
	"github.com/grocersmart/backend/internal/app"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting GrocerSmart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)
	log.Printf("Grocery API: %s (store source: %s, radius: %d)",
		cfg.Upstream.BaseURL, cfg.Stores.Source, cfg.Stores.Radius)

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	serveErr := application.Serve()
	if err := application.Close(); err != nil {
		log.Printf("Failed to close state store: %v", err)
	}
	if serveErr != nil {
		log.Fatalf("Server error: %v", serveErr)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
