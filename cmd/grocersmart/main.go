package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/grocersmart/backend/config"
	"github.com/grocersmart/backend/internal/app"
	"github.com/grocersmart/backend/internal/delivery/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("Failed to close state store: %v", err)
		}
	}()

	cli.SetServices(cli.Services{
		Search:   application.Search,
		Stores:   application.Registry,
		Serve:    application.Serve,
		Debounce: cfg.Search.Debounce,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
