package main

import (
	"fmt"
	"os"

	"time-track-invoice/internal/api"
	"time-track-invoice/internal/cli"
	"time-track-invoice/internal/config"
	"time-track-invoice/internal/logging"
	"time-track-invoice/internal/repository/sqlite"
	"time-track-invoice/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Application.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.EnsureDatabaseDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating database directory: %v\n", err)
		os.Exit(1)
	}

	repo, err := sqlite.NewWithTimeouts(cfg.GetDatabasePath(), sqlite.Timeouts{
		Query: cfg.Database.QueryTimeout,
		Write: cfg.Database.WriteTimeout,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	container := services.NewServiceContainer(repo, cfg, logger)
	apiInstance := api.New(container)

	root := cli.NewRootCommand(apiInstance, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
