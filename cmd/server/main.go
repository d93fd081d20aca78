// Package main implements the entry point for the Optimal product API server,
// which serves authenticated product search and listing over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/optimal-labs/optimal-api/internal/config"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/optimal-labs/optimal-api/internal/platform/postgres"
)

// main loads configuration, sets up logging, opens the database pool,
// wires the application and serves until SIGINT/SIGTERM.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := postgres.Open(ctx, cfg.Database, l)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app, err := newApplication(cfg, l, postgres.NewPostgresProductStore(db, l), db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			l.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from the environment,
// an optional .env file and an optional config.yaml.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"keycloak_realm", cfg.Auth.Realm,
		"database_host", cfg.Database.Host)

	return cfg, nil
}
