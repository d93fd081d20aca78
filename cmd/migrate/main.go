// Package main runs the embedded goose migrations that create the product
// schema and search function.
//
// Usage:
//
//	migrate [-timeout 2m] [up|down|reset|status|version]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/optimal-labs/optimal-api/internal/config"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/optimal-labs/optimal-api/internal/platform/postgres"
)

var commands = []string{"up", "down", "reset", "status", "version"}

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "maximum time the migration may take")
	flag.Parse()

	command, err := parseCommand(flag.Args())
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, command); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// parseCommand returns the goose command named by args, "up" when none is given.
func parseCommand(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "up", nil
	case 1:
		if !slices.Contains(commands, args[0]) {
			return "", fmt.Errorf("unknown command %q (want one of %v)", args[0], commands)
		}
		return args[0], nil
	default:
		return "", fmt.Errorf("expected a single command, got %d arguments", len(args))
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l = l.With("component", "migrate", "run_id", uuid.NewString(), "command", command)

	db, err := postgres.Open(ctx, cfg.Database, l)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("Error closing database connection", "error", err)
		}
	}()

	started := time.Now()
	if err := postgres.Migrate(ctx, db.DB.DB, command, l); err != nil {
		return err
	}
	l.Info("migration finished", "duration", time.Since(started).String())
	return nil
}
