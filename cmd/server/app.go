package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/optimal-labs/optimal-api/internal/api"
	"github.com/optimal-labs/optimal-api/internal/config"
	"github.com/optimal-labs/optimal-api/internal/platform/postgres"
	"github.com/optimal-labs/optimal-api/internal/service"
	"github.com/optimal-labs/optimal-api/internal/service/auth"
	"github.com/optimal-labs/optimal-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *postgres.DB

	productStore store.ProductSearcher

	// Service interfaces
	productService service.ProductService
	keys           *auth.JWKSCache
	tokenValidator auth.TokenValidator
	guard          *auth.Guard
}

// newApplication creates a new application instance with all dependencies initialized.
// db is only used for readiness checks and cleanup and may be nil.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	productStore store.ProductSearcher,
	db *postgres.DB,
) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		productStore: productStore,
	}

	var err error
	app.productService, err = service.NewProductService(productStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}

	app.keys = auth.NewJWKSCache(cfg.Auth.JWKSURL(),
		auth.WithCacheTTL(cfg.Auth.JWKSCacheTTL),
		auth.WithRefreshInterval(cfg.Auth.JWKSRefreshInterval),
		auth.WithJWKSLogger(logger),
	)

	app.tokenValidator, err = auth.NewKeycloakValidator(app.keys, cfg.Auth.ClientID,
		auth.WithValidatorLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create token validator: %w", err)
	}

	app.guard = auth.NewGuard(app.tokenValidator, cfg.Auth.RequiredRole, logger)

	logger.Info("Token validation configured",
		"jwks_url", cfg.Auth.JWKSURL(),
		"client_id", cfg.Auth.ClientID,
		"required_role", app.guard.RequiredRole(),
		"jwks_cache_ttl", cfg.Auth.JWKSCacheTTL.String())

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// healthPinger returns the readiness dependency, nil when no database is attached.
func (app *application) healthPinger() api.Pinger {
	if app.db == nil {
		return nil
	}
	return app.db
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}
