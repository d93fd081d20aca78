package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/optimal-labs/optimal-api/internal/api"
	apiMiddleware "github.com/optimal-labs/optimal-api/internal/api/middleware"
)

// apiVersion is reported in the X-API-Version header of product responses.
const apiVersion = "2"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	productHandler := api.NewProductHandler(app.productService, app.logger)
	healthHandler := api.NewHealthHandler(app.healthPinger(), app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.guard)

	r.Route("/api/products", func(r chi.Router) {
		r.Use(apiMiddleware.APIVersion(apiVersion))
		r.Use(authMiddleware.Authenticate)

		r.Get("/search", productHandler.SearchProducts)
		r.Get("/", productHandler.ListProducts)
	})

	r.Get("/health", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	return r
}
