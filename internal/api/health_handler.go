package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler. db may be nil, in which case
// readiness always succeeds.
func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthHandler{db: db, logger: log.With("component", "health_handler")}
}

// Live handles GET /health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready handles GET /health/ready; it pings the database. The failure detail
// is logged but kept out of the response. When the database implements
// slog.LogValuer its pool usage is logged as well.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		err := h.db.PingContext(ctx)

		if pool, ok := h.db.(slog.LogValuer); ok {
			logger.FromContextOrDefault(r.Context(), h.logger).Debug("database pool",
				slog.Any("pool", pool),
				slog.Bool("reachable", err == nil))
		}

		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err,
				shared.WithoutDetail())
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
