package middleware

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
)

// TraceIDHeader echoes the trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

// NewTraceMiddleware adds a trace ID and a request-scoped logger carrying it
// to the request context. The chi request ID is reused when present.
// This middleware should be applied early in the chain.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := chimiddleware.GetReqID(r.Context())
			if traceID == "" {
				traceID = shared.NewTraceID()
			}

			ctx := shared.WithTraceID(r.Context(), traceID)

			log := logger.FromContextOrDefault(ctx, base).With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
