package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		h := NewHealthHandler(nil, nil)
		rec := serve(h.Live, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("ready with reachable database", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), nil)
		rec := serve(h.Ready, "/health/ready")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ready with unreachable database", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error {
			return errors.New("dial tcp db.internal:5432: connection refused")
		}), nil)
		rec := serve(h.Ready, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "Database unavailable")
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.NotContains(t, rec.Body.String(), `"detail"`)
	})

	t.Run("ready logs pool usage", func(t *testing.T) {
		log, buf := logger.NewCaptureLogger()
		h := NewHealthHandler(&statsPinger{acquired: 3, max: 10}, log)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		h.Ready(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, buf.String(), `"msg":"database pool"`)
		assert.Contains(t, buf.String(), `"acquired_conns":3`)
		assert.Contains(t, buf.String(), `"max_conns":10`)
	})
}

type statsPinger struct {
	acquired, max int
}

func (p *statsPinger) PingContext(context.Context) error { return nil }

func (p *statsPinger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("acquired_conns", p.acquired),
		slog.Int("max_conns", p.max))
}
