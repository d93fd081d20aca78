package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/optimal-labs/optimal-api/internal/api"
	"github.com/optimal-labs/optimal-api/internal/api/middleware"
	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/config"
	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/mocks"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"github.com/optimal-labs/optimal-api/internal/service/auth"
	"github.com/optimal-labs/optimal-api/internal/store"
	"github.com/optimal-labs/optimal-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app     *application
	handler http.Handler
	store   *mocks.InMemoryProductStore
	keys    *testutils.TestKeyPair
	jwks    *testutils.JWKSServer
	logs    *logger.LogBuffer
}

func testConfig(keycloakURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8000,
			LogLevel:       "debug",
			RequestTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host: "localhost", Port: 5432, Name: "optimal", User: "optimal_backend",
			SSLMode: "disable", MinConns: 1, MaxConns: 4,
		},
		Auth: config.AuthConfig{
			URL:                 keycloakURL,
			Realm:               "test",
			ClientID:            testutils.TestAudience,
			RequiredRole:        auth.DefaultRequiredRole,
			JWKSCacheTTL:        10 * time.Minute,
			JWKSRefreshInterval: 30 * time.Second,
		},
	}
}

func newTestApp(t *testing.T, products ...domain.Product) *testApp {
	t.Helper()

	keys := testutils.NewTestKeyPair(t, "test-kid")
	jwks := testutils.NewJWKSServer(t, keys)
	productStore := mocks.NewInMemoryProductStore(products...)
	log, buf := logger.NewCaptureLogger()

	app, err := newApplication(testConfig(jwks.URL), log, productStore, nil)
	require.NoError(t, err)

	return &testApp{
		app:     app,
		handler: app.setupRouter(),
		store:   productStore,
		keys:    keys,
		jwks:    jwks,
		logs:    buf,
	}
}

func (ta *testApp) do(t *testing.T, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, testutils.NewAuthorizedRequest(t, target, token))
	return rec
}

func (ta *testApp) storeCalls() int {
	return len(ta.store.SearchCalls()) + len(ta.store.ListCalls())
}

func TestNewApplication(t *testing.T) {
	t.Run("nil store is rejected", func(t *testing.T) {
		log, _ := logger.NewCaptureLogger()
		_, err := newApplication(testConfig("http://keycloak.test"), log, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "product service")
	})

	t.Run("empty client id is rejected", func(t *testing.T) {
		log, _ := logger.NewCaptureLogger()
		cfg := testConfig("http://keycloak.test")
		cfg.Auth.ClientID = ""
		_, err := newApplication(cfg, log, mocks.NewInMemoryProductStore(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token validator")
	})

	t.Run("guard uses configured role", func(t *testing.T) {
		log, _ := logger.NewCaptureLogger()
		cfg := testConfig("http://keycloak.test")
		cfg.Auth.RequiredRole = "catalog_admin"
		app, err := newApplication(cfg, log, mocks.NewInMemoryProductStore(), nil)
		require.NoError(t, err)
		assert.Equal(t, "catalog_admin", app.guard.RequiredRole())
		assert.Nil(t, app.healthPinger())
	})
}

func TestRouter_Authorization(t *testing.T) {
	ta := newTestApp(t, testutils.MilkCatalog(t)...)

	t.Run("missing token is 401 without use-case call", func(t *testing.T) {
		rec := ta.do(t, "/api/products/search?term=milk", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := testutils.DecodeJSON[shared.ErrorResponse](t, rec)
		assert.Equal(t, "Unauthorized", body.Message)
		assert.NotEmpty(t, body.TraceID)
		assert.Equal(t, body.TraceID, rec.Header().Get(middleware.TraceIDHeader))
		assert.Zero(t, ta.storeCalls())
	})

	t.Run("token without role is 403 without use-case call", func(t *testing.T) {
		token := ta.keys.MustSignToken(t, testutils.TokenOptions{
			Username:   "visitor",
			RealmRoles: []string{"offline_access"},
		})

		rec := ta.do(t, "/api/products/?supermarket=dia", token)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := testutils.DecodeJSON[shared.ErrorResponse](t, rec)
		assert.Equal(t, "Forbidden", body.Message)
		assert.Zero(t, ta.storeCalls())
	})

	t.Run("expired token is 401", func(t *testing.T) {
		issued := time.Now().Add(-2 * time.Hour)
		token := ta.keys.MustSignToken(t, testutils.TokenOptions{
			Username:   "reader",
			RealmRoles: []string{auth.DefaultRequiredRole},
			IssuedAt:   issued,
			ExpiresAt:  issued.Add(time.Hour),
		})

		rec := ta.do(t, "/api/products/search?term=milk", token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, ta.storeCalls())
	})

	t.Run("token for another audience is 401", func(t *testing.T) {
		token := ta.keys.MustSignToken(t, testutils.TokenOptions{
			Username:   "reader",
			RealmRoles: []string{auth.DefaultRequiredRole},
			Audience:   []string{"account"},
		})

		rec := ta.do(t, "/api/products/search?term=milk", token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, ta.storeCalls())
	})

	t.Run("token signed by an unpublished key is 401", func(t *testing.T) {
		rogue := testutils.NewTestKeyPair(t, "test-kid")
		rec := ta.do(t, "/api/products/search?term=milk", rogue.ReaderToken(t))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "eyJ")
		assert.Zero(t, ta.storeCalls())
	})

	t.Run("reader token is 200", func(t *testing.T) {
		rec := ta.do(t, "/api/products/search?term=milk", ta.keys.ReaderToken(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, apiVersion, rec.Header().Get(middleware.APIVersionHeader))
		assert.Equal(t, 1, ta.storeCalls())
	})

	t.Run("client role grants access", func(t *testing.T) {
		ta.store.Reset()
		token := ta.keys.MustSignToken(t, testutils.TokenOptions{
			Username:       "service-account",
			ResourceAccess: map[string][]string{testutils.TestAudience: {auth.DefaultRequiredRole}},
		})

		rec := ta.do(t, "/api/products/", token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, ta.storeCalls())
	})

	t.Run("key set is fetched once", func(t *testing.T) {
		assert.Equal(t, 1, ta.jwks.Fetches())
	})
}

func TestRouter_Products(t *testing.T) {
	ta := newTestApp(t, testutils.MilkCatalog(t)...)
	token := ta.keys.ReaderToken(t)

	t.Run("listing without trailing slash", func(t *testing.T) {
		rec := ta.do(t, "/api/products?pagesize=5", token)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := testutils.DecodeJSON[api.ProductListResponse](t, rec)
		assert.Len(t, resp.Products, 5)
		assert.True(t, resp.HasMore)
	})

	t.Run("carrefour by descending price", func(t *testing.T) {
		rec := ta.do(t, "/api/products/?supermarket=carrefour&sort_by=price&sort_order=desc&pagesize=3", token)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := testutils.DecodeJSON[api.ProductListResponse](t, rec)
		require.Len(t, resp.Products, 3)
		assert.Equal(t, []string{"Milk 28", "Milk 25", "Milk 22"}, []string{
			resp.Products[0].Name, resp.Products[1].Name, resp.Products[2].Name,
		})
		assert.Equal(t, &api.FiltersDTO{Supermarket: "carrefour", SortBy: "price", SortOrder: "desc"}, resp.Filters)
	})

	t.Run("search clamps out-of-range pagination", func(t *testing.T) {
		ta.store.Reset()
		rec := ta.do(t, "/api/products/search?term=milk&page=0&pagesize=1000", token)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := testutils.DecodeJSON[api.ProductListResponse](t, rec)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, domain.DefaultPageSize, resp.PageSize)
		calls := ta.store.SearchCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, domain.Page{Offset: 0, Limit: domain.DefaultPageSize}, calls[0].Page)
	})

	t.Run("health needs no token", func(t *testing.T) {
		rec := ta.do(t, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

		rec = ta.do(t, "/health/ready", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown route is a JSON 404", func(t *testing.T) {
		rec := ta.do(t, "/api/unknown", token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := testutils.DecodeJSON[shared.ErrorResponse](t, rec)
		assert.Equal(t, "Not found", body.Message)
		assert.NotEmpty(t, body.TraceID)
	})

	t.Run("wrong method is a JSON 405", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ta.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), "Method not allowed")
	})
}

func TestRouter_Failures(t *testing.T) {
	t.Run("repository failure is a redacted 500", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.ListErr = store.NewStoreError("product", "list", "connection failure",
			errors.New("dial postgres://optimal_backend:backend_supersecret@db:5432/optimal: refused"))

		rec := ta.do(t, "/api/products/", ta.keys.ReaderToken(t))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := testutils.DecodeJSON[shared.ErrorResponse](t, rec)
		assert.Equal(t, "Internal server error", body.Message)
		assert.NotEmpty(t, body.Detail)
		assert.NotEmpty(t, body.TraceID)
		assert.NotContains(t, body.Detail, "backend_supersecret")
		assert.NotContains(t, ta.logs.String(), "backend_supersecret")
	})

	t.Run("panic is a JSON 500", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.SearchByTermFn = func(ctx context.Context, term string, page domain.Page) ([]domain.Product, error) {
			panic("unexpected nil row")
		}

		rec := ta.do(t, "/api/products/search?term=milk", ta.keys.ReaderToken(t))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := testutils.DecodeJSON[shared.ErrorResponse](t, rec)
		assert.Equal(t, "Internal server error", body.Message)
	})

	t.Run("key set outage is 401", func(t *testing.T) {
		ta := newTestApp(t)
		ta.jwks.SetStatus(http.StatusServiceUnavailable)

		rec := ta.do(t, "/api/products/search?term=milk", ta.keys.ReaderToken(t))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, ta.storeCalls())
	})
}
