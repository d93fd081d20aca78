package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that Load falls back to the local development defaults
// when no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "optimal", cfg.Database.Name)
	assert.Equal(t, int32(1), cfg.Database.MinConns)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "http://localhost:8080", cfg.Auth.URL)
	assert.Equal(t, "master", cfg.Auth.Realm)
	assert.Equal(t, "fastapi", cfg.Auth.ClientID)
	assert.Equal(t, "optimal_reader", cfg.Auth.RequiredRole)
	assert.Equal(t, 10*time.Minute, cfg.Auth.JWKSCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.Auth.JWKSRefreshInterval)
}

// TestLoadFromEnv verifies that Load reads the original deployment variable names.
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DEBUG", "true")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "3s")
	t.Setenv("KEYCLOAK_URL", "https://sso.example.com/")
	t.Setenv("KEYCLOAK_REALM", "optimal")
	t.Setenv("KEYCLOAK_CLIENT_ID", "optimal-web")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_DB", "catalog")
	t.Setenv("POSTGRES_USER", "reader")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("POSTGRES_MIN_CONN", "2")
	t.Setenv("POSTGRES_MAX_CONN", "20")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "optimal-web", cfg.Auth.ClientID)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t,
		"https://sso.example.com/realms/optimal/protocol/openid-connect/certs",
		cfg.Auth.JWKSURL())
	assert.Equal(t,
		"postgres://reader:p%40ss%20word@db:6543/catalog?sslmode=disable",
		cfg.Database.DSN())
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Invalid port number",
			envVars: map[string]string{"SERVER_PORT": "999999"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"SERVER_LOG_LEVEL": "verbose"},
		},
		{
			name:    "Identity provider URL is not a URL",
			envVars: map[string]string{"KEYCLOAK_URL": "not a url"},
		},
		{
			name:    "Zero max connections",
			envVars: map[string]string{"POSTGRES_MAX_CONN": "0"},
		},
		{
			name: "Min connections above max",
			envVars: map[string]string{
				"POSTGRES_MIN_CONN": "8",
				"POSTGRES_MAX_CONN": "4",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for name, value := range tc.envVars {
				t.Setenv(name, value)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
