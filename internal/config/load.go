package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaults mirrors the values a local development stack runs with.
var defaults = map[string]any{
	"server.port":                    8000,
	"server.log_level":               "info",
	"server.debug":                   false,
	"server.request_timeout":         "15s",
	"postgres.host":                  "localhost",
	"postgres.port":                  5432,
	"postgres.db":                    "optimal",
	"postgres.user":                  "optimal_backend",
	"postgres.password":              "backend_supersecret",
	"postgres.sslmode":               "disable",
	"postgres.min_conn":              1,
	"postgres.max_conn":              10,
	"keycloak.url":                   "http://localhost:8080",
	"keycloak.realm":                 "master",
	"keycloak.client_id":             "fastapi",
	"keycloak.required_role":         "optimal_reader",
	"keycloak.jwks_cache_ttl":        "10m",
	"keycloak.jwks_refresh_interval": "30s",
}

// Load configuration from environment variables and optionally a .env file and
// a config.yaml in the working directory.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// postgres.min_conn -> POSTGRES_MIN_CONN, keycloak.url -> KEYCLOAK_URL, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.debug", "DEBUG"); err != nil {
		return nil, fmt.Errorf("failed to bind DEBUG: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Database.MinConns > cfg.Database.MaxConns {
		return fmt.Errorf(
			"config validation failed: postgres min_conn (%d) exceeds max_conn (%d)",
			cfg.Database.MinConns,
			cfg.Database.MaxConns,
		)
	}
	return nil
}
