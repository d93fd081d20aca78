package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"postgres" validate:"required"`
	Auth     AuthConfig     `mapstructure:"keycloak" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Debug forces debug-level logging regardless of LogLevel.
	Debug          bool          `mapstructure:"debug"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	Name     string `mapstructure:"db" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MinConns int32  `mapstructure:"min_conn" validate:"gte=0"`
	MaxConns int32  `mapstructure:"max_conn" validate:"gt=0"`
}

// DSN builds a postgres:// connection URL from the individual settings.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// AuthConfig contains the identity provider settings used to verify bearer tokens.
type AuthConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	Realm        string `mapstructure:"realm" validate:"required"`
	ClientID     string `mapstructure:"client_id" validate:"required"`
	RequiredRole string `mapstructure:"required_role" validate:"required"`
	// JWKSCacheTTL bounds how long fetched signing keys are trusted before a refetch.
	JWKSCacheTTL time.Duration `mapstructure:"jwks_cache_ttl" validate:"gt=0"`
	// JWKSRefreshInterval is the minimum spacing between refetches caused by unknown key ids.
	JWKSRefreshInterval time.Duration `mapstructure:"jwks_refresh_interval" validate:"gt=0"`
}

// Issuer returns the realm issuer URL, e.g. http://localhost:8080/realms/master.
func (c AuthConfig) Issuer() string {
	return strings.TrimRight(c.URL, "/") + "/realms/" + c.Realm
}

// JWKSURL returns the endpoint publishing the realm's signing keys.
func (c AuthConfig) JWKSURL() string {
	return c.Issuer() + "/protocol/openid-connect/certs"
}
