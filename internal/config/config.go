// Package config loads application settings from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"

	goerrors "errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
)

// AppConfig is the main application configuration struct. Values are
// loaded from environment variables using github.com/caarlos0/env.
type AppConfig struct {
	// Debug enables verbose logging and the pretty log format.
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Auth holds token signing and password hashing options.
	Auth AuthConfig

	// HTTP holds server bind and CORS options.
	HTTP HTTPConfig

	// Store holds database options.
	Store StoreConfig
}

// AuthConfig contains token and credential options.
type AuthConfig struct {
	// SigningKey is the HMAC secret for access tokens. Required.
	SigningKey string `env:"AUTH_SIGNING_KEY,required"`

	// TokenExpiration is the access token lifetime in hours.
	TokenExpiration int `env:"AUTH_TOKEN_EXPIRATION" envDefault:"24"`

	// Issuer is stamped into tokens and enforced on validation when set.
	Issuer string `env:"AUTH_ISSUER" envDefault:"impulse-fishing"`

	// BcryptCost is the bcrypt work factor for password hashes.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"12"`

	// ContextKey is the request-local key the guard stores claims under.
	ContextKey string `env:"AUTH_CONTEXT_KEY" envDefault:"user"`

	// AuthScheme is the Authorization header scheme.
	AuthScheme string `env:"AUTH_SCHEME" envDefault:"Bearer"`

	// AdminEmail and AdminPassword seed the initial admin account when
	// the store is empty. Leave AdminPassword unset to skip seeding.
	AdminEmail    string `env:"AUTH_ADMIN_EMAIL" envDefault:"admin@impulse-fishing.bg"`
	AdminName     string `env:"AUTH_ADMIN_NAME" envDefault:"Admin"`
	AdminPassword string `env:"AUTH_ADMIN_PASSWORD"`
}

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CORSOrigins is the comma separated allow list for browser clients.
	CORSOrigins string `env:"HTTP_CORS_ORIGINS" envDefault:"*"`
}

// StoreConfig contains database configuration.
type StoreConfig struct {
	// DSN is the sqlite data source name.
	DSN string `env:"STORE_DSN" envDefault:"file:impulse.db?cache=shared&_pragma=foreign_keys(1)"`

	// Seed loads the starter catalog and admin account on boot.
	Seed bool `env:"STORE_SEED" envDefault:"true"`
}

var _ auth.Config = (*AppConfig)(nil)

// Load reads a .env file when present, then parses the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !goerrors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()

	return cfg, nil
}

// Sanitize applies guardrails to configuration values loaded from env.
func (c *AppConfig) Sanitize() {
	if c.Auth.TokenExpiration <= 0 {
		c.Auth.TokenExpiration = 24
	}

	if c.Auth.BcryptCost <= 0 {
		c.Auth.BcryptCost = auth.DefaultBcryptCost
	}

	if c.Auth.ContextKey == "" {
		c.Auth.ContextKey = "user"
	}

	if c.Auth.AuthScheme == "" {
		c.Auth.AuthScheme = "Bearer"
	}

	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
}

func (c *AppConfig) GetSigningKey() string   { return c.Auth.SigningKey }
func (c *AppConfig) GetTokenExpiration() int { return c.Auth.TokenExpiration }
func (c *AppConfig) GetIssuer() string       { return c.Auth.Issuer }
func (c *AppConfig) GetBcryptCost() int      { return c.Auth.BcryptCost }
func (c *AppConfig) GetContextKey() string   { return c.Auth.ContextKey }
func (c *AppConfig) GetAuthScheme() string   { return c.Auth.AuthScheme }

// Redacted returns a copy safe for debug dumps. Secrets are masked, not
// removed, so their presence is still visible.
func (c AppConfig) Redacted() AppConfig {
	if c.Auth.SigningKey != "" {
		c.Auth.SigningKey = "********"
	}
	if c.Auth.AdminPassword != "" {
		c.Auth.AdminPassword = "********"
	}
	return c
}
