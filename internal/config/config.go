// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// Storage driver names accepted in [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StructuredConfig is the root configuration of the server and of formctl.
//
// Every section is filled from environment variables (see the envPrefix
// tags), command-line flags and an optional JSON file.
type StructuredConfig struct {
	// App holds authentication and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the path to an optional JSON config file.
	JSONFilePath string `env:"CONFIG"`
}

// App holds authentication and versioning settings.
type App struct {
	// TokenSignKey signs session tokens of the local identity backend.
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is written to and checked against the "iss" claim.
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a session stays valid.
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BcryptCost is the cost factor for password hashes.
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is reported by /api/version/.
	Version string `env:"VERSION"`
}

// Storage selects the persistence backend: a SQL database when DB.DSN is
// set, otherwise the hosted REST backend at REST.URL.
type Storage struct {
	DB DB `envPrefix:"DB_"`

	REST REST `envPrefix:"REST_"`
}

// DB configures the SQL backend.
type DB struct {
	// DSN is the connection string. postgres:// URLs select PostgreSQL,
	// anything else is treated as a SQLite file path.
	DSN string `env:"DATABASE_URI"`

	// Driver forces the driver instead of guessing it from DSN.
	Driver string `env:"DRIVER"`

	// AutoMigrate applies pending migrations on start-up.
	AutoMigrate bool `env:"AUTO_MIGRATE"`
}

// DriverName returns the configured driver or the one implied by DSN.
func (d DB) DriverName() string {
	if d.Driver != "" {
		return d.Driver
	}
	if strings.HasPrefix(d.DSN, "postgres://") || strings.HasPrefix(d.DSN, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// REST configures the hosted backend (PostgREST data API plus GoTrue
// identity API behind one base URL).
type REST struct {
	URL     string        `env:"URL"`
	APIKey  string        `env:"API_KEY"`
	Timeout time.Duration `env:"TIMEOUT"`
}

// Server holds HTTP listener settings.
type Server struct {
	// HTTPAddress is the host:port the server listens on.
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of one request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SecureCookies marks the session cookie Secure.
	SecureCookies bool `env:"SECURE_COOKIES"`
}

// GetStructuredConfig assembles the configuration from environment
// variables, the given command-line arguments and the JSON file they point
// to, applies defaults and validates the result.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
