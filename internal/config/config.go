// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	appValidation "github.com/allisson/cardguard/internal/validation"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
	StorageDriverMySQL    = "mysql"
	StorageDriverSQLite   = "sqlite"
)

// DefaultPinMinLength is the shortest PIN accepted by SetPin.
const DefaultPinMinLength = 4

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// StorageDriver selects where component state is persisted ("file", "postgres", "mysql", "sqlite").
	StorageDriver string
	// StorageDir is the directory holding the JSON documents when StorageDriver is "file".
	StorageDir string

	// DBConnectionString is the connection string for the SQL storage drivers.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// PinMinLength is the minimum number of characters a PIN must have.
	PinMinLength int

	// ResourceCatalog maps resource names to paths as "name=path,name=path".
	// When empty, names passed to lock are used as their own path.
	ResourceCatalog string

	// RateLimitEnabled indicates whether per-IP rate limiting on the access endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for the access endpoints rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Storage configuration
		StorageDriver: env.GetString("STORAGE_DRIVER", StorageDriverFile),
		StorageDir:    env.GetString("STORAGE_DIR", defaultStorageDir()),

		// Database configuration
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", ""),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Credentials
		PinMinLength: env.GetInt("PIN_MIN_LENGTH", DefaultPinMinLength),

		// Resources
		ResourceCatalog: env.GetString("RESOURCE_CATALOG", ""),

		// Rate Limiting (access endpoints, IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", false),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "cardguard"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.StorageDriver,
			validation.Required,
			validation.In(StorageDriverFile, StorageDriverPostgres, StorageDriverMySQL, StorageDriverSQLite),
		),
		validation.Field(&c.StorageDir,
			validation.When(c.StorageDriver == StorageDriverFile, validation.Required),
		),
		validation.Field(&c.DBConnectionString,
			validation.When(c.UsesDatabase(), validation.Required),
		),
		validation.Field(&c.PinMinLength, validation.Min(DefaultPinMinLength)),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.Required, validation.Min(1), validation.Max(65535)),
	)
	return appValidation.WrapValidationError(err)
}

// UsesDatabase reports whether state is persisted through database/sql.
func (c *Config) UsesDatabase() bool {
	return c.StorageDriver != StorageDriverFile
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// defaultStorageDir returns ~/.cardguard, falling back to the working directory
// when no home directory is available.
func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cardguard"
	}
	return filepath.Join(home, ".cardguard")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
