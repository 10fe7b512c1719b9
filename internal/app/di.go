// Package app provides the dependency injection container that assembles the engine.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	accessHTTP "github.com/allisson/cardguard/internal/access/http"
	accessUseCase "github.com/allisson/cardguard/internal/access/usecase"
	"github.com/allisson/cardguard/internal/config"
	credentialHTTP "github.com/allisson/cardguard/internal/credential/http"
	credentialService "github.com/allisson/cardguard/internal/credential/service"
	credentialUseCase "github.com/allisson/cardguard/internal/credential/usecase"
	"github.com/allisson/cardguard/internal/database"
	"github.com/allisson/cardguard/internal/http"
	"github.com/allisson/cardguard/internal/metrics"
	resourceHTTP "github.com/allisson/cardguard/internal/resource/http"
	resourceUseCase "github.com/allisson/cardguard/internal/resource/usecase"
	"github.com/allisson/cardguard/internal/storage"
	threatHTTP "github.com/allisson/cardguard/internal/threat/http"
	threatUseCase "github.com/allisson/cardguard/internal/threat/usecase"
	usageHTTP "github.com/allisson/cardguard/internal/usage/http"
	usageUseCase "github.com/allisson/cardguard/internal/usage/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access and shared afterwards.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Repositories
	credentialRepository credentialUseCase.CredentialRepository
	blacklistRepository  threatUseCase.BlacklistRepository
	lockedRepository     resourceUseCase.LockedResourceRepository
	statsRepository      usageUseCase.StatsRepository

	// Services
	pinHasher credentialService.PinHasher

	// Use Cases
	credentialStore credentialUseCase.CredentialStore
	threatDetector  threatUseCase.ThreatDetector
	registry        resourceUseCase.Registry
	resolver        resourceUseCase.Resolver
	controller      accessUseCase.Controller
	counter         usageUseCase.Counter

	// HTTP Handlers
	credentialHandler *credentialHTTP.CredentialHandler
	threatHandler     *threatHTTP.ThreatHandler
	resourceHandler   *resourceHTTP.ResourceHandler
	accessHandler     *accessHTTP.AccessHandler
	usageHandler      *usageHTTP.UsageHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                       sync.Mutex
	loggerInit               sync.Once
	dbInit                   sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	credentialRepositoryInit sync.Once
	blacklistRepositoryInit  sync.Once
	lockedRepositoryInit     sync.Once
	statsRepositoryInit      sync.Once
	pinHasherInit            sync.Once
	credentialStoreInit      sync.Once
	threatDetectorInit       sync.Once
	registryInit             sync.Once
	resolverInit             sync.Once
	controllerInit           sync.Once
	counterInit              sync.Once
	credentialHandlerInit    sync.Once
	threatHandlerInit        sync.Once
	resourceHandlerInit      sync.Once
	accessHandlerInit        sync.Once
	usageHandlerInit         sync.Once
	httpServerInit           sync.Once
	metricsServerInit        sync.Once
	initErrors               map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection. It fails when the storage driver is "file".
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// StorageProbe returns the readiness check for the configured storage backend.
func (c *Container) StorageProbe() http.StorageProbe {
	if !c.config.UsesDatabase() {
		dir := c.config.StorageDir
		return func(ctx context.Context) error {
			return storage.Probe(dir)
		}
	}
	return func(ctx context.Context) error {
		db, err := c.DB()
		if err != nil {
			return err
		}
		return db.PingContext(ctx)
	}
}

// HTTPServer returns the API server with every route installed.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates a JSON logger on stderr so command output on stdout stays clean.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB opens the database selected by the storage driver.
func (c *Container) initDB() (*sql.DB, error) {
	if !c.config.UsesDatabase() {
		return nil, fmt.Errorf("storage driver %q does not use a database", c.config.StorageDriver)
	}

	db, err := database.Connect(database.Config{
		Driver:             c.config.StorageDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initHTTPServer creates the API server with all its handlers.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	credentialHandler, err := c.CredentialHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential handler for http server: %w", err)
	}

	threatHandler, err := c.ThreatHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get threat handler for http server: %w", err)
	}

	resourceHandler, err := c.ResourceHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get resource handler for http server: %w", err)
	}

	accessHandler, err := c.AccessHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get access handler for http server: %w", err)
	}

	usageHandler, err := c.UsageHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(c.StorageProbe(), c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, c.config, http.Handlers{
		Credential: credentialHandler,
		Threat:     threatHandler,
		Resource:   resourceHandler,
		Access:     accessHandler,
		Usage:      usageHandler,
	}, metricsProvider)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
