// Package http provides the HTTP API server, its middleware and the metrics server.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessHTTP "github.com/allisson/cardguard/internal/access/http"
	"github.com/allisson/cardguard/internal/config"
	credentialHTTP "github.com/allisson/cardguard/internal/credential/http"
	"github.com/allisson/cardguard/internal/metrics"
	resourceHTTP "github.com/allisson/cardguard/internal/resource/http"
	threatHTTP "github.com/allisson/cardguard/internal/threat/http"
	usageHTTP "github.com/allisson/cardguard/internal/usage/http"
)

// StorageProbe reports whether the configured storage backend is usable.
type StorageProbe func(ctx context.Context) error

// Handlers groups the per-domain HTTP handlers mounted under /v1.
type Handlers struct {
	Credential *credentialHTTP.CredentialHandler
	Threat     *threatHTTP.ThreatHandler
	Resource   *resourceHTTP.ResourceHandler
	Access     *accessHTTP.AccessHandler
	Usage      *usageHTTP.UsageHandler
}

// Server represents the HTTP API server.
type Server struct {
	probe  StorageProbe
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is installed by SetupRouter.
func NewServer(
	probe StorageProbe,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		probe:  probe,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// newHTTPServer returns an http.Server with the timeouts shared by the API and metrics servers.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// listenAndServe blocks until server stops. A graceful shutdown is not an error.
func listenAndServe(server *http.Server, name string, logger *slog.Logger) error {
	logger.Info("starting "+name, slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// SetupRouter builds the Gin router with middleware and every API route.
// ctx bounds the lifetime of the rate limiter cleanup goroutine.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	cards := v1.Group("/cards")
	cards.POST("", handlers.Credential.RegisterCardHandler)
	cards.GET("", handlers.Credential.ListCardsHandler)
	cards.DELETE("/:cardID", handlers.Credential.UnregisterCardHandler)

	pin := v1.Group("/pin")
	pin.PUT("", handlers.Credential.SetPinHandler)
	pin.DELETE("", handlers.Credential.DisablePinHandler)
	pin.GET("", handlers.Credential.PinStatusHandler)

	threats := v1.Group("/threats")
	threats.POST("/check", handlers.Threat.CheckHandler)
	threats.POST("/blacklist", handlers.Threat.BlacklistCardHandler)
	threats.GET("/blacklist", handlers.Threat.GetBlacklistHandler)
	threats.DELETE("/blacklist", handlers.Threat.ClearBlacklistHandler)
	threats.POST("/blacklist/remove", handlers.Threat.UnblockCardHandler)
	threats.POST("/patterns", handlers.Threat.AddPatternHandler)

	resources := v1.Group("/resources")
	resources.POST("/lock", handlers.Access.LockHandler)
	resources.GET("/locked", handlers.Resource.ListLockedHandler)
	resources.GET("/locked/:name", handlers.Resource.LockStatusHandler)

	access := v1.Group("/access")
	if cfg.RateLimitEnabled {
		access.Use(AccessRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	access.POST("/unlock", handlers.Access.UnlockHandler)
	access.POST("/evaluate", handlers.Access.EvaluateHandler)
	access.POST("/verify", handlers.Access.VerifyHandler)
	access.GET("/state", handlers.Access.StateHandler)

	usage := v1.Group("/usage")
	usage.GET("", handlers.Usage.GetStatsHandler)
	usage.POST("", handlers.Usage.IncrementHandler)
	usage.DELETE("", handlers.Usage.ResetHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	return listenAndServe(s.server, "http server", s.logger)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports 503 until the storage backend answers within two seconds.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.probe == nil || s.probe(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"storage": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"storage": "ok"},
	})
}
