// Package http provides read-only HTTP handlers for the locked resource set.
// Locking and unlocking go through the access controller.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cardguard/internal/httputil"
	"github.com/allisson/cardguard/internal/resource/http/dto"
	resourceUseCase "github.com/allisson/cardguard/internal/resource/usecase"
)

// ResourceHandler handles HTTP queries against the locked resource registry.
type ResourceHandler struct {
	registry resourceUseCase.Registry
	logger   *slog.Logger
}

// NewResourceHandler creates a new resource handler with required dependencies.
func NewResourceHandler(registry resourceUseCase.Registry, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListLockedHandler lists locked resources in insertion order.
// GET /v1/resources/locked - Returns 200 OK.
func (h *ResourceHandler) ListLockedHandler(c *gin.Context) {
	locked, err := h.registry.ListLocked(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLockedToListResponse(locked))
}

// LockStatusHandler reports whether one resource is locked.
// GET /v1/resources/locked/:name - Returns 200 OK.
func (h *ResourceHandler) LockStatusHandler(c *gin.Context) {
	name := c.Param("name")

	locked, err := h.registry.IsLocked(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LockStatusResponse{Name: name, Locked: locked})
}
