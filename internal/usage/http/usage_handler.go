// Package http provides HTTP handlers for launch statistics.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cardguard/internal/httputil"
	"github.com/allisson/cardguard/internal/usage/http/dto"
	usageUseCase "github.com/allisson/cardguard/internal/usage/usecase"
)

// UsageHandler handles HTTP requests for the launch counter.
type UsageHandler struct {
	counter usageUseCase.Counter
	logger  *slog.Logger
}

// NewUsageHandler creates a new usage handler with required dependencies.
func NewUsageHandler(counter usageUseCase.Counter, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{
		counter: counter,
		logger:  logger,
	}
}

// GetStatsHandler returns launch statistics.
// GET /v1/usage - Returns 200 OK.
func (h *UsageHandler) GetStatsHandler(c *gin.Context) {
	stats, err := h.counter.Statistics(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatsToResponse(stats))
}

// IncrementHandler records one launch.
// POST /v1/usage - Returns 204 No Content.
func (h *UsageHandler) IncrementHandler(c *gin.Context) {
	if err := h.counter.Increment(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ResetHandler discards launch statistics.
// DELETE /v1/usage - Returns 204 No Content.
func (h *UsageHandler) ResetHandler(c *gin.Context) {
	if err := h.counter.Reset(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
