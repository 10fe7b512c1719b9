// Package http provides HTTP handlers for card classification and blacklist management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cardguard/internal/httputil"
	"github.com/allisson/cardguard/internal/threat/http/dto"
	threatUseCase "github.com/allisson/cardguard/internal/threat/usecase"
	customValidation "github.com/allisson/cardguard/internal/validation"
)

// ThreatHandler handles HTTP requests for the threat detector.
type ThreatHandler struct {
	threatDetector threatUseCase.ThreatDetector
	logger         *slog.Logger
}

// NewThreatHandler creates a new threat handler with required dependencies.
func NewThreatHandler(threatDetector threatUseCase.ThreatDetector, logger *slog.Logger) *ThreatHandler {
	return &ThreatHandler{
		threatDetector: threatDetector,
		logger:         logger,
	}
}

// CheckHandler classifies card data.
// POST /v1/threats/check - Returns 200 OK with the verdict.
func (h *ThreatHandler) CheckHandler(c *gin.Context) {
	var req dto.CheckCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	verdict, err := h.threatDetector.Classify(c.Request.Context(), req.CardData)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVerdictToResponse(verdict))
}

// BlacklistCardHandler blocks a card.
// POST /v1/threats/blacklist - Returns 201 Created when newly blocked, 200 OK otherwise.
func (h *ThreatHandler) BlacklistCardHandler(c *gin.Context) {
	var req dto.BlacklistCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	added, err := h.threatDetector.AddToBlacklist(c.Request.Context(), req.CardData, req.Reason)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, dto.BlacklistCardResponse{Added: added})
}

// UnblockCardHandler removes a card from the blacklist.
// POST /v1/threats/blacklist/remove - Returns 204 No Content whether or not it was blocked.
func (h *ThreatHandler) UnblockCardHandler(c *gin.Context) {
	var req dto.UnblockCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.threatDetector.RemoveFromBlacklist(c.Request.Context(), req.CardData); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// GetBlacklistHandler returns blocked fingerprints and user patterns.
// GET /v1/threats/blacklist - Returns 200 OK.
func (h *ThreatHandler) GetBlacklistHandler(c *gin.Context) {
	blacklist, err := h.threatDetector.Blacklist(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBlacklistToResponse(blacklist))
}

// ClearBlacklistHandler removes every blocked fingerprint and user pattern.
// DELETE /v1/threats/blacklist - Returns 204 No Content.
func (h *ThreatHandler) ClearBlacklistHandler(c *gin.Context) {
	if err := h.threatDetector.ClearBlacklist(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AddPatternHandler adds a user pattern.
// POST /v1/threats/patterns - Returns 204 No Content.
func (h *ThreatHandler) AddPatternHandler(c *gin.Context) {
	var req dto.AddPatternRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.threatDetector.AddSuspiciousPattern(c.Request.Context(), req.Pattern); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
