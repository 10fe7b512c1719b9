// Package http provides HTTP handlers for card authorization and the lock state machine.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	"github.com/allisson/cardguard/internal/access/http/dto"
	accessUseCase "github.com/allisson/cardguard/internal/access/usecase"
	"github.com/allisson/cardguard/internal/httputil"
	customValidation "github.com/allisson/cardguard/internal/validation"
)

// AccessHandler handles HTTP requests for the access controller.
type AccessHandler struct {
	controller accessUseCase.Controller
	logger     *slog.Logger
}

// NewAccessHandler creates a new access handler with required dependencies.
func NewAccessHandler(controller accessUseCase.Controller, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		controller: controller,
		logger:     logger,
	}
}

// UnlockHandler authorizes a card and, when granted, unlocks everything or the named resource.
// POST /v1/access/unlock - Returns 200 OK with the decision, including denials.
func (h *AccessHandler) UnlockHandler(c *gin.Context) {
	var req dto.UnlockRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var (
		decision accessDomain.Decision
		err      error
	)
	if req.Resource != "" {
		decision, err = h.controller.AuthorizeUnlockResource(c.Request.Context(), req.CardID, req.Pin, req.Resource)
	} else {
		decision, err = h.controller.AuthorizeUnlock(c.Request.Context(), req.CardID, req.Pin)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecisionToResponse(decision))
}

// EvaluateHandler returns the decision for a card without changing state.
// POST /v1/access/evaluate - Returns 200 OK.
func (h *AccessHandler) EvaluateHandler(c *gin.Context) {
	var req dto.VerifyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	decision, err := h.controller.Evaluate(c.Request.Context(), req.CardID, req.Pin)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecisionToResponse(decision))
}

// VerifyHandler reports whether a card would be granted.
// POST /v1/access/verify - Returns 200 OK.
func (h *AccessHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	granted, err := h.controller.VerifyAccess(c.Request.Context(), req.CardID, req.Pin)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{Granted: granted})
}

// StateHandler reports the lock state.
// GET /v1/access/state - Returns 200 OK.
func (h *AccessHandler) StateHandler(c *gin.Context) {
	state, err := h.controller.State(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.StateResponse{State: state})
}

// LockHandler locks the named resources. No card is required to lock.
// POST /v1/resources/lock - Returns 204 No Content.
func (h *AccessHandler) LockHandler(c *gin.Context) {
	var req dto.LockRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if _, err := h.controller.LockApps(c.Request.Context(), req.Names); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
