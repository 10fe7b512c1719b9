// Package http provides HTTP handlers for card registration and PIN management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	"github.com/allisson/cardguard/internal/credential/http/dto"
	credentialUseCase "github.com/allisson/cardguard/internal/credential/usecase"
	"github.com/allisson/cardguard/internal/httputil"
	customValidation "github.com/allisson/cardguard/internal/validation"
)

// CredentialHandler handles HTTP requests for the credential store.
type CredentialHandler struct {
	credentialStore credentialUseCase.CredentialStore
	logger          *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(
	credentialStore credentialUseCase.CredentialStore,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialStore: credentialStore,
		logger:          logger,
	}
}

// RegisterCardHandler registers a card.
// POST /v1/cards - Returns 201 Created when the card is new and 200 OK when it was already registered.
func (h *CredentialHandler) RegisterCardHandler(c *gin.Context) {
	var req dto.RegisterCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	registered, err := h.credentialStore.RegisterCard(c.Request.Context(), req.CardID, req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status := http.StatusOK
	if registered {
		status = http.StatusCreated
	}
	c.JSON(status, dto.RegisterCardResponse{Registered: registered})
}

// ListCardsHandler lists registered cards in registration order.
// GET /v1/cards?offset=0&limit=50 - Returns 200 OK.
func (h *CredentialHandler) ListCardsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	cards, err := h.credentialStore.ListCards(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardsToListResponse(httputil.Paginate(cards, offset, limit)))
}

// UnregisterCardHandler removes a card.
// DELETE /v1/cards/:cardID - Returns 204 No Content, or 404 when the card is not registered.
func (h *CredentialHandler) UnregisterCardHandler(c *gin.Context) {
	removed, err := h.credentialStore.UnregisterCard(c.Request.Context(), c.Param("cardID"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if !removed {
		httputil.HandleErrorGin(c, credentialDomain.ErrCardNotFound, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// SetPinHandler enables PIN protection with a new PIN.
// PUT /v1/pin - Returns 204 No Content.
func (h *CredentialHandler) SetPinHandler(c *gin.Context) {
	var req dto.SetPinRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.credentialStore.SetPin(c.Request.Context(), req.Pin); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DisablePinHandler turns PIN protection off.
// DELETE /v1/pin - Returns 204 No Content.
func (h *CredentialHandler) DisablePinHandler(c *gin.Context) {
	if err := h.credentialStore.DisablePin(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// PinStatusHandler reports whether PIN protection is enabled.
// GET /v1/pin - Returns 200 OK.
func (h *CredentialHandler) PinStatusHandler(c *gin.Context) {
	enabled, err := h.credentialStore.HasPin(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PinStatusResponse{Enabled: enabled})
}
