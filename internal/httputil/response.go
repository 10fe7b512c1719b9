// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/cardguard/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping binds a sentinel error to its HTTP rendering. When exposeError is set the
// error text is returned to the client instead of message.
type errorMapping struct {
	target      error
	status      int
	code        string
	message     string
	exposeError bool
}

// errorMappings is matched in order; the first sentinel found in the chain wins.
var errorMappings = []errorMapping{
	{target: apperrors.ErrNotFound, status: http.StatusNotFound, code: "not_found",
		message: "The requested resource was not found"},
	{target: apperrors.ErrConflict, status: http.StatusConflict, code: "conflict",
		message: "A conflict occurred with existing data"},
	{target: apperrors.ErrInvalidInput, status: http.StatusUnprocessableEntity, code: "invalid_input",
		exposeError: true},
	{target: apperrors.ErrUnauthorized, status: http.StatusUnauthorized, code: "unauthorized",
		message: "Authentication is required"},
	{target: apperrors.ErrLocked, status: http.StatusLocked, code: "locked",
		message: "The requested resource is locked"},
	{target: apperrors.ErrForbidden, status: http.StatusForbidden, code: "forbidden",
		message: "You don't have permission to access this resource"},
	// The in-memory change may have been applied; only persistence failed.
	{target: apperrors.ErrStorage, status: http.StatusServiceUnavailable, code: "storage_unavailable",
		message: "The change could not be persisted"},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

func lookupMapping(err error) errorMapping {
	for _, m := range errorMappings {
		if apperrors.Is(err, m.target) {
			return m
		}
	}
	return internalError
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
// Server-side failures are logged at error level, client errors at warn.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	m := lookupMapping(err)
	response := ErrorResponse{Error: m.code, Message: m.message}
	if m.exposeError {
		response.Message = err.Error()
	}

	if logger != nil {
		level := slog.LevelWarn
		if m.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(requestContext(c), level, "request failed",
			slog.Int("status_code", m.status),
			slog.String("error_code", m.code),
			slog.Any("error", err),
		)
	}

	c.JSON(m.status, response)
}

// requestContext returns the request context, or Background for a context built without a request.
func requestContext(c *gin.Context) context.Context {
	if c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
