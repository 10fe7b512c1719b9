package domain

import (
	"github.com/allisson/cardguard/internal/errors"
)

// Credential errors.
var (
	// ErrEmptyCardID indicates an empty card identifier was presented for registration.
	ErrEmptyCardID = errors.Wrap(errors.ErrInvalidInput, "card id must not be empty")

	// ErrInvalidPin indicates the PIN does not satisfy the minimum length.
	ErrInvalidPin = errors.Wrap(errors.ErrInvalidInput, "invalid pin")

	// ErrCardNotFound indicates no card with the given identifier is registered.
	ErrCardNotFound = errors.Wrap(errors.ErrNotFound, "card not found")
)
