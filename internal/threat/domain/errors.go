package domain

import (
	"github.com/allisson/cardguard/internal/errors"
)

// Threat errors.
var (
	// ErrEmptyCardData indicates an attempt to blacklist empty card data.
	ErrEmptyCardData = errors.Wrap(errors.ErrInvalidInput, "card data must not be empty")

	// ErrBlankPattern indicates an attempt to add an empty or whitespace-only pattern.
	ErrBlankPattern = errors.Wrap(errors.ErrInvalidInput, "pattern must not be blank")
)
