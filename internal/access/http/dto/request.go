// Package dto provides data transfer objects for the access HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cardguard/internal/validation"
)

// UnlockRequest presents a card and an optional PIN.
// A missing or null pin means no PIN was presented; an empty string is a presented PIN.
type UnlockRequest struct {
	CardID   string  `json:"card_id"`
	Pin      *string `json:"pin"`
	Resource string  `json:"resource"`
}

// Validate checks if the unlock request is valid. The card ID is never validated: an empty
// or malformed ID is denied as suspicious by the controller.
func (r *UnlockRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Resource, validation.Length(0, 255)),
	)
}

// VerifyRequest presents a card and an optional PIN without side effects.
// Like UnlockRequest it carries no validation of its own.
type VerifyRequest struct {
	CardID string  `json:"card_id"`
	Pin    *string `json:"pin"`
}

// LockRequest names the resources to lock.
type LockRequest struct {
	Names []string `json:"names"`
}

// Validate checks if the lock request is valid.
func (r *LockRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Names, validation.Required, validation.Each(validation.Required, customValidation.NotBlank)),
	)
}
