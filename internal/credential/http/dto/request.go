// Package dto provides data transfer objects for the credential HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cardguard/internal/validation"
)

// RegisterCardRequest contains the parameters for registering a card.
type RegisterCardRequest struct {
	CardID string `json:"card_id"`
	Name   string `json:"name"`
}

// Validate checks if the register card request is valid.
func (r *RegisterCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardID, customValidation.CardID...),
		validation.Field(&r.Name, validation.Length(0, 255)),
	)
}

// SetPinRequest contains the new PIN. The minimum length is enforced by the store.
type SetPinRequest struct {
	Pin string `json:"pin"`
}

// Validate checks if the set pin request is valid.
func (r *SetPinRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Pin, validation.Required),
	)
}
