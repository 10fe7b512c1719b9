// Package dto provides data transfer objects for the threat HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cardguard/internal/validation"
)

// CheckCardRequest carries card data to classify. Empty data is accepted and is suspicious.
type CheckCardRequest struct {
	CardData string `json:"card_data"`
}

// BlacklistCardRequest contains the parameters for blocking a card.
type BlacklistCardRequest struct {
	CardData string `json:"card_data"`
	Reason   string `json:"reason"`
}

// Validate checks if the blacklist request is valid.
func (r *BlacklistCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardData, validation.Required),
		validation.Field(&r.Reason, validation.Length(0, 255)),
	)
}

// UnblockCardRequest identifies the card to remove from the blacklist.
type UnblockCardRequest struct {
	CardData string `json:"card_data"`
}

// Validate checks if the unblock request is valid.
func (r *UnblockCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardData, validation.Required),
	)
}

// AddPatternRequest contains a user pattern.
type AddPatternRequest struct {
	Pattern string `json:"pattern"`
}

// Validate checks if the add pattern request is valid.
func (r *AddPatternRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Pattern, validation.Required, customValidation.NotBlank),
	)
}
