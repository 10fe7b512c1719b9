package dto

import (
	"time"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
)

// CardResponse represents a registered card in API responses.
type CardResponse struct {
	CardID       string     `json:"card_id"`
	Name         string     `json:"name"`
	RegisteredAt *time.Time `json:"registered_at"`
}

// RegisterCardResponse reports whether the card was newly added.
type RegisterCardResponse struct {
	Registered bool `json:"registered"`
}

// ListCardsResponse represents a page of registered cards.
type ListCardsResponse struct {
	Data []CardResponse `json:"data"`
}

// PinStatusResponse reports whether PIN protection is enabled.
type PinStatusResponse struct {
	Enabled bool `json:"enabled"`
}

// MapCardToResponse converts a domain card to an API response.
// Cards restored from documents with unreadable timestamps report a null registered_at.
func MapCardToResponse(card *credentialDomain.Card) CardResponse {
	response := CardResponse{
		CardID: card.ID,
		Name:   card.Name,
	}
	if !card.RegisteredAt.IsZero() {
		registeredAt := card.RegisteredAt
		response.RegisteredAt = &registeredAt
	}
	return response
}

// MapCardsToListResponse converts domain cards to a list response.
func MapCardsToListResponse(cards []*credentialDomain.Card) ListCardsResponse {
	data := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		data = append(data, MapCardToResponse(card))
	}
	return ListCardsResponse{Data: data}
}
