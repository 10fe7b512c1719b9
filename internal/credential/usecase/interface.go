// Package usecase implements the credential store: registered cards and the optional PIN.
package usecase

import (
	"context"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
)

// CardRepository persists the ordered card registry as a single document.
type CardRepository interface {
	// LoadCards returns the registry in registration order. A missing document yields an
	// empty registry. A document that cannot be decoded yields an error wrapping ErrCorrupt.
	LoadCards(ctx context.Context) ([]*credentialDomain.Card, error)

	// SaveCards replaces the stored registry with cards.
	SaveCards(ctx context.Context, cards []*credentialDomain.Card) error
}

// PinRepository persists the PIN credential.
type PinRepository interface {
	// LoadPin returns the stored credential, or a disabled one when none exists.
	LoadPin(ctx context.Context) (*credentialDomain.PinCredential, error)

	// SavePin replaces the stored credential.
	SavePin(ctx context.Context, pin *credentialDomain.PinCredential) error
}

// CredentialRepository groups the two credential documents.
type CredentialRepository interface {
	CardRepository
	PinRepository
}

// CredentialStore owns registered cards and the PIN credential.
//
// Every mutation is written through to the repository before returning. When that write
// fails the in-memory change is kept and the returned error wraps ErrStorage; the change
// is effective for this process but may not survive a restart.
type CredentialStore interface {
	// RegisterCard adds cardID with the given display name, or a generated "Card N" label
	// when name is empty. Returns false without changes when cardID is already registered.
	// A blank cardID fails with ErrEmptyCardID.
	RegisterCard(ctx context.Context, cardID, name string) (bool, error)

	// UnregisterCard removes cardID. Returns false when it was not registered.
	UnregisterCard(ctx context.Context, cardID string) (bool, error)

	// IsRegistered reports whether cardID is registered.
	IsRegistered(ctx context.Context, cardID string) (bool, error)

	// ListCards returns copies of the registered cards in registration order.
	ListCards(ctx context.Context) ([]*credentialDomain.Card, error)

	// RemoveFirstCard removes the earliest registered card. Returns false when empty.
	RemoveFirstCard(ctx context.Context) (bool, error)

	// SetPin stores a digest of pin and enables PIN protection.
	// Fails with ErrInvalidPin when pin is shorter than the configured minimum.
	SetPin(ctx context.Context, pin string) error

	// VerifyPin reports whether pin matches. Always true while PIN protection is disabled.
	VerifyPin(ctx context.Context, pin string) (bool, error)

	// DisablePin turns PIN protection off and discards the digest.
	DisablePin(ctx context.Context) error

	// HasPin reports whether PIN protection is enabled.
	HasPin(ctx context.Context) (bool, error)
}
