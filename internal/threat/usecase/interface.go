// Package usecase implements the threat detector over the persisted blacklist.
package usecase

import (
	"context"

	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

// BlacklistRepository persists the blacklist document.
type BlacklistRepository interface {
	// LoadBlacklist returns the stored blacklist, or an empty one when none exists.
	// A document that cannot be decoded yields an error wrapping ErrCorrupt.
	LoadBlacklist(ctx context.Context) (*threatDomain.Blacklist, error)

	// SaveBlacklist replaces the stored blacklist.
	SaveBlacklist(ctx context.Context, blacklist *threatDomain.Blacklist) error
}

// ThreatDetector classifies card data and maintains the blacklist.
//
// Mutations are written through; on a failed write the in-memory change is kept and
// the returned error wraps ErrStorage.
type ThreatDetector interface {
	// IsSuspicious reports whether cardData must be rejected.
	IsSuspicious(ctx context.Context, cardData string) (bool, error)

	// Classify is IsSuspicious with the rule that matched.
	Classify(ctx context.Context, cardData string) (*threatDomain.Verdict, error)

	// AddToBlacklist blocks the fingerprint of cardData. Returns false when it is already
	// blocked. An empty reason is recorded as DefaultReason.
	AddToBlacklist(ctx context.Context, cardData, reason string) (bool, error)

	// RemoveFromBlacklist unblocks cardData. Absent fingerprints are ignored.
	RemoveFromBlacklist(ctx context.Context, cardData string) error

	// AddSuspiciousPattern adds a user pattern unless the exact string is already present.
	AddSuspiciousPattern(ctx context.Context, pattern string) error

	// ClearBlacklist removes every blocked fingerprint and user pattern.
	ClearBlacklist(ctx context.Context) error

	// Blacklist returns a copy of the current blacklist.
	Blacklist(ctx context.Context) (*threatDomain.Blacklist, error)
}
