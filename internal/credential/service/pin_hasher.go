// Package service provides the one-way PIN digest used by the credential store.
package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	apperrors "github.com/allisson/cardguard/internal/errors"
)

// PinHasher computes and verifies PIN digests. The PIN itself is never stored.
type PinHasher interface {
	// Hash returns an Argon2id PHC string for pin.
	Hash(pin string) (string, error)

	// Verify reports whether pin matches hash. Both Argon2id hashes and legacy hex
	// SHA-256 digests are accepted. Comparison is constant time.
	Verify(pin, hash string) bool
}

type pinHasher struct {
	hasher *pwdhash.PasswordHasher
}

func (p *pinHasher) Hash(pin string) (string, error) {
	hash, err := p.hasher.Hash([]byte(pin))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash pin")
	}
	return hash, nil
}

func (p *pinHasher) Verify(pin, hash string) bool {
	if hash == "" {
		return false
	}

	if credentialDomain.IsLegacyDigest(hash) {
		sum := sha256.Sum256([]byte(pin))
		digest := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
	}

	ok, err := p.hasher.Verify([]byte(pin), hash)
	if err != nil {
		return false
	}
	return ok
}

// NewPinHasher creates a PinHasher using the Argon2id moderate policy.
func NewPinHasher() (PinHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create pin hasher")
	}
	return &pinHasher{hasher: hasher}, nil
}
