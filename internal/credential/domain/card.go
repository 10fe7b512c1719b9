// Package domain defines the credential model: registered cards and the optional PIN.
//
// Card identifiers are opaque caller-supplied strings. They are unique within the store
// and are never written to logs in clear; use MaskCardID when a log line needs one.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Card is a registered card. Cards are created by registration, removed by
// unregistration and never modified in between.
type Card struct {
	ID           string
	Name         string
	RegisteredAt time.Time
}

// DefaultCardName returns the label given to a card registered without a name,
// where registered is the number of cards already in the store.
func DefaultCardName(registered int) string {
	return fmt.Sprintf("Card %d", registered+1)
}

// MaskCardID returns a stable, non-reversible token identifying cardID in logs.
func MaskCardID(cardID string) string {
	sum := sha256.Sum256([]byte(cardID))
	return "card:" + hex.EncodeToString(sum[:])[:12]
}
