// Package domain defines the threat model: built-in suspicious patterns, the persistent
// blacklist of card fingerprints and the operator's own patterns.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"
)

// DefaultReason is recorded when a card is blacklisted without a reason.
const DefaultReason = "Manual block"

// BuiltinPatterns are markers produced by failed or garbage reads. They are compared
// against the upper-cased card data.
var BuiltinPatterns = []string{
	"INVALID",
	"ERROR",
	"CORRUPT",
	"MALFORMED",
	"00000000",
	"FFFFFFFF",
}

// BlacklistEntry is a blocked card, identified only by its fingerprint.
type BlacklistEntry struct {
	Hash      string
	Reason    string
	CreatedAt time.Time
}

// Blacklist is the persisted rule set: blocked fingerprints and user patterns,
// both in insertion order.
type Blacklist struct {
	Entries  []*BlacklistEntry
	Patterns []string
}

// Fingerprint returns the hex SHA-256 digest of the raw card data.
func Fingerprint(cardData string) string {
	sum := sha256.Sum256([]byte(cardData))
	return hex.EncodeToString(sum[:])
}

// Find returns the entry with the given fingerprint, or nil.
func (b *Blacklist) Find(hash string) *BlacklistEntry {
	i := slices.IndexFunc(b.Entries, func(e *BlacklistEntry) bool { return e.Hash == hash })
	if i < 0 {
		return nil
	}
	return b.Entries[i]
}

// HasPattern reports whether pattern was already added, compared exactly.
func (b *Blacklist) HasPattern(pattern string) bool {
	return slices.Contains(b.Patterns, pattern)
}

// Clone returns a deep copy.
func (b *Blacklist) Clone() *Blacklist {
	out := &Blacklist{
		Entries:  make([]*BlacklistEntry, 0, len(b.Entries)),
		Patterns: slices.Clone(b.Patterns),
	}
	if out.Patterns == nil {
		out.Patterns = []string{}
	}
	for _, e := range b.Entries {
		entry := *e
		out.Entries = append(out.Entries, &entry)
	}
	return out
}
