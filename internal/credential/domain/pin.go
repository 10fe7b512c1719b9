package domain

import "encoding/hex"

// LegacyDigestLength is the length of the hex SHA-256 PIN digests written by
// earlier releases. New digests are Argon2id PHC strings.
const LegacyDigestLength = 64

// PinCredential is the optional PIN protecting unlock. When Enabled is false the
// Hash is empty and PIN verification always succeeds.
type PinCredential struct {
	Enabled bool
	Hash    string
}

// Disabled returns the default credential: no PIN required.
func Disabled() *PinCredential {
	return &PinCredential{}
}

// IsLegacyDigest reports whether hash is an unsalted hex SHA-256 digest.
func IsLegacyDigest(hash string) bool {
	if len(hash) != LegacyDigestLength {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
