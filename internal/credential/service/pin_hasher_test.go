package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinHasher_HashAndVerify(t *testing.T) {
	hasher, err := NewPinHasher()
	require.NoError(t, err)

	hash, err := hasher.Hash("1234")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "1234")
	assert.True(t, hasher.Verify("1234", hash))
	assert.False(t, hasher.Verify("9999", hash))
}

func TestPinHasher_SaltedHashes(t *testing.T) {
	hasher, err := NewPinHasher()
	require.NoError(t, err)

	first, err := hasher.Hash("1234")
	require.NoError(t, err)
	second, err := hasher.Hash("1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPinHasher_VerifyLegacyDigest(t *testing.T) {
	hasher, err := NewPinHasher()
	require.NoError(t, err)

	// sha256("1234") as written by earlier releases.
	legacy := "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4"

	assert.True(t, hasher.Verify("1234", legacy))
	assert.False(t, hasher.Verify("9999", legacy))
}

func TestPinHasher_VerifyGarbage(t *testing.T) {
	hasher, err := NewPinHasher()
	require.NoError(t, err)

	assert.False(t, hasher.Verify("1234", ""))
	assert.False(t, hasher.Verify("1234", "not-a-hash"))
}
