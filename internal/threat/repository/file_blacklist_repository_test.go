package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardguard/internal/errors"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

func TestFileBlacklistRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileBlacklistRepository(dir)

	blacklist, err := repo.LoadBlacklist(ctx)
	require.NoError(t, err)
	assert.Empty(t, blacklist.Entries)
	assert.Empty(t, blacklist.Patterns)

	createdAt := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	in := &threatDomain.Blacklist{
		Entries: []*threatDomain.BlacklistEntry{
			{Hash: threatDomain.Fingerprint("B"), Reason: "Stolen", CreatedAt: createdAt},
			{Hash: threatDomain.Fingerprint("A"), Reason: threatDomain.DefaultReason, CreatedAt: createdAt},
		},
		Patterns: []string{"dead", "BEEF"},
	}
	require.NoError(t, repo.SaveBlacklist(ctx, in))

	out, err := NewFileBlacklistRepository(dir).LoadBlacklist(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileBlacklistRepository_EmptyDocumentLayout(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, NewFileBlacklistRepository(dir).SaveBlacklist(context.Background(), &threatDomain.Blacklist{}))

	data, err := os.ReadFile(filepath.Join(dir, "blacklist.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"blocked_cards": [], "blocked_patterns": []}`, string(data))
}

func TestFileBlacklistRepository_LegacyDocument(t *testing.T) {
	dir := t.TempDir()

	legacy := `{
    "blocked_cards": [
        {"hash": "aa", "reason": "Manual block", "timestamp": "2024-05-01T10:00:00.123456"},
        {"hash": "", "reason": "broken", "timestamp": ""},
        {"hash": "aa", "reason": "duplicate", "timestamp": "2024-05-02T10:00:00"}
    ],
    "blocked_patterns": ["DEAD", "DEAD"]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blacklist.json"), []byte(legacy), 0o600))

	blacklist, err := NewFileBlacklistRepository(dir).LoadBlacklist(context.Background())
	require.NoError(t, err)
	require.Len(t, blacklist.Entries, 1)
	assert.Equal(t, "aa", blacklist.Entries[0].Hash)
	assert.Equal(t, "Manual block", blacklist.Entries[0].Reason)
	assert.False(t, blacklist.Entries[0].CreatedAt.IsZero())
	assert.Equal(t, []string{"DEAD"}, blacklist.Patterns)
}

func TestFileBlacklistRepository_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blacklist.json"), []byte(`{"blocked_cards": [`), 0o600))

	_, err := NewFileBlacklistRepository(dir).LoadBlacklist(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrCorrupt))
}
