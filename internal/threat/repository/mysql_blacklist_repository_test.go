package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardguard/internal/testutil"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

func TestMySQLBlacklistRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewMySQLBlacklistRepository(testutil.SetupSQLiteDB(t))

	blacklist, err := repo.LoadBlacklist(ctx)
	require.NoError(t, err)
	assert.Empty(t, blacklist.Entries)
	assert.Empty(t, blacklist.Patterns)

	createdAt := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	in := &threatDomain.Blacklist{
		Entries: []*threatDomain.BlacklistEntry{
			{Hash: threatDomain.Fingerprint("B"), Reason: "Stolen", CreatedAt: createdAt},
			{Hash: threatDomain.Fingerprint("A"), Reason: "Lost", CreatedAt: createdAt},
		},
		Patterns: []string{"dead", "DEAD"},
	}
	require.NoError(t, repo.SaveBlacklist(ctx, in))
	require.NoError(t, repo.SaveBlacklist(ctx, in))

	out, err := repo.LoadBlacklist(ctx)
	require.NoError(t, err)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, threatDomain.Fingerprint("B"), out.Entries[0].Hash)
	assert.Equal(t, "Lost", out.Entries[1].Reason)
	assert.True(t, createdAt.Equal(out.Entries[0].CreatedAt))
	assert.Equal(t, []string{"dead", "DEAD"}, out.Patterns)

	require.NoError(t, repo.SaveBlacklist(ctx, &threatDomain.Blacklist{}))
	out, err = repo.LoadBlacklist(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.Entries)
	assert.Empty(t, out.Patterns)
}
