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
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

func TestFileLockedResourceRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileLockedResourceRepository(dir)

	locked, err := repo.LoadLocked(ctx)
	require.NoError(t, err)
	assert.Empty(t, locked)

	lockedAt := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	in := []*resourceDomain.LockedResource{
		{Name: "Terminal", Path: "/usr/bin/gnome-terminal", LockedAt: lockedAt},
		{Name: "Firefox", Path: "/usr/bin/firefox", LockedAt: lockedAt},
	}
	require.NoError(t, repo.SaveLocked(ctx, in))

	out, err := NewFileLockedResourceRepository(dir).LoadLocked(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, repo.SaveLocked(ctx, nil))
	data, err := os.ReadFile(filepath.Join(dir, "locked_apps.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFileLockedResourceRepository_LegacyDocument(t *testing.T) {
	dir := t.TempDir()

	legacy := `[
  {"path": "/usr/share/applications/firefox.desktop", "name": "Firefox"},
  {"path": "/opt/tool", "name": ""},
  {"path": "", "name": ""}
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locked_apps.json"), []byte(legacy), 0o600))

	locked, err := NewFileLockedResourceRepository(dir).LoadLocked(context.Background())
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, &resourceDomain.LockedResource{Name: "Firefox", Path: "/usr/share/applications/firefox.desktop"}, locked[0])
	assert.Equal(t, &resourceDomain.LockedResource{Name: "/opt/tool", Path: "/opt/tool"}, locked[1])
}

func TestFileLockedResourceRepository_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locked_apps.json"), []byte(`{"path": 1}`), 0o600))

	_, err := NewFileLockedResourceRepository(dir).LoadLocked(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrCorrupt))
}
