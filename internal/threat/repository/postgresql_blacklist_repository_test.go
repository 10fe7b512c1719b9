package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardguard/internal/errors"
	"github.com/allisson/cardguard/internal/testutil"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

func TestPostgreSQLBlacklistRepository_LoadBlacklist(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLBlacklistRepository(db)

	createdAt := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	mock.ExpectQuery("SELECT hash, reason, created_at FROM blacklist_entries ORDER BY seq").
		WillReturnRows(sqlmock.NewRows([]string{"hash", "reason", "created_at"}).AddRow("h1", "Stolen", createdAt))
	mock.ExpectQuery("SELECT pattern FROM suspicious_patterns ORDER BY seq").
		WillReturnRows(sqlmock.NewRows([]string{"pattern"}).AddRow("dead").AddRow("beef"))

	blacklist, err := repo.LoadBlacklist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &threatDomain.Blacklist{
		Entries:  []*threatDomain.BlacklistEntry{{Hash: "h1", Reason: "Stolen", CreatedAt: createdAt}},
		Patterns: []string{"dead", "beef"},
	}, blacklist)
}

func TestPostgreSQLBlacklistRepository_LoadBlacklistError(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLBlacklistRepository(db)

	mock.ExpectQuery("SELECT hash, reason, created_at FROM blacklist_entries").
		WillReturnRows(sqlmock.NewRows([]string{"hash", "reason", "created_at"}))
	mock.ExpectQuery("SELECT pattern FROM suspicious_patterns").WillReturnError(errors.New("relation does not exist"))

	_, err := repo.LoadBlacklist(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrStorage))
}

func TestPostgreSQLBlacklistRepository_SaveBlacklist(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLBlacklistRepository(db)

	createdAt := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM blacklist_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM suspicious_patterns").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO blacklist_entries \(hash, reason, created_at, seq\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs("h1", "Stolen", createdAt, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO suspicious_patterns \(seq, pattern\) VALUES \(\$1, \$2\)`).
		WithArgs(0, "dead").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SaveBlacklist(context.Background(), &threatDomain.Blacklist{
		Entries:  []*threatDomain.BlacklistEntry{{Hash: "h1", Reason: "Stolen", CreatedAt: createdAt}},
		Patterns: []string{"dead"},
	})
	assert.NoError(t, err)
}

func TestPostgreSQLBlacklistRepository_SaveBlacklistRollback(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLBlacklistRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM blacklist_entries").WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.SaveBlacklist(context.Background(), &threatDomain.Blacklist{})
	assert.True(t, apperrors.Is(err, apperrors.ErrStorage))
}
