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
	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

func TestPostgreSQLStatsRepository_LoadStats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLStatsRepository(db)

		first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		last := first.Add(time.Hour)
		mock.ExpectQuery("SELECT total_launches, first_launch, last_launch FROM usage_stats WHERE id = 1").
			WillReturnRows(sqlmock.NewRows([]string{"total_launches", "first_launch", "last_launch"}).
				AddRow(7, first, last))
		mock.ExpectQuery("SELECT launched_at FROM usage_launches ORDER BY seq").
			WillReturnRows(sqlmock.NewRows([]string{"launched_at"}).AddRow(last))

		stats, err := repo.LoadStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &usageDomain.Stats{
			TotalLaunches: 7,
			FirstLaunch:   first,
			LastLaunch:    last,
			History:       []time.Time{last},
		}, stats)
	})

	t.Run("Success_NoRow", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLStatsRepository(db)

		mock.ExpectQuery("SELECT total_launches, first_launch, last_launch FROM usage_stats").
			WillReturnRows(sqlmock.NewRows([]string{"total_launches", "first_launch", "last_launch"}))

		stats, err := repo.LoadStats(context.Background())
		require.NoError(t, err)
		assert.Nil(t, stats)
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLStatsRepository(db)

		mock.ExpectQuery("SELECT total_launches").WillReturnError(errors.New("connection reset"))

		_, err := repo.LoadStats(context.Background())
		assert.True(t, apperrors.Is(err, apperrors.ErrStorage))
	})
}

func TestPostgreSQLStatsRepository_SaveStats(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLStatsRepository(db)

	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM usage_launches").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM usage_stats").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO usage_stats \(id, total_launches, first_launch, last_launch\) VALUES \(1, \$1, \$2, \$3\)`).
		WithArgs(0, first, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.SaveStats(context.Background(), usageDomain.NewStats(first)))
}

func TestPostgreSQLStatsRepository_SaveStatsRollback(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLStatsRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM usage_launches").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.SaveStats(context.Background(), usageDomain.NewStats(time.Now()))
	assert.True(t, apperrors.Is(err, apperrors.ErrStorage))
}
