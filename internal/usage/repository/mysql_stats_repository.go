package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

// MySQLStatsRepository implements launch statistics persistence for MySQL. The
// statements are also valid SQLite, which reuses this repository.
type MySQLStatsRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewMySQLStatsRepository creates a new MySQL statistics repository.
func NewMySQLStatsRepository(db *sql.DB) *MySQLStatsRepository {
	return &MySQLStatsRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadStats returns nil when no statistics row exists.
func (m *MySQLStatsRepository) LoadStats(ctx context.Context) (*usageDomain.Stats, error) {
	return loadStats(ctx, database.GetTx(ctx, m.db))
}

// SaveStats replaces the usage tables in a single transaction.
func (m *MySQLStatsRepository) SaveStats(ctx context.Context, stats *usageDomain.Stats) error {
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, m.db)

		if err := clearStats(ctx, querier); err != nil {
			return err
		}

		if _, err := querier.ExecContext(
			ctx,
			`INSERT INTO usage_stats (id, total_launches, first_launch, last_launch) VALUES (1, ?, ?, ?)`,
			stats.TotalLaunches, stats.FirstLaunch, nullTime(stats.LastLaunch),
		); err != nil {
			return err
		}

		query := `INSERT INTO usage_launches (seq, launched_at) VALUES (?, ?)`
		for i, t := range stats.History {
			if _, err := querier.ExecContext(ctx, query, i, t); err != nil {
				return err
			}
		}
		return nil
	})
	return apperrors.Storage(err, "failed to save usage statistics")
}
