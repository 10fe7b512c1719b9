package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

// PostgreSQLStatsRepository implements launch statistics persistence for PostgreSQL.
type PostgreSQLStatsRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewPostgreSQLStatsRepository creates a new PostgreSQL statistics repository.
func NewPostgreSQLStatsRepository(db *sql.DB) *PostgreSQLStatsRepository {
	return &PostgreSQLStatsRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadStats returns nil when no statistics row exists.
func (p *PostgreSQLStatsRepository) LoadStats(ctx context.Context) (*usageDomain.Stats, error) {
	return loadStats(ctx, database.GetTx(ctx, p.db))
}

// SaveStats replaces the usage tables in a single transaction.
func (p *PostgreSQLStatsRepository) SaveStats(ctx context.Context, stats *usageDomain.Stats) error {
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, p.db)

		if err := clearStats(ctx, querier); err != nil {
			return err
		}

		if _, err := querier.ExecContext(
			ctx,
			`INSERT INTO usage_stats (id, total_launches, first_launch, last_launch) VALUES (1, $1, $2, $3)`,
			stats.TotalLaunches, stats.FirstLaunch, nullTime(stats.LastLaunch),
		); err != nil {
			return err
		}

		query := `INSERT INTO usage_launches (seq, launched_at) VALUES ($1, $2)`
		for i, t := range stats.History {
			if _, err := querier.ExecContext(ctx, query, i, t); err != nil {
				return err
			}
		}
		return nil
	})
	return apperrors.Storage(err, "failed to save usage statistics")
}

func clearStats(ctx context.Context, querier database.Querier) error {
	if _, err := querier.ExecContext(ctx, `DELETE FROM usage_launches`); err != nil {
		return err
	}
	_, err := querier.ExecContext(ctx, `DELETE FROM usage_stats`)
	return err
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func loadStats(ctx context.Context, querier database.Querier) (*usageDomain.Stats, error) {
	var (
		stats usageDomain.Stats
		last  sql.NullTime
	)
	err := querier.QueryRowContext(
		ctx,
		`SELECT total_launches, first_launch, last_launch FROM usage_stats WHERE id = 1`,
	).Scan(&stats.TotalLaunches, &stats.FirstLaunch, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load usage statistics")
	}
	stats.FirstLaunch = stats.FirstLaunch.UTC()
	if last.Valid {
		stats.LastLaunch = last.Time.UTC()
	}

	history, err := loadLaunches(ctx, querier)
	if err != nil {
		return nil, err
	}
	stats.History = history
	return &stats, nil
}

func loadLaunches(ctx context.Context, querier database.Querier) ([]time.Time, error) {
	rows, err := querier.QueryContext(ctx, `SELECT launched_at FROM usage_launches ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load launch history")
	}
	defer func() { _ = rows.Close() }()

	history := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.Storage(err, "failed to scan launch")
		}
		history = append(history, t.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate launch history")
	}
	return history, nil
}
