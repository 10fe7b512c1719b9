package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

// PostgreSQLBlacklistRepository implements blacklist persistence for PostgreSQL.
type PostgreSQLBlacklistRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewPostgreSQLBlacklistRepository creates a new PostgreSQL blacklist repository.
func NewPostgreSQLBlacklistRepository(db *sql.DB) *PostgreSQLBlacklistRepository {
	return &PostgreSQLBlacklistRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadBlacklist reads entries and patterns in insertion order.
func (p *PostgreSQLBlacklistRepository) LoadBlacklist(ctx context.Context) (*threatDomain.Blacklist, error) {
	return loadBlacklist(ctx, database.GetTx(ctx, p.db))
}

// SaveBlacklist replaces both tables in a single transaction.
func (p *PostgreSQLBlacklistRepository) SaveBlacklist(ctx context.Context, blacklist *threatDomain.Blacklist) error {
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, p.db)

		if err := clearBlacklist(ctx, querier); err != nil {
			return err
		}

		entryQuery := `INSERT INTO blacklist_entries (hash, reason, created_at, seq) VALUES ($1, $2, $3, $4)`
		for i, entry := range blacklist.Entries {
			if _, err := querier.ExecContext(ctx, entryQuery, entry.Hash, entry.Reason, entry.CreatedAt, i); err != nil {
				return err
			}
		}

		patternQuery := `INSERT INTO suspicious_patterns (seq, pattern) VALUES ($1, $2)`
		for i, pattern := range blacklist.Patterns {
			if _, err := querier.ExecContext(ctx, patternQuery, i, pattern); err != nil {
				return err
			}
		}
		return nil
	})
	return apperrors.Storage(err, "failed to save blacklist")
}

func clearBlacklist(ctx context.Context, querier database.Querier) error {
	if _, err := querier.ExecContext(ctx, `DELETE FROM blacklist_entries`); err != nil {
		return err
	}
	_, err := querier.ExecContext(ctx, `DELETE FROM suspicious_patterns`)
	return err
}

// loadBlacklist runs its queries one after the other. Each result set is closed before
// the next query so a single-connection pool does not block.
func loadBlacklist(ctx context.Context, querier database.Querier) (*threatDomain.Blacklist, error) {
	entries, err := loadBlacklistEntries(ctx, querier)
	if err != nil {
		return nil, err
	}
	patterns, err := loadSuspiciousPatterns(ctx, querier)
	if err != nil {
		return nil, err
	}
	return &threatDomain.Blacklist{Entries: entries, Patterns: patterns}, nil
}

func loadBlacklistEntries(ctx context.Context, querier database.Querier) ([]*threatDomain.BlacklistEntry, error) {
	rows, err := querier.QueryContext(ctx, `SELECT hash, reason, created_at FROM blacklist_entries ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load blacklist entries")
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*threatDomain.BlacklistEntry, 0)
	for rows.Next() {
		var entry threatDomain.BlacklistEntry
		if err := rows.Scan(&entry.Hash, &entry.Reason, &entry.CreatedAt); err != nil {
			return nil, apperrors.Storage(err, "failed to scan blacklist entry")
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate blacklist entries")
	}
	return entries, nil
}

func loadSuspiciousPatterns(ctx context.Context, querier database.Querier) ([]string, error) {
	rows, err := querier.QueryContext(ctx, `SELECT pattern FROM suspicious_patterns ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load suspicious patterns")
	}
	defer func() { _ = rows.Close() }()

	patterns := make([]string, 0)
	for rows.Next() {
		var pattern string
		if err := rows.Scan(&pattern); err != nil {
			return nil, apperrors.Storage(err, "failed to scan suspicious pattern")
		}
		patterns = append(patterns, pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate suspicious patterns")
	}
	return patterns, nil
}
