package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

// MySQLBlacklistRepository implements blacklist persistence for MySQL. The statements are
// also valid SQLite, which reuses this repository.
type MySQLBlacklistRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewMySQLBlacklistRepository creates a new MySQL blacklist repository.
func NewMySQLBlacklistRepository(db *sql.DB) *MySQLBlacklistRepository {
	return &MySQLBlacklistRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadBlacklist reads entries and patterns in insertion order.
func (m *MySQLBlacklistRepository) LoadBlacklist(ctx context.Context) (*threatDomain.Blacklist, error) {
	return loadBlacklist(ctx, database.GetTx(ctx, m.db))
}

// SaveBlacklist replaces both tables in a single transaction.
func (m *MySQLBlacklistRepository) SaveBlacklist(ctx context.Context, blacklist *threatDomain.Blacklist) error {
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, m.db)

		if err := clearBlacklist(ctx, querier); err != nil {
			return err
		}

		entryQuery := `INSERT INTO blacklist_entries (hash, reason, created_at, seq) VALUES (?, ?, ?, ?)`
		for i, entry := range blacklist.Entries {
			if _, err := querier.ExecContext(ctx, entryQuery, entry.Hash, entry.Reason, entry.CreatedAt, i); err != nil {
				return err
			}
		}

		patternQuery := `INSERT INTO suspicious_patterns (seq, pattern) VALUES (?, ?)`
		for i, pattern := range blacklist.Patterns {
			if _, err := querier.ExecContext(ctx, patternQuery, i, pattern); err != nil {
				return err
			}
		}
		return nil
	})
	return apperrors.Storage(err, "failed to save blacklist")
}
