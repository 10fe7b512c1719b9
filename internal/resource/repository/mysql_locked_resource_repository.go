package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// MySQLLockedResourceRepository implements locked resource persistence for MySQL. The
// statements are also valid SQLite, which reuses this repository.
type MySQLLockedResourceRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewMySQLLockedResourceRepository creates a new MySQL locked resource repository.
func NewMySQLLockedResourceRepository(db *sql.DB) *MySQLLockedResourceRepository {
	return &MySQLLockedResourceRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadLocked returns the locked set in insertion order.
func (m *MySQLLockedResourceRepository) LoadLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error) {
	return loadLocked(ctx, database.GetTx(ctx, m.db))
}

// SaveLocked replaces the locked_resources table in a single transaction.
func (m *MySQLLockedResourceRepository) SaveLocked(ctx context.Context, locked []*resourceDomain.LockedResource) error {
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, m.db)

		if _, err := querier.ExecContext(ctx, `DELETE FROM locked_resources`); err != nil {
			return err
		}

		query := `INSERT INTO locked_resources (seq, name, path, locked_at) VALUES (?, ?, ?, ?)`
		for i, l := range locked {
			if _, err := querier.ExecContext(ctx, query, i, l.Name, l.Path, l.LockedAt); err != nil {
				return err
			}
		}
		return nil
	})
	return apperrors.Storage(err, "failed to save locked resources")
}
