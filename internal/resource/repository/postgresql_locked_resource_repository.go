package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// PostgreSQLLockedResourceRepository implements locked resource persistence for PostgreSQL.
type PostgreSQLLockedResourceRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewPostgreSQLLockedResourceRepository creates a new PostgreSQL locked resource repository.
func NewPostgreSQLLockedResourceRepository(db *sql.DB) *PostgreSQLLockedResourceRepository {
	return &PostgreSQLLockedResourceRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadLocked returns the locked set in insertion order.
func (p *PostgreSQLLockedResourceRepository) LoadLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error) {
	return loadLocked(ctx, database.GetTx(ctx, p.db))
}

// SaveLocked replaces the locked_resources table in a single transaction.
func (p *PostgreSQLLockedResourceRepository) SaveLocked(ctx context.Context, locked []*resourceDomain.LockedResource) error {
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, p.db)

		if _, err := querier.ExecContext(ctx, `DELETE FROM locked_resources`); err != nil {
			return err
		}

		query := `INSERT INTO locked_resources (seq, name, path, locked_at) VALUES ($1, $2, $3, $4)`
		for i, l := range locked {
			if _, err := querier.ExecContext(ctx, query, i, l.Name, l.Path, l.LockedAt); err != nil {
				return err
			}
		}
		return nil
	})
	return apperrors.Storage(err, "failed to save locked resources")
}

func loadLocked(ctx context.Context, querier database.Querier) ([]*resourceDomain.LockedResource, error) {
	rows, err := querier.QueryContext(ctx, `SELECT name, path, locked_at FROM locked_resources ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load locked resources")
	}
	defer func() { _ = rows.Close() }()

	locked := make([]*resourceDomain.LockedResource, 0)
	for rows.Next() {
		var l resourceDomain.LockedResource
		if err := rows.Scan(&l.Name, &l.Path, &l.LockedAt); err != nil {
			return nil, apperrors.Storage(err, "failed to scan locked resource")
		}
		l.LockedAt = l.LockedAt.UTC()
		locked = append(locked, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate locked resources")
	}
	return locked, nil
}
