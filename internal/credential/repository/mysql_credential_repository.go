package repository

import (
	"context"
	"database/sql"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
)

// MySQLCredentialRepository implements credential persistence for MySQL.
// The statements only use "?" placeholders and portable DML, so SQLite shares it.
type MySQLCredentialRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewMySQLCredentialRepository creates a new MySQL credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadCards returns the registered cards ordered by registration sequence.
func (m *MySQLCredentialRepository) LoadCards(ctx context.Context) ([]*credentialDomain.Card, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name, registered_at FROM cards ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load cards")
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// SaveCards replaces the cards table contents in a single transaction.
func (m *MySQLCredentialRepository) SaveCards(ctx context.Context, cards []*credentialDomain.Card) error {
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, m.db)

		if _, err := querier.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return err
		}

		query := `INSERT INTO cards (id, name, registered_at, seq) VALUES (?, ?, ?, ?)`
		for i, card := range cards {
			if _, err := querier.ExecContext(ctx, query, card.ID, card.Name, card.RegisteredAt, i); err != nil {
				return err
			}
		}
		return nil
	})
	return apperrors.Storage(err, "failed to save cards")
}

// LoadPin returns the stored PIN credential, or a disabled one when the row is absent.
func (m *MySQLCredentialRepository) LoadPin(ctx context.Context) (*credentialDomain.PinCredential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT enabled, hash FROM pin_credential WHERE id = 1`
	return scanPin(querier.QueryRowContext(ctx, query))
}

// SavePin replaces the single pin_credential row.
func (m *MySQLCredentialRepository) SavePin(ctx context.Context, pin *credentialDomain.PinCredential) error {
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, m.db)

		if _, err := querier.ExecContext(ctx, `DELETE FROM pin_credential`); err != nil {
			return err
		}

		query := `INSERT INTO pin_credential (id, enabled, hash) VALUES (1, ?, ?)`
		_, err := querier.ExecContext(ctx, query, pin.Enabled, nullableHash(pin))
		return err
	})
	return apperrors.Storage(err, "failed to save pin credential")
}
