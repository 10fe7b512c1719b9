package repository

import (
	"context"
	"database/sql"
	"errors"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	"github.com/allisson/cardguard/internal/database"
	apperrors "github.com/allisson/cardguard/internal/errors"
)

// PostgreSQLCredentialRepository implements credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db, txManager: database.NewTxManager(db)}
}

// LoadCards returns the registered cards ordered by registration sequence.
func (p *PostgreSQLCredentialRepository) LoadCards(ctx context.Context) ([]*credentialDomain.Card, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name, registered_at FROM cards ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load cards")
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// SaveCards replaces the cards table contents in a single transaction.
func (p *PostgreSQLCredentialRepository) SaveCards(ctx context.Context, cards []*credentialDomain.Card) error {
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, p.db)

		if _, err := querier.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return err
		}

		query := `INSERT INTO cards (id, name, registered_at, seq) VALUES ($1, $2, $3, $4)`
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
func (p *PostgreSQLCredentialRepository) LoadPin(ctx context.Context) (*credentialDomain.PinCredential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT enabled, hash FROM pin_credential WHERE id = 1`
	return scanPin(querier.QueryRowContext(ctx, query))
}

// SavePin replaces the single pin_credential row.
func (p *PostgreSQLCredentialRepository) SavePin(ctx context.Context, pin *credentialDomain.PinCredential) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO pin_credential (id, enabled, hash) VALUES (1, $1, $2)
			  ON CONFLICT (id) DO UPDATE SET enabled = EXCLUDED.enabled, hash = EXCLUDED.hash`

	_, err := querier.ExecContext(ctx, query, pin.Enabled, nullableHash(pin))
	return apperrors.Storage(err, "failed to save pin credential")
}

func scanCards(rows *sql.Rows) ([]*credentialDomain.Card, error) {
	cards := make([]*credentialDomain.Card, 0)
	for rows.Next() {
		var card credentialDomain.Card
		if err := rows.Scan(&card.ID, &card.Name, &card.RegisteredAt); err != nil {
			return nil, apperrors.Storage(err, "failed to scan card")
		}
		card.RegisteredAt = card.RegisteredAt.UTC()
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(err, "failed to iterate cards")
	}
	return cards, nil
}

func scanPin(row *sql.Row) (*credentialDomain.PinCredential, error) {
	var (
		enabled bool
		hash    sql.NullString
	)
	if err := row.Scan(&enabled, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return credentialDomain.Disabled(), nil
		}
		return nil, apperrors.Storage(err, "failed to load pin credential")
	}
	if !enabled || !hash.Valid {
		return credentialDomain.Disabled(), nil
	}
	return &credentialDomain.PinCredential{Enabled: true, Hash: hash.String}, nil
}

func nullableHash(pin *credentialDomain.PinCredential) sql.NullString {
	if !pin.Enabled {
		return sql.NullString{}
	}
	return sql.NullString{String: pin.Hash, Valid: true}
}
