package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"segmentation-service/internal/segmentation"

	"github.com/lib/pq"
)

// ClientSource reads the active client pool from the clients table.
// Field values are expected in plain text; decryption happens upstream.
type ClientSource struct {
	db *sql.DB
}

func NewClientSource(db *sql.DB) *ClientSource {
	return &ClientSource{db: db}
}

const selectActiveClients = `
	SELECT id, COALESCE(first_name, ''), COALESCE(last_name, ''), birth_date,
	       COALESCE(gender, ''), COALESCE(country, ''), COALESCE(preferred_contact_method, ''),
	       COALESCE(languages, '{}'), COALESCE(preferences, '{}'), COALESCE(tags, '{}'),
	       COALESCE(subscriptions, '{}'), telegram_confirmed
	FROM clients
	WHERE is_active
	ORDER BY id
`

// LoadClients performs one bulk read inside a read-only, repeatable-read
// transaction so the pool is consistent.
func (s *ClientSource) LoadClients(ctx context.Context) ([]segmentation.ClientRecord, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin client read: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, selectActiveClients)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var result []segmentation.ClientRecord
	for rows.Next() {
		var (
			c         segmentation.ClientRecord
			birthDate sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &birthDate,
			&c.Gender, &c.Country, &c.PreferredContactMethod,
			pq.Array(&c.Languages), pq.Array(&c.Preferences), pq.Array(&c.Tags),
			pq.Array(&c.Subscriptions), &c.TelegramConfirmed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		if birthDate.Valid {
			c.BirthDate = birthDate.Time
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	return result, nil
}
