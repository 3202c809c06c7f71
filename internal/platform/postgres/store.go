package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"segmentation-service/internal/segmentation"

	"github.com/google/uuid"
)

// Store persists computed strategies. It is the persistence sink that assigns
// strategy ids.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, st *segmentation.SavedStrategy) error {
	request, err := json.Marshal(st.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal strategy request: %w", err)
	}
	result, err := json.Marshal(st.Strategy)
	if err != nil {
		return fmt.Errorf("failed to marshal strategy result: %w", err)
	}

	query := `
		INSERT INTO strategies (id, message, request, result, coverage, total_clients, pool_fingerprint)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	id := uuid.NewString()
	err = s.db.QueryRowContext(ctx, query,
		id, st.Message, request, result, st.Strategy.Coverage, st.Strategy.TotalClients, st.PoolFingerprint,
	).Scan(&st.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}
	st.ID = id
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return segmentation.ErrStrategyNotFound
	}
	query := `DELETE FROM strategies WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete strategy: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return segmentation.ErrStrategyNotFound
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*segmentation.SavedStrategy, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil // not an id this store could have issued
	}
	query := `
		SELECT id, message, request, result, pool_fingerprint, created_at
		FROM strategies WHERE id = $1
	`
	st, err := scanStrategy(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil // Return nil if not found
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Store) List(ctx context.Context) ([]*segmentation.SavedStrategy, error) {
	query := `
		SELECT id, message, request, result, pool_fingerprint, created_at
		FROM strategies ORDER BY created_at DESC LIMIT 100
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}
	defer rows.Close()

	var result []*segmentation.SavedStrategy
	for rows.Next() {
		st, err := scanStrategy(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStrategy(row rowScanner) (*segmentation.SavedStrategy, error) {
	var (
		st              segmentation.SavedStrategy
		request, result []byte
	)
	if err := row.Scan(&st.ID, &st.Message, &request, &result, &st.PoolFingerprint, &st.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(request, &st.Request); err != nil {
		return nil, fmt.Errorf("failed to decode strategy %s request: %w", st.ID, err)
	}
	if err := json.Unmarshal(result, &st.Strategy); err != nil {
		return nil, fmt.Errorf("failed to decode strategy %s result: %w", st.ID, err)
	}
	return &st, nil
}
