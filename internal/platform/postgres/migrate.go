package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// RunMigrations ensures the clients and strategies tables exist.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS clients
(
	id                       TEXT PRIMARY KEY,
	first_name               TEXT,
	last_name                TEXT,
	birth_date               DATE,
	gender                   TEXT,
	country                  TEXT,
	preferred_contact_method TEXT,
	languages                TEXT[] NOT NULL DEFAULT '{}',
	preferences              TEXT[] NOT NULL DEFAULT '{}',
	tags                     TEXT[] NOT NULL DEFAULT '{}',
	subscriptions            TEXT[] NOT NULL DEFAULT '{}',
	telegram_confirmed       BOOLEAN NOT NULL DEFAULT FALSE,
	is_active                BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS strategies
(
	id               UUID PRIMARY KEY,
	message          TEXT NOT NULL,
	request          JSONB NOT NULL,
	result           JSONB NOT NULL,
	coverage         DOUBLE PRECISION NOT NULL,
	total_clients    INTEGER NOT NULL,
	pool_fingerprint TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS strategies_created_at_idx ON strategies (created_at DESC);
`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
