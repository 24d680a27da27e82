package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables the repos expect. Statements are
// idempotent so it is safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  subscription TEXT NOT NULL DEFAULT 'starter',
  avatar_url TEXT NOT NULL DEFAULT '',
  session_token TEXT NULL,
  verified BOOLEAN NOT NULL DEFAULT FALSE,
  verification_token TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);`,
		`CREATE TABLE IF NOT EXISTS contacts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  favorite BOOLEAN NOT NULL DEFAULT FALSE,
  owner_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,
		`CREATE INDEX IF NOT EXISTS contacts_owner_id_idx ON contacts (owner_id);`,
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
