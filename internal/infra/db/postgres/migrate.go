package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// EnsureSchema creates the three tables on startup. The schema is small and
// stable; no versioned migrations at this scope.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS admin_accounts (
  id            TEXT PRIMARY KEY,
  username      TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS access_requests (
  id             TEXT PRIMARY KEY,
  first_name     TEXT NOT NULL,
  last_name      TEXT NOT NULL,
  email          TEXT NOT NULL,
  contact_handle TEXT NOT NULL DEFAULT '',
  approved       BOOLEAN NOT NULL DEFAULT FALSE,
  created_at     TIMESTAMPTZ NOT NULL,
  approved_at    TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_access_requests_created_at ON access_requests (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_access_requests_pending ON access_requests (approved) WHERE approved = FALSE;

CREATE TABLE IF NOT EXISTS admission_tokens (
  id         TEXT PRIMARY KEY,
  token      TEXT NOT NULL UNIQUE,
  request_id TEXT NOT NULL UNIQUE REFERENCES access_requests(id),
  used       BOOLEAN NOT NULL DEFAULT FALSE,
  used_at    TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL
);
`
	_, err := pool.Exec(ctx, ddl)
	return err
}
